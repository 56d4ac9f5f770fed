// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"context"

	"github.com/andrewbolster/openapi2callables/openapi"
)

// TagLocal marks in-process tools.
const TagLocal = "Local"

// LocalFunc is the signature of a function owned by a LocalTool.
type LocalFunc func(ctx context.Context, args map[string]any) (any, error)

// LocalTool executes a client-local function. It never requires auth.
type LocalTool struct {
	base
	fn LocalFunc
}

// LocalToolConfig configures a LocalTool.
type LocalToolConfig struct {
	OperationID string
	Summary     string
	Description string
	Parameters  map[string]*openapi.Param
	Responses   map[string]openapi.Response
	Tags        []string
	Func        LocalFunc
}

// NewLocalTool creates a LocalTool. The Local tag is always present.
func NewLocalTool(config LocalToolConfig) *LocalTool {
	t := &LocalTool{
		base: newBase(config.OperationID, config.Summary, config.Description,
			config.Parameters, config.Responses, config.Tags),
		fn: config.Func,
	}
	t.tags[TagLocal] = struct{}{}
	return t
}

// RequiresAuth always reports false for local tools.
func (t *LocalTool) RequiresAuth() bool { return false }

// Invoke forwards the arguments to the owned function and returns its
// result verbatim.
func (t *LocalTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return t.fn(ctx, args)
}
