// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/types"
)

// TagRequiresConfirmation marks tools whose invocation a runner should
// confirm with the user first.
const TagRequiresConfirmation = "requires-confirmation"

// Tool is the shared capability contract over the closed variant set
// {LocalTool, APITool}. Identity is the operation id.
type Tool interface {
	// OperationID returns the unique identity of the tool.
	OperationID() string

	// Description returns the human description (summary-prefixed when a
	// summary was declared).
	Description() string

	// Parameters returns the normalized parameter descriptor map.
	Parameters() map[string]*openapi.Param

	// Tags returns the tag set.
	Tags() map[string]struct{}

	// RequiresAuth reports whether invoking the tool needs a credential.
	RequiresAuth() bool

	// RequiresConfirmation reports whether the tool carries the
	// requires-confirmation tag.
	RequiresConfirmation() bool

	// Invoke calls the tool with named arguments.
	Invoke(ctx context.Context, args map[string]any) (any, error)

	// ToolSpec exports the tool in the LLM tool-calling format.
	ToolSpec() types.ToolSpec
}

// base carries the state and behavior shared by all tool variants.
type base struct {
	operationID string
	description string
	summary     string
	parameters  map[string]*openapi.Param
	responses   map[string]openapi.Response
	tags        map[string]struct{}
}

func newBase(operationID, summary, description string, parameters map[string]*openapi.Param, responses map[string]openapi.Response, tags []string) base {
	if parameters == nil {
		parameters = map[string]*openapi.Param{}
	}
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}
	// The exported description leads with the summary when both exist.
	if summary != "" && description != "" {
		description = summary + "\n\n" + description
	} else if description == "" {
		description = summary
	}
	return base{
		operationID: operationID,
		description: description,
		summary:     summary,
		parameters:  parameters,
		responses:   responses,
		tags:        tagSet,
	}
}

func (b *base) OperationID() string { return b.operationID }

func (b *base) Description() string { return b.description }

func (b *base) Summary() string { return b.summary }

func (b *base) Parameters() map[string]*openapi.Param { return b.parameters }

func (b *base) Responses() map[string]openapi.Response { return b.responses }

func (b *base) Tags() map[string]struct{} { return b.tags }

func (b *base) RequiresConfirmation() bool {
	_, ok := b.tags[TagRequiresConfirmation]
	return ok
}

// ToolSpec exports {name, description, parameters} with the required list
// holding exactly the parameter names flagged required.
func (b *base) ToolSpec() types.ToolSpec {
	properties := make(map[string]types.ToolProperty, len(b.parameters))
	required := []string{}
	for name, param := range b.parameters {
		typeJSON, err := json.Marshal(param.Type)
		if err != nil {
			typeJSON = []byte(`"object"`)
		}
		properties[name] = types.ToolProperty{
			Type:        typeJSON,
			Description: param.Description,
			Enum:        param.Enum,
		}
		if param.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return types.NewToolSpec(b.operationID, b.description, types.ToolParameters{
		Properties: properties,
		Required:   required,
	})
}
