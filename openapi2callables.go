// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

// Package openapi2callables provides a top-level convenience entry point
// for turning an OpenAPI specification into callable tools.
//
// Usage:
//
//	import o2c "github.com/andrewbolster/openapi2callables"
//
//	registry, err := o2c.Tools(ctx, "https://api.example.com/openapi.json", o2c.Options{})
//	specs := registry.ToolSpecs()
//
// This is a thin wrapper around the openapi and tool packages; use those
// directly when you need finer control.
package openapi2callables

import (
	"context"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/tool"
)

// Options configures the one-shot pipeline behind [Tools].
type Options struct {
	// BaseURL overrides the first server URL declared in the spec.
	BaseURL string
	// ToolPrefix restricts parsing to paths with this prefix.
	ToolPrefix string
	// IncludeDeprecated keeps operations marked deprecated.
	IncludeDeprecated bool
	// Defaults seeds every constructed APITool (credentials, retry
	// policy, client, observer). Identity fields are overwritten per
	// operation.
	Defaults tool.APIToolConfig
	// ParseObserver receives loader and parser telemetry. Pass the
	// metrics collector here alongside Defaults.Observer to count the
	// whole pipeline.
	ParseObserver openapi.Observer
	// Logger is shared by the loader, parser and tools.
	Logger *zap.Logger
}

// Tools loads a spec from a URL or file, parses it, and builds a registry
// of callable API tools.
func Tools(ctx context.Context, source string, opts Options) (*tool.Registry, error) {
	loader := openapi.NewLoader(openapi.LoaderConfig{Observer: opts.ParseObserver}, opts.Logger)
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return ToolsFromDocument(doc, opts)
}

// ToolsFromDocument is [Tools] for an already-loaded document.
func ToolsFromDocument(doc *openapi.Document, opts Options) (*tool.Registry, error) {
	parser := openapi.NewParser(opts.Logger)
	operations, err := parser.Parse(doc, openapi.ParseOptions{
		ToolPrefix:        opts.ToolPrefix,
		IncludeDeprecated: opts.IncludeDeprecated,
		Observer:          opts.ParseObserver,
	})
	if err != nil {
		return nil, err
	}

	defaults := opts.Defaults
	if defaults.BaseURL == "" {
		defaults.BaseURL = opts.BaseURL
	}
	if defaults.BaseURL == "" && len(doc.Servers) > 0 {
		defaults.BaseURL = doc.Servers[0].URL
	}
	if defaults.SecuritySchemes == nil && doc.Components != nil && len(doc.Components.SecuritySchemes) > 0 {
		schemes := make(map[string]openapi.SecurityScheme, len(doc.Components.SecuritySchemes))
		for name, scheme := range doc.Components.SecuritySchemes {
			if scheme != nil {
				schemes[name] = *scheme
			}
		}
		defaults.SecuritySchemes = schemes
	}
	if defaults.ServiceName == "" {
		defaults.ServiceName = doc.Info.Title
	}
	if defaults.Logger == nil {
		defaults.Logger = opts.Logger
	}

	return tool.FromOperations(operations, defaults, opts.Logger)
}
