// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package types

import "encoding/json"

// ToolSpecTypeFunction is the only tool spec type emitted today.
const ToolSpecTypeFunction = "function"

// ToolSpec expresses a tool in the format accepted by common LLM
// tool-calling APIs. Execution of the tool remains the responsibility
// of the calling client.
type ToolSpec struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction holds the callable definition inside a ToolSpec.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  ToolParameters `json:"parameters"`
}

// ToolParameters is the JSON-Schema-like parameter object of a ToolFunction.
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// ToolProperty describes a single named parameter.
type ToolProperty struct {
	Type        json.RawMessage `json:"type"`
	Description string          `json:"description"`
	Enum        []any           `json:"enum,omitempty"`
}

// NewToolSpec builds a function-typed ToolSpec.
func NewToolSpec(name, description string, params ToolParameters) ToolSpec {
	if params.Properties == nil {
		params.Properties = map[string]ToolProperty{}
	}
	if params.Required == nil {
		params.Required = []string{}
	}
	params.Type = "object"
	return ToolSpec{
		Type: ToolSpecTypeFunction,
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}
}
