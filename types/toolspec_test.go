// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolSpec_Defaults(t *testing.T) {
	spec := NewToolSpec("pirate_get", "Pirate Endpoint", ToolParameters{})

	assert.Equal(t, ToolSpecTypeFunction, spec.Type)
	assert.Equal(t, "pirate_get", spec.Function.Name)
	assert.Equal(t, "object", spec.Function.Parameters.Type)
	assert.NotNil(t, spec.Function.Parameters.Properties)
	assert.NotNil(t, spec.Function.Parameters.Required)
}

func TestToolSpec_JSONShape(t *testing.T) {
	spec := NewToolSpec("pirate_greet", "Greet a pirate by name", ToolParameters{
		Properties: map[string]ToolProperty{
			"name": {
				Type:        json.RawMessage(`"string"`),
				Description: "The pirate's name",
			},
		},
		Required: []string{"name"},
	})

	encoded, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "function",
		"function": {
			"name": "pirate_greet",
			"description": "Greet a pirate by name",
			"parameters": {
				"type": "object",
				"properties": {
					"name": {"type": "string", "description": "The pirate's name"}
				},
				"required": ["name"]
			}
		}
	}`, string(encoded))
}
