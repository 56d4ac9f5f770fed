// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestExtractConstraints(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		want   map[string]any
	}{
		{
			name:   "nil schema yields nothing",
			schema: nil,
			want:   nil,
		},
		{
			name:   "no constraints yields nothing",
			schema: &Schema{Type: "string"},
			want:   nil,
		},
		{
			name: "string constraints",
			schema: &Schema{
				Type:      "string",
				MinLength: intPtr(1),
				MaxLength: intPtr(80),
				Pattern:   "^[a-z]+$",
				Format:    "email",
			},
			want: map[string]any{
				"minLength": 1,
				"maxLength": 80,
				"pattern":   "^[a-z]+$",
				"format":    "email",
			},
		},
		{
			name: "numeric constraints",
			schema: &Schema{
				Type:             "integer",
				Minimum:          floatPtr(0),
				Maximum:          floatPtr(100),
				ExclusiveMinimum: float64(0),
				MultipleOf:       floatPtr(5),
			},
			want: map[string]any{
				"minimum":          float64(0),
				"maximum":          float64(100),
				"exclusiveMinimum": float64(0),
				"multipleOf":       float64(5),
			},
		},
		{
			name: "array constraints",
			schema: &Schema{
				Type:        "array",
				MinItems:    intPtr(1),
				MaxItems:    intPtr(10),
				UniqueItems: boolPtr(true),
			},
			want: map[string]any{
				"minItems":    1,
				"maxItems":    10,
				"uniqueItems": true,
			},
		},
		{
			name: "object constraints",
			schema: &Schema{
				Type:          "object",
				MinProperties: intPtr(1),
				MaxProperties: intPtr(5),
			},
			want: map[string]any{
				"minProperties": 1,
				"maxProperties": 5,
			},
		},
		{
			name: "constraints of another type are not picked up",
			schema: &Schema{
				Type:      "integer",
				MinLength: intPtr(3),
				MinItems:  intPtr(2),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractConstraints(tt.schema))
		})
	}
}
