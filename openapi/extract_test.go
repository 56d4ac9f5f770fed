// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractType(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		want   TypeRef
	}{
		{
			name:   "nil schema falls back to object",
			schema: nil,
			want:   Primitive("object"),
		},
		{
			name:   "empty schema falls back to object",
			schema: &Schema{},
			want:   Primitive("object"),
		},
		{
			name:   "reference becomes an opaque named type",
			schema: &Schema{Ref: "#/components/schemas/Pirate"},
			want:   Named("Pirate"),
		},
		{
			name: "anyOf drops null branches",
			schema: &Schema{AnyOf: []*Schema{
				{Type: "integer"},
				{Type: "null"},
			}},
			want: Union(Primitive("integer")),
		},
		{
			name: "anyOf keeps every non-null branch",
			schema: &Schema{AnyOf: []*Schema{
				{Type: "string"},
				{Type: "integer"},
			}},
			want: Union(Primitive("string"), Primitive("integer")),
		},
		{
			name: "oneOf keeps null branches",
			schema: &Schema{OneOf: []*Schema{
				{Type: "string"},
				{Type: "null"},
			}},
			want: Union(Primitive("string"), Primitive("null")),
		},
		{
			name: "allOf takes the first branch only",
			schema: &Schema{AllOf: []*Schema{
				{Type: "string"},
				{Type: "integer"},
			}},
			want: Primitive("string"),
		},
		{
			name:   "array with items recurses",
			schema: &Schema{Type: "array", Items: &Schema{Type: "string"}},
			want:   Array(Primitive("string")),
		},
		{
			name:   "array without items stays a bare primitive",
			schema: &Schema{Type: "array"},
			want:   Primitive("array"),
		},
		{
			name: "object with properties recurses",
			schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"name": {Type: "string"},
					"age":  {Type: "integer"},
				},
				Required: []string{"name"},
			},
			want: ObjectOf(map[string]TypeRef{
				"name": Primitive("string"),
				"age":  Primitive("integer"),
			}, []string{"name"}),
		},
		{
			name:   "object without properties stays a bare primitive",
			schema: &Schema{Type: "object"},
			want:   Primitive("object"),
		},
		{
			name:   "explicit primitive type passes through verbatim",
			schema: &Schema{Type: "boolean"},
			want:   Primitive("boolean"),
		},
		{
			name: "nested arrays of references",
			schema: &Schema{Type: "array", Items: &Schema{
				Ref: "#/components/schemas/Treasure",
			}},
			want: Array(Named("Treasure")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractType(tt.schema))
		})
	}
}

func TestTypeRefJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		json string
	}{
		{"primitive", Primitive("integer"), `"integer"`},
		{"named", Named("Pirate"), `"Pirate"`},
		{"union", Union(Primitive("string"), Primitive("integer")), `["string","integer"]`},
		{"array", Array(Primitive("string")), `{"type":"array","items":"string"}`},
		{
			"object",
			ObjectOf(map[string]TypeRef{"name": Primitive("string")}, []string{"name"}),
			`{"type":"object","properties":{"name":"string"},"required":["name"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := tt.ref.MarshalJSON()
			assert.NoError(t, err)
			assert.JSONEq(t, tt.json, string(encoded))

			var decoded TypeRef
			assert.NoError(t, decoded.UnmarshalJSON(encoded))
			assert.Equal(t, tt.ref, decoded)
		})
	}
}

func TestTypeRefSingle(t *testing.T) {
	single := Union(Primitive("integer"))
	assert.Equal(t, Primitive("integer"), single.Single())

	wide := Union(Primitive("integer"), Primitive("string"))
	assert.Equal(t, wide, wide.Single())

	assert.Equal(t, Primitive("string"), Primitive("string").Single())
}
