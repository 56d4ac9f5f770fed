// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"encoding/json"
	"fmt"
)

// TypeKind discriminates the TypeRef tagged union.
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindNamed     TypeKind = "named"
	KindUnion     TypeKind = "union"
	KindArray     TypeKind = "array"
	KindObject    TypeKind = "object"
)

// primitiveNames are the type names the module recognizes as primitive.
// The Python-style aliases appear in specs produced by older generators
// and in virtual parameters ("str" for injected tokens).
var primitiveNames = map[string]bool{
	"string": true, "integer": true, "number": true, "boolean": true,
	"array": true, "object": true, "null": true,
	"str": true, "int": true, "float": true, "bool": true, "list": true,
}

// IsPrimitiveName reports whether name is a recognized primitive type name.
func IsPrimitiveName(name string) bool {
	return primitiveNames[name]
}

// TypeRef is a normalized type descriptor: a tagged union over primitive
// names, opaque named types, heterogeneous unions, arrays and objects.
type TypeRef struct {
	Kind       TypeKind           `json:"-"`
	Name       string             `json:"-"` // primitive or named
	Members    []TypeRef          `json:"-"` // union
	Items      *TypeRef           `json:"-"` // array element
	Properties map[string]TypeRef `json:"-"` // object
	Required   []string           `json:"-"` // object required names
}

// Primitive builds a primitive TypeRef.
func Primitive(name string) TypeRef {
	return TypeRef{Kind: KindPrimitive, Name: name}
}

// Named builds an opaque named TypeRef (from a $ref).
func Named(name string) TypeRef {
	return TypeRef{Kind: KindNamed, Name: name}
}

// Union builds a union TypeRef over the given members.
func Union(members ...TypeRef) TypeRef {
	return TypeRef{Kind: KindUnion, Members: members}
}

// Array builds an array TypeRef with the given element type.
func Array(items TypeRef) TypeRef {
	return TypeRef{Kind: KindArray, Items: &items}
}

// ObjectOf builds an object TypeRef with the given properties.
func ObjectOf(properties map[string]TypeRef, required []string) TypeRef {
	return TypeRef{Kind: KindObject, Properties: properties, Required: required}
}

// IsZero reports whether the TypeRef is the zero value.
func (t TypeRef) IsZero() bool {
	return t.Kind == ""
}

// Single unwraps a one-member union to its member; other kinds return
// the receiver unchanged.
func (t TypeRef) Single() TypeRef {
	if t.Kind == KindUnion && len(t.Members) == 1 {
		return t.Members[0]
	}
	return t
}

// String renders the descriptor in its serialized shape, for logs.
func (t TypeRef) String() string {
	b, err := json.Marshal(t)
	if err != nil {
		return string(t.Kind)
	}
	return string(b)
}

// MarshalJSON serializes the union in its wire shape: primitives and named
// types as bare strings, unions as lists, arrays and objects as structured
// maps with a "type" tag.
func (t TypeRef) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindPrimitive, KindNamed:
		return json.Marshal(t.Name)
	case KindUnion:
		members := t.Members
		if members == nil {
			members = []TypeRef{}
		}
		return json.Marshal(members)
	case KindArray:
		return json.Marshal(struct {
			Type  string   `json:"type"`
			Items *TypeRef `json:"items"`
		}{Type: "array", Items: t.Items})
	case KindObject:
		props := t.Properties
		if props == nil {
			props = map[string]TypeRef{}
		}
		required := t.Required
		if required == nil {
			required = []string{}
		}
		return json.Marshal(struct {
			Type       string             `json:"type"`
			Properties map[string]TypeRef `json:"properties"`
			Required   []string           `json:"required"`
		}{Type: "object", Properties: props, Required: required})
	}
	return nil, fmt.Errorf("cannot marshal TypeRef of kind %q", t.Kind)
}

// UnmarshalJSON reads back the wire shape produced by MarshalJSON.
func (t *TypeRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if IsPrimitiveName(name) {
			*t = Primitive(name)
		} else {
			*t = Named(name)
		}
		return nil
	}

	var members []TypeRef
	if err := json.Unmarshal(data, &members); err == nil {
		*t = Union(members...)
		return nil
	}

	var structured struct {
		Type       string             `json:"type"`
		Items      *TypeRef           `json:"items"`
		Properties map[string]TypeRef `json:"properties"`
		Required   []string           `json:"required"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("failed to unmarshal type descriptor: %w", err)
	}
	switch structured.Type {
	case "array":
		items := Primitive("object")
		if structured.Items != nil {
			items = *structured.Items
		}
		*t = Array(items)
	case "object":
		*t = ObjectOf(structured.Properties, structured.Required)
	default:
		*t = Primitive(structured.Type)
	}
	return nil
}
