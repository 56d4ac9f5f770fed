// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

// ExtractType reduces a schema fragment to a normalized TypeRef. It is
// pure and total: ambiguity defaults toward "object" and it never fails.
//
// Priority order: $ref, anyOf (null branches dropped), oneOf, allOf
// (first branch only, schemas are not merged), declared array with items,
// declared object with properties, explicit type, then the object fallback.
func ExtractType(s *Schema) TypeRef {
	if s == nil {
		return Primitive("object")
	}
	if s.Ref != "" {
		return Named(refName(s.Ref))
	}
	if len(s.AnyOf) > 0 {
		members := make([]TypeRef, 0, len(s.AnyOf))
		for _, branch := range s.AnyOf {
			if branch != nil && branch.Type == "null" {
				continue
			}
			members = append(members, ExtractType(branch))
		}
		return Union(members...)
	}
	if len(s.OneOf) > 0 {
		members := make([]TypeRef, 0, len(s.OneOf))
		for _, branch := range s.OneOf {
			members = append(members, ExtractType(branch))
		}
		return Union(members...)
	}
	if len(s.AllOf) > 0 {
		return ExtractType(s.AllOf[0])
	}
	if s.Type == "array" && s.Items != nil {
		return Array(ExtractType(s.Items))
	}
	if s.Type == "object" && len(s.Properties) > 0 {
		props := make(map[string]TypeRef, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = ExtractType(prop)
		}
		return ObjectOf(props, s.Required)
	}
	if s.Type != "" {
		return Primitive(s.Type)
	}
	return Primitive("object")
}
