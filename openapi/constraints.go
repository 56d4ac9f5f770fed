// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

// ExtractConstraints pulls the validation constraints relevant to a
// schema's declared type. Only keys actually present in the fragment are
// emitted; nothing is invented.
func ExtractConstraints(s *Schema) map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{}
	switch s.Type {
	case "string":
		if s.MinLength != nil {
			out["minLength"] = *s.MinLength
		}
		if s.MaxLength != nil {
			out["maxLength"] = *s.MaxLength
		}
		if s.Pattern != "" {
			out["pattern"] = s.Pattern
		}
		if s.Format != "" {
			out["format"] = s.Format
		}
	case "integer", "number":
		if s.Minimum != nil {
			out["minimum"] = *s.Minimum
		}
		if s.Maximum != nil {
			out["maximum"] = *s.Maximum
		}
		if s.ExclusiveMinimum != nil {
			out["exclusiveMinimum"] = s.ExclusiveMinimum
		}
		if s.ExclusiveMaximum != nil {
			out["exclusiveMaximum"] = s.ExclusiveMaximum
		}
		if s.MultipleOf != nil {
			out["multipleOf"] = *s.MultipleOf
		}
	case "array":
		if s.MinItems != nil {
			out["minItems"] = *s.MinItems
		}
		if s.MaxItems != nil {
			out["maxItems"] = *s.MaxItems
		}
		if s.UniqueItems != nil {
			out["uniqueItems"] = *s.UniqueItems
		}
	case "object":
		if s.MinProperties != nil {
			out["minProperties"] = *s.MinProperties
		}
		if s.MaxProperties != nil {
			out["maxProperties"] = *s.MaxProperties
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
