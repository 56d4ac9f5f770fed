// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import "strings"

// Document represents a decoded OpenAPI 3.x specification.
type Document struct {
	OpenAPI    string                `json:"openapi" yaml:"openapi"`
	Info       Info                  `json:"info" yaml:"info"`
	Servers    []Server              `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]PathItem   `json:"paths" yaml:"paths"`
	Components *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// Info contains API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem represents the operations available on a path.
type PathItem struct {
	Get     *OperationObject `json:"get,omitempty" yaml:"get,omitempty"`
	Post    *OperationObject `json:"post,omitempty" yaml:"post,omitempty"`
	Put     *OperationObject `json:"put,omitempty" yaml:"put,omitempty"`
	Delete  *OperationObject `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch   *OperationObject `json:"patch,omitempty" yaml:"patch,omitempty"`
	Head    *OperationObject `json:"head,omitempty" yaml:"head,omitempty"`
	Options *OperationObject `json:"options,omitempty" yaml:"options,omitempty"`
}

// httpMethods lists the recognized verbs in iteration order.
var httpMethods = []string{"get", "post", "put", "delete", "patch", "head", "options"}

// operation returns the operation bound to the given lowercase verb.
func (p PathItem) operation(method string) *OperationObject {
	switch method {
	case "get":
		return p.Get
	case "post":
		return p.Post
	case "put":
		return p.Put
	case "delete":
		return p.Delete
	case "patch":
		return p.Patch
	case "head":
		return p.Head
	case "options":
		return p.Options
	}
	return nil
}

// OperationObject represents a raw API operation as declared in the spec.
type OperationObject struct {
	OperationID string                     `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []*ParameterObject         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBodyObject         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*ResponseObject `json:"responses,omitempty" yaml:"responses,omitempty"`
	Tags        []string                   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool                       `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security    []SecurityRequirement      `json:"security,omitempty" yaml:"security,omitempty"`
}

// ParameterObject represents a declared operation parameter.
type ParameterObject struct {
	Ref         string  `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	In          string  `json:"in,omitempty" yaml:"in,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBodyObject represents a declared request body.
type RequestBodyObject struct {
	Ref         string                     `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                       `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]MediaTypeObject `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaTypeObject represents one content entry.
type MediaTypeObject struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResponseObject represents a declared response.
type ResponseObject struct {
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaTypeObject `json:"content,omitempty" yaml:"content,omitempty"`
}

// SecurityRequirement maps a security scheme name to its required scopes.
type SecurityRequirement map[string][]string

// SecurityScheme represents a declared security scheme.
type SecurityScheme struct {
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	In           string `json:"in,omitempty" yaml:"in,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
}

// Components holds the reusable objects a document may reference.
type Components struct {
	Schemas         map[string]*Schema            `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Parameters      map[string]*ParameterObject   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBodyObject `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
	SecuritySchemes map[string]*SecurityScheme    `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// Schema represents a JSON-Schema fragment as it appears in the spec.
// Constraint fields use pointers so that absent keys stay distinguishable
// from zero values. ExclusiveMinimum/ExclusiveMaximum are `any` because
// OpenAPI 3.0 declares them as booleans and 3.1 as numbers.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any                `json:"default,omitempty" yaml:"default,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AllOf       []*Schema          `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	// String constraints
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`

	// Numeric constraints
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum any      `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any      `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	// Array constraints
	MinItems    *int  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems *bool `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Object constraints
	MinProperties *int `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties *int `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
}

// refName returns the final path segment of a reference string.
func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// deref follows internal schema references against #/components/schemas.
// It stops at the first unresolvable or repeated reference, leaving the
// $ref in place so the type extractor reports it as an opaque named type.
func (d *Document) deref(s *Schema) *Schema {
	seen := map[string]bool{}
	for s != nil && s.Ref != "" {
		if d == nil || d.Components == nil || seen[s.Ref] {
			return s
		}
		seen[s.Ref] = true
		target, ok := d.Components.Schemas[refName(s.Ref)]
		if !ok || !strings.HasPrefix(s.Ref, "#/components/schemas/") {
			return s
		}
		s = target
	}
	return s
}

// resolveParameter follows a parameter-level $ref against #/components/parameters.
func (d *Document) resolveParameter(p *ParameterObject) *ParameterObject {
	if p == nil || p.Ref == "" {
		return p
	}
	if d.Components != nil && strings.HasPrefix(p.Ref, "#/components/parameters/") {
		if target, ok := d.Components.Parameters[refName(p.Ref)]; ok {
			return target
		}
	}
	return p
}

// resolveRequestBody follows a body-level $ref against #/components/requestBodies.
func (d *Document) resolveRequestBody(rb *RequestBodyObject) *RequestBodyObject {
	if rb == nil || rb.Ref == "" {
		return rb
	}
	if d.Components != nil && strings.HasPrefix(rb.Ref, "#/components/requestBodies/") {
		if target, ok := d.Components.RequestBodies[refName(rb.Ref)]; ok {
			return target
		}
	}
	return rb
}
