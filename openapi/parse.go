// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/types"
)

// ParamLocation is where a parameter value is placed in an HTTP request.
type ParamLocation string

const (
	InPath     ParamLocation = "path"
	InQuery    ParamLocation = "query"
	InHeader   ParamLocation = "header"
	InCookie   ParamLocation = "cookie"
	InBody     ParamLocation = "body"
	InFormData ParamLocation = "formData"
	// InVirtual marks runtime-injected parameters (auth tokens) that are
	// resolved at call time rather than routed onto the wire directly.
	InVirtual ParamLocation = "virtual"
)

// ShadowSuffix is appended to a body parameter's name when it collides
// with a same-named parameter in another location.
const ShadowSuffix = "_body"

// Param is the normalized parameter descriptor.
type Param struct {
	In          ParamLocation
	Required    bool
	Type        TypeRef
	Description string
	Enum        []any
	Constraints map[string]any
}

// paramWire is the serialized shape of Param minus the inlined constraints.
type paramWire struct {
	In          ParamLocation `json:"_type"`
	Required    bool          `json:"required"`
	Type        TypeRef       `json:"type"`
	Description string        `json:"description"`
	Enum        []any         `json:"enum,omitempty"`
}

// MarshalJSON flattens the constraint keys into the descriptor object,
// alongside _type/required/type/description/enum.
func (p Param) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(paramWire{
		In:          p.In,
		Required:    p.Required,
		Type:        p.Type,
		Description: p.Description,
		Enum:        p.Enum,
	})
	if err != nil {
		return nil, err
	}
	if len(p.Constraints) == 0 {
		return base, nil
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range p.Constraints {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads back the flattened descriptor shape.
func (p *Param) UnmarshalJSON(data []byte) error {
	var wire paramWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, known := range []string{"_type", "required", "type", "description", "enum"} {
		delete(raw, known)
	}
	p.In = wire.In
	p.Required = wire.Required
	p.Type = wire.Type
	p.Description = wire.Description
	p.Enum = wire.Enum
	if len(raw) > 0 {
		p.Constraints = raw
	} else {
		p.Constraints = nil
	}
	return nil
}

// Response is the normalized per-status response descriptor. Only the
// first content entry of a declared response is captured.
type Response struct {
	Description string   `json:"description"`
	ContentType string   `json:"content_type,omitempty"`
	Schema      *TypeRef `json:"schema,omitempty"`
}

// Operation is the normalized operation descriptor, one per operationId.
type Operation struct {
	Path        string                `json:"path"`
	Method      string                `json:"method"`
	Summary     string                `json:"summary"`
	Description string                `json:"description"`
	Parameters  map[string]*Param     `json:"parameters"`
	Responses   map[string]Response   `json:"responses"`
	Tags        []string              `json:"tags"`
	Deprecated  bool                  `json:"deprecated"`
	Security    []SecurityRequirement `json:"security,omitempty"`
}

// ParseOptions configures a Parse run.
type ParseOptions struct {
	// ToolPrefix restricts parsing to paths with this prefix.
	ToolPrefix string
	// IncludeDeprecated keeps operations marked deprecated.
	IncludeDeprecated bool
	// Observer, when set, counts parsed operations and parse-error skips.
	Observer Observer
}

// Parser walks an OpenAPI document's path/method tree and emits a mapping
// of operationId to normalized operation descriptor.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a spec parser.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.With(zap.String("component", "spec_parser"))}
}

// Parse produces the descriptor map. It fails if the document has no
// paths. An operation whose fields cannot be read is logged and skipped;
// any other failure aborts the whole parse.
func (p *Parser) Parse(doc *Document, opts ParseOptions) (map[string]*Operation, error) {
	if doc == nil || doc.Paths == nil {
		return nil, types.NewError(types.ErrSpecStructure, "spec has no paths")
	}

	operations := map[string]*Operation{}

	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if opts.ToolPrefix != "" && !strings.HasPrefix(path, opts.ToolPrefix) {
			continue
		}
		item := doc.Paths[path]
		for _, method := range httpMethods {
			raw := item.operation(method)
			if raw == nil {
				continue
			}
			if raw.Deprecated && !opts.IncludeDeprecated {
				p.logger.Debug("skipping deprecated operation",
					zap.String("path", path),
					zap.String("method", method),
				)
				continue
			}

			id, op, err := p.parseOperation(doc, path, method, raw)
			if err != nil {
				if types.GetErrorCode(err) == types.ErrOperationParse {
					p.logger.Warn("skipping unparsable operation",
						zap.String("path", path),
						zap.String("method", method),
						zap.Error(err),
					)
					if opts.Observer != nil {
						opts.Observer.OperationSkipped()
					}
					continue
				}
				return nil, fmt.Errorf("failed to parse %s %s: %w", method, path, err)
			}
			if _, exists := operations[id]; exists {
				p.logger.Warn("duplicate operationId, keeping the later operation",
					zap.String("operation_id", id),
				)
			}
			operations[id] = op
			if opts.Observer != nil {
				opts.Observer.OperationParsed()
			}
		}
	}

	p.logger.Info("parsed spec",
		zap.String("title", doc.Info.Title),
		zap.Int("operations", len(operations)),
	)
	return operations, nil
}

func (p *Parser) parseOperation(doc *Document, path, method string, raw *OperationObject) (string, *Operation, error) {
	params := map[string]*Param{}

	for _, declared := range raw.Parameters {
		resolved := doc.resolveParameter(declared)
		if resolved == nil || resolved.Name == "" {
			return "", nil, types.NewError(types.ErrOperationParse, "parameter missing name")
		}
		location, err := parameterLocation(resolved.In)
		if err != nil {
			return "", nil, err
		}
		schema := doc.deref(resolved.Schema)
		param := &Param{
			In:          location,
			Required:    resolved.Required,
			Type:        ExtractType(schema),
			Description: resolved.Description,
			Constraints: ExtractConstraints(schema),
		}
		if schema != nil {
			param.Enum = schema.Enum
		}
		params[resolved.Name] = param
	}

	if raw.RequestBody != nil {
		body := doc.resolveRequestBody(raw.RequestBody)
		for _, contentType := range sortedContentTypes(body.Content) {
			media := body.Content[contentType]
			p.flattenBody(doc, contentType, media.Schema, body.Required, params)
		}
	}

	responses := map[string]Response{}
	for status, declared := range raw.Responses {
		if declared == nil {
			continue
		}
		response := Response{Description: declared.Description}
		if len(declared.Content) > 0 {
			contentType := sortedContentTypes(declared.Content)[0]
			response.ContentType = contentType
			extracted := ExtractType(doc.deref(declared.Content[contentType].Schema))
			response.Schema = &extracted
		}
		responses[status] = response
	}

	id := raw.OperationID
	if id == "" {
		id = fmt.Sprintf("%s_%s", method, sanitizePath(path))
	}

	return id, &Operation{
		Path:        path,
		Method:      method,
		Summary:     raw.Summary,
		Description: raw.Description,
		Parameters:  params,
		Responses:   responses,
		Tags:        slices.Clone(raw.Tags),
		Deprecated:  raw.Deprecated,
		Security:    raw.Security,
	}, nil
}

// flattenBody folds one request-body content entry into the parameter map.
// Object bodies flatten per property with _body collision suffixing; array
// bodies become a single "items" parameter; anything else (scalar or
// unresolved reference) is kept as an opaque "body" parameter.
func (p *Parser) flattenBody(doc *Document, contentType string, schema *Schema, bodyRequired bool, params map[string]*Param) {
	location := InBody
	if isFormContentType(contentType) {
		location = InFormData
	}

	schema = doc.deref(schema)
	extracted := ExtractType(schema)

	switch {
	case extracted.Kind == KindObject:
		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			prop := doc.deref(schema.Properties[name])
			param := &Param{
				In:          location,
				Required:    slices.Contains(schema.Required, name),
				Type:        ExtractType(prop),
				Constraints: ExtractConstraints(prop),
			}
			if prop != nil {
				param.Description = prop.Description
				param.Enum = prop.Enum
			}
			key := name
			if _, exists := params[key]; exists {
				key = name + ShadowSuffix
			}
			params[key] = param
		}
	case extracted.Kind == KindArray:
		key := "items"
		if _, exists := params[key]; exists {
			key = "items" + ShadowSuffix
		}
		params[key] = &Param{
			In:       location,
			Required: bodyRequired,
			Type:     extracted,
		}
	default:
		key := "body"
		if _, exists := params[key]; exists {
			key = "body_data"
		}
		params[key] = &Param{
			In:       location,
			Required: bodyRequired,
			Type:     extracted,
		}
	}
}

func parameterLocation(in string) (ParamLocation, error) {
	switch in {
	case "path":
		return InPath, nil
	case "query":
		return InQuery, nil
	case "header":
		return InHeader, nil
	case "cookie":
		return InCookie, nil
	}
	return "", types.NewError(types.ErrOperationParse, fmt.Sprintf("unrecognized parameter location %q", in))
}

// sortedContentTypes orders content entries deterministically, with
// application/json first when present.
func sortedContentTypes(content map[string]MediaTypeObject) []string {
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ji, jj := keys[i] == "application/json", keys[j] == "application/json"
		if ji != jj {
			return ji
		}
		return keys[i] < keys[j]
	})
	return keys
}

func isFormContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}

func sanitizePath(path string) string {
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "{", "")
	path = strings.ReplaceAll(path, "}", "")
	return strings.Trim(path, "_")
}
