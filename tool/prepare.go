// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/types"
)

// FormFile is a file part of a multipart form body.
type FormFile struct {
	Filename string
	Content  io.Reader
}

// PreparedRequest holds the routed pieces of an outgoing request.
type PreparedRequest struct {
	Path    string
	Query   map[string]string
	Headers map[string]string
	Cookies map[string]string
	Body    map[string]any
	Fields  map[string]string
	Files   map[string]FormFile
}

// HasForm reports whether the request carries form data.
func (r *PreparedRequest) HasForm() bool {
	return len(r.Fields) > 0 || len(r.Files) > 0
}

type argPair struct {
	key   string
	value any
}

// PrepareRequestData maps named arguments onto path substitution, query
// string, headers, cookies and body per each parameter's location.
//
// Shadowed body parameters (name_body) read their value from the
// unsuffixed argument. A missing required argument or a type mismatch is
// an error; unknown argument keys are logged and ignored.
func (t *APITool) PrepareRequestData(args map[string]any) (*PreparedRequest, error) {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]argPair, 0, len(args))
	for _, key := range keys {
		pairs = append(pairs, argPair{key: key, value: args[key]})
	}

	// Shadow resolution: each name_body parameter picks up the value of
	// its unsuffixed source argument without removing the original.
	shadowNames := make([]string, 0)
	for name := range t.parameters {
		if strings.HasSuffix(name, openapi.ShadowSuffix) {
			shadowNames = append(shadowNames, name)
		}
	}
	sort.Strings(shadowNames)
	for _, name := range shadowNames {
		source := strings.TrimSuffix(name, openapi.ShadowSuffix)
		if value, ok := args[source]; ok {
			pairs = append(pairs, argPair{key: name, value: value})
		}
	}

	prepared := &PreparedRequest{
		Path:    t.path,
		Query:   map[string]string{},
		Headers: map[string]string{},
		Cookies: map[string]string{},
		Body:    map[string]any{},
		Fields:  map[string]string{},
		Files:   map[string]FormFile{},
	}
	if t.contentType != "" {
		prepared.Headers["Content-Type"] = t.contentType
	}
	if t.accept != "" {
		prepared.Headers["Accept"] = t.accept
	}
	for name, value := range t.cookies {
		prepared.Cookies[name] = value
	}

	if err := t.checkRequired(args); err != nil {
		return nil, err
	}

	for _, pair := range pairs {
		param, known := t.parameters[pair.key]
		if !known {
			t.logger.Warn("ignoring unknown parameter",
				zap.String("parameter", pair.key),
			)
			continue
		}
		// File-like form values carry readers, not the scalar the schema
		// declares, so they route without a type check.
		if param.In == openapi.InFormData {
			if file, ok := asFormFile(pair.value); ok {
				prepared.Files[strings.TrimSuffix(pair.key, openapi.ShadowSuffix)] = file
				continue
			}
		}
		if err := t.checkType(pair.key, pair.value, param.Type.Single()); err != nil {
			return nil, err
		}

		switch param.In {
		case openapi.InBody:
			prepared.Body[strings.TrimSuffix(pair.key, openapi.ShadowSuffix)] = pair.value
		case openapi.InPath:
			placeholder := "{" + pair.key + "}"
			prepared.Path = strings.ReplaceAll(prepared.Path, placeholder, fmt.Sprint(pair.value))
		case openapi.InQuery:
			prepared.Query[pair.key] = queryValue(pair.value)
		case openapi.InHeader:
			prepared.Headers[pair.key] = fmt.Sprint(pair.value)
		case openapi.InCookie:
			prepared.Cookies[pair.key] = fmt.Sprint(pair.value)
		case openapi.InFormData:
			prepared.Fields[strings.TrimSuffix(pair.key, openapi.ShadowSuffix)] = fmt.Sprint(pair.value)
		case openapi.InVirtual:
			// Resolved at call time, never routed from arguments here.
		}
	}

	return prepared, nil
}

// checkRequired verifies every required parameter has a provided argument,
// mapping shadow names back to their unsuffixed source first. Virtual
// parameters and the credential parameter are resolved elsewhere.
func (t *APITool) checkRequired(args map[string]any) error {
	names := make([]string, 0, len(t.parameters))
	for name := range t.parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		param := t.parameters[name]
		if !param.Required || param.In == openapi.InVirtual || name == t.accessTokenName {
			continue
		}
		lookup := strings.TrimSuffix(name, openapi.ShadowSuffix)
		if _, ok := args[lookup]; !ok {
			return types.NewError(types.ErrMissingParameter,
				fmt.Sprintf("missing required parameter %q", name))
		}
	}
	return nil
}

// queryValue renders a query argument: list values are joined as a
// comma-separated string, scalars pass through.
func queryValue(value any) string {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

// asFormFile recognizes file-like argument values.
func asFormFile(value any) (FormFile, bool) {
	switch v := value.(type) {
	case FormFile:
		return v, true
	case *FormFile:
		return *v, true
	case io.Reader:
		return FormFile{Content: v}, true
	}
	return FormFile{}, false
}
