// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/types"
)

// kindChecks is the closed mapping from normalized type names to
// value-kind checks. An unlisted type name is a configuration error,
// never a silent pass.
var kindChecks = map[string]func(any) bool{
	"string":  isString,
	"str":     isString,
	"integer": isInteger,
	"int":     isInteger,
	"number":  isNumber,
	"float":   isNumber,
	"double":  isNumber,
	"boolean": isBool,
	"bool":    isBool,
	"array":   isList,
	"list":    isList,
	"object":  isMap,
	"dict":    isMap,
	"null":    isNil,
}

// ValidateParameterType checks a provided value against a parameter's
// declared type. A one-member union is treated as its member; a wider
// union accepts the value if any member matches. Failure is a
// TYPE_MISMATCH error.
func (t *APITool) ValidateParameterType(name string, value any) error {
	param, ok := t.parameters[name]
	if !ok {
		return types.NewError(types.ErrUnknownParameter, fmt.Sprintf("unknown parameter %q", name))
	}
	return t.checkType(name, value, param.Type.Single())
}

func (t *APITool) checkType(name string, value any, declared openapi.TypeRef) error {
	switch declared.Kind {
	case openapi.KindUnion:
		for _, member := range declared.Members {
			// A nested-object member only matches an actual mapping.
			if member.Kind == openapi.KindObject && !isMap(value) {
				continue
			}
			if t.checkType(name, value, member.Single()) == nil {
				return nil
			}
		}
		return types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("parameter %q: value %v matches no member of %s", name, value, declared))
	case openapi.KindArray:
		if isList(value) {
			return nil
		}
		return types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("parameter %q: expected array, got %T", name, value))
	case openapi.KindObject:
		if isMap(value) {
			return nil
		}
		return types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("parameter %q: expected object, got %T", name, value))
	case openapi.KindPrimitive, openapi.KindNamed:
		check, ok := kindChecks[declared.Name]
		if !ok {
			t.logger.Warn("unrecognized parameter type",
				zap.String("parameter", name),
				zap.String("type", declared.Name),
			)
			return types.NewError(types.ErrTypeMismatch,
				fmt.Sprintf("parameter %q: unrecognized type %q", name, declared.Name))
		}
		if check(value) {
			return nil
		}
		return types.NewError(types.ErrTypeMismatch,
			fmt.Sprintf("parameter %q: expected %s, got %T", name, declared.Name, value))
	}
	// Zero descriptor: nothing declared, nothing to enforce.
	return nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// isInteger accepts Go integer kinds plus whole-valued floats, since JSON
// decoding hands every number over as float64.
func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == float64(int64(n))
	case float32:
		return float64(n) == float64(int64(n))
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func isMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}

func isNil(v any) bool {
	return v == nil
}
