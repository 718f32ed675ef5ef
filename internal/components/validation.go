package components

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// Validator performs definition and parameter validation.
type Validator struct {
	schemas *schemaCache
}

// NewValidator returns a Validator instance.
func NewValidator() *Validator {
	return &Validator{schemas: newSchemaCache()}
}

// ValidateDefinition ensures the definition has a name, a render target, and
// well-formed parameters whose JSON schemas compile.
func (v *Validator) ValidateDefinition(def interfaces.ComponentDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if def.Handler == nil && strings.TrimSpace(def.Template) == "" {
		return fmt.Errorf("%w: %s needs a handler or template", ErrInvalidDefinition, def.Name)
	}

	seen := make(map[string]struct{})
	for _, param := range def.Schema.Params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			return fmt.Errorf("%w: schema parameter name required", ErrInvalidDefinition)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate schema parameter %q", ErrInvalidDefinition, name)
		}
		seen[name] = struct{}{}

		switch param.Type {
		case interfaces.ComponentParamString,
			interfaces.ComponentParamInt,
			interfaces.ComponentParamBool,
			interfaces.ComponentParamArray,
			interfaces.ComponentParamURL,
			interfaces.ComponentParamAny:
		default:
			return fmt.Errorf("%w: parameter %q unknown type %q", ErrInvalidDefinition, name, param.Type)
		}

		if param.JSONSchema != nil {
			if _, err := v.schemas.compile(def.Name+"."+name, param.JSONSchema); err != nil {
				return fmt.Errorf("%w: parameter %q schema: %v", ErrInvalidDefinition, name, err)
			}
		}
	}
	return nil
}

// CoerceParams validates supplied attributes against the definition schema,
// returning a normalised map with defaults applied.
func (v *Validator) CoerceParams(def interfaces.ComponentDefinition, supplied map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(def.Schema.Params))
	allowed := make(map[string]interfaces.ComponentParam, len(def.Schema.Params))
	for _, param := range def.Schema.Params {
		allowed[param.Name] = param
		if param.Default != nil {
			out[param.Name] = param.Default
		}
	}

	for key, value := range supplied {
		param, ok := allowed[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s on %s", ErrUnknownParameter, key, def.Name)
		}
		coerced, err := coerceValue(param.Type, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %v", ErrParameterType, key, err)
		}
		if param.JSONSchema != nil {
			if err := v.schemas.validate(def.Name+"."+param.Name, param.JSONSchema, coerced); err != nil {
				return nil, fmt.Errorf("%w: %s %v", ErrParameterType, key, err)
			}
		}
		if param.Validate != nil {
			if err := param.Validate(coerced); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", def.Name, key, err)
			}
		}
		out[key] = coerced
	}

	for _, param := range def.Schema.Params {
		if param.Required {
			if _, ok := out[param.Name]; !ok {
				return nil, fmt.Errorf("%w: %s on %s", ErrMissingParameter, param.Name, def.Name)
			}
		}
	}

	return out, nil
}

func coerceValue(paramType interfaces.ComponentParamType, value any) (any, error) {
	switch paramType {
	case interfaces.ComponentParamString:
		return coerceString(value)
	case interfaces.ComponentParamInt:
		return coerceInt(value)
	case interfaces.ComponentParamBool:
		return coerceBool(value)
	case interfaces.ComponentParamArray:
		return coerceArray(value)
	case interfaces.ComponentParamURL:
		urlStr, err := coerceString(value)
		if err != nil {
			return nil, err
		}
		if _, err := url.Parse(urlStr); err != nil {
			return nil, err
		}
		return urlStr, nil
	case interfaces.ComponentParamAny:
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %q", paramType)
	}
}

func coerceString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	case map[string]any, []any:
		return "", fmt.Errorf("cannot convert %T to string", value)
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint, uint8, uint16, uint32, uint64:
		rv := reflect.ValueOf(v)
		return int(rv.Uint()), nil
	case float32:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, err
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", value)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true, nil
		case "0", "false", "f", "no", "n", "off":
			return false, nil
		default:
			return false, fmt.Errorf("cannot convert %q to bool", v)
		}
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}

func coerceArray(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case string:
		parts := strings.Split(v, ",")
		out := make([]any, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				out[i] = rv.Index(i).Interface()
			}
			return out, nil
		}
		return nil, fmt.Errorf("cannot convert %T to array", value)
	}
}
