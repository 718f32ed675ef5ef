package components

import "errors"

var (
	// ErrDuplicateDefinition indicates an attempt to register a component name twice.
	ErrDuplicateDefinition = errors.New("components: duplicate definition")
	// ErrInvalidDefinition occurs when a definition fails schema validation.
	ErrInvalidDefinition = errors.New("components: invalid definition")
	// ErrUnknownComponent is returned when a body references an element outside the registry.
	ErrUnknownComponent = errors.New("components: unknown component")
	// ErrUnknownParameter indicates the element supplied an unexpected attribute.
	ErrUnknownParameter = errors.New("components: unknown parameter")
	// ErrMissingParameter indicates a required attribute was not provided.
	ErrMissingParameter = errors.New("components: missing required parameter")
	// ErrParameterType indicates an attribute could not be coerced to the declared type.
	ErrParameterType = errors.New("components: parameter type mismatch")
	// ErrUnsafeMarkup is returned by the sanitizer when rendered output is rejected.
	ErrUnsafeMarkup = errors.New("components: unsafe markup")
)
