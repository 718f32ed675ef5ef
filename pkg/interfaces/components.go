package interfaces

import (
	"context"
	"html/template"
	"time"
)

// ComponentRegistry stores the closed set of custom elements a document body
// may reference. Implementations must be safe for concurrent use.
type ComponentRegistry interface {
	// Register stores a definition and returns an error when a component
	// with the same name already exists or the definition fails validation.
	Register(definition ComponentDefinition) error

	// Get returns the definition for the supplied element name.
	Get(name string) (ComponentDefinition, bool)

	// List exposes the current catalogue, sorted at the implementor's discretion.
	List() []ComponentDefinition
}

// ComponentRenderer executes a component definition and returns HTML output.
type ComponentRenderer interface {
	Render(ctx ComponentContext, name string, params map[string]any, inner template.HTML) (template.HTML, error)
}

// ComponentParser extracts custom element invocations from a document body.
type ComponentParser interface {
	Parse(content string) ([]ParsedComponent, error)
	Extract(content string) (placeholders string, components []ParsedComponent, err error)
}

// ComponentSanitizer encapsulates sanitisation helpers applied after rendering.
type ComponentSanitizer interface {
	Sanitize(html string) (string, error)
	ValidateURL(raw string) error
	ValidateAttributes(attrs map[string]any) error
}

// ComponentDefinition captures the metadata, validation schema, and template
// the registry stores for one element.
type ComponentDefinition struct {
	Name        string
	Description string
	Category    string
	AllowInner  bool
	CacheTTL    time.Duration
	Schema      ComponentSchema
	Template    string
	Handler     ComponentHandler
}

// ComponentSchema defines the parameters accepted by an element.
type ComponentSchema struct {
	Params []ComponentParam
}

// ComponentParam describes a single element attribute. JSONSchema, when set,
// is applied to the coerced value in addition to Validate.
type ComponentParam struct {
	Name       string
	Type       ComponentParamType
	Required   bool
	Default    any
	Validate   ComponentValidator
	JSONSchema map[string]any
}

// ComponentParamType enumerates the supported attribute coercions.
type ComponentParamType string

const (
	ComponentParamString ComponentParamType = "string"
	ComponentParamInt    ComponentParamType = "int"
	ComponentParamBool   ComponentParamType = "bool"
	ComponentParamArray  ComponentParamType = "array"
	ComponentParamURL    ComponentParamType = "url"
	ComponentParamAny    ComponentParamType = "any"
)

// ComponentValidator allows definitions to perform custom validation.
type ComponentValidator func(value any) error

// ComponentHandler renders an element with resolved parameters.
type ComponentHandler func(ctx ComponentContext, params map[string]any, inner template.HTML) (template.HTML, error)

// ComponentContext provides runtime metadata surfaced during rendering.
type ComponentContext struct {
	Context   context.Context
	Locale    string
	Cache     CacheProvider
	Sanitizer ComponentSanitizer
}

// ParsedComponent represents an element invocation found in a document body.
// Inner holds the raw (unrendered) children for paired tags.
type ParsedComponent struct {
	Name        string
	Params      map[string]any
	Inner       string
	SelfClosing bool
}
