package components

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const cacheKeyPrefix = "component:"

// Renderer executes component definitions and produces sanitised HTML output.
type Renderer struct {
	registry  interfaces.ComponentRegistry
	validator *Validator
	sanitizer interfaces.ComponentSanitizer
	cache     interfaces.CacheProvider

	templates sync.Map
}

// RendererOption configures the renderer instance.
type RendererOption func(*Renderer)

// WithRendererSanitizer overrides the default sanitizer.
func WithRendererSanitizer(s interfaces.ComponentSanitizer) RendererOption {
	return func(r *Renderer) {
		r.sanitizer = s
	}
}

// WithRendererCache supplies a cache provider used when definitions specify a CacheTTL.
func WithRendererCache(cache interfaces.CacheProvider) RendererOption {
	return func(r *Renderer) {
		r.cache = cache
	}
}

// NewRenderer constructs a renderer using the provided registry and validator.
func NewRenderer(registry interfaces.ComponentRegistry, validator *Validator, opts ...RendererOption) *Renderer {
	if validator == nil {
		validator = NewValidator()
	}
	r := &Renderer{
		registry:  registry,
		validator: validator,
		sanitizer: NewSanitizer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes the named component and returns sanitised HTML.
func (r *Renderer) Render(ctx interfaces.ComponentContext, name string, params map[string]any, inner template.HTML) (template.HTML, error) {
	def, ok := r.registry.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}

	sanitizer := r.resolveSanitizer(ctx)
	ctx.Sanitizer = sanitizer
	if sanitizer != nil {
		if err := sanitizer.ValidateAttributes(params); err != nil {
			return "", err
		}
	}

	coerced, err := r.validator.CoerceParams(def, params)
	if err != nil {
		return "", err
	}
	if !def.AllowInner {
		inner = ""
	}

	cacheProvider := r.resolveCache(ctx)
	cacheKey := ""
	if cacheProvider != nil && def.CacheTTL > 0 {
		cacheKey = buildCacheKey(ctx.Locale, def.Name, coerced, inner)
		if cached, err := cacheProvider.Get(background(ctx.Context), cacheKey); err == nil {
			if cachedHTML, ok := cached.(string); ok {
				return template.HTML(cachedHTML), nil
			}
		}
	}

	var output string
	switch {
	case def.Handler != nil:
		result, err := def.Handler(ctx, coerced, inner)
		if err != nil {
			return "", err
		}
		output = string(result)
	case def.Template != "":
		rendered, err := r.renderTemplate(def, coerced, inner)
		if err != nil {
			return "", err
		}
		output = rendered
	default:
		return "", fmt.Errorf("%w: %s has no handler or template", ErrInvalidDefinition, def.Name)
	}

	if sanitizer != nil {
		sanitised, err := sanitizer.Sanitize(output)
		if err != nil {
			return "", err
		}
		output = sanitised
	}

	if cacheKey != "" {
		_ = cacheProvider.Set(background(ctx.Context), cacheKey, output, def.CacheTTL)
	}

	return template.HTML(output), nil
}

func (r *Renderer) renderTemplate(def interfaces.ComponentDefinition, params map[string]any, inner template.HTML) (string, error) {
	data := make(map[string]any, len(params)+1)
	for key, value := range params {
		data[key] = value
	}
	data["Inner"] = inner

	tmpl, err := r.template(def)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) template(def interfaces.ComponentDefinition) (*template.Template, error) {
	key := registryKey(def.Name)
	if cached, ok := r.templates.Load(key); ok {
		return cached.(*template.Template), nil
	}
	tmpl, err := template.New(def.Name).Option("missingkey=zero").Parse(def.Template)
	if err != nil {
		return nil, err
	}
	actual, _ := r.templates.LoadOrStore(key, tmpl)
	return actual.(*template.Template), nil
}

func (r *Renderer) resolveSanitizer(ctx interfaces.ComponentContext) interfaces.ComponentSanitizer {
	if ctx.Sanitizer != nil {
		return ctx.Sanitizer
	}
	return r.sanitizer
}

func (r *Renderer) resolveCache(ctx interfaces.ComponentContext) interfaces.CacheProvider {
	if ctx.Cache != nil {
		return ctx.Cache
	}
	return r.cache
}

func buildCacheKey(locale, name string, params map[string]any, inner template.HTML) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(locale)
	builder.WriteString("|")
	builder.WriteString(strings.ToLower(name))
	for _, key := range keys {
		builder.WriteString("|")
		builder.WriteString(key)
		builder.WriteString("=")
		if encoded, err := json.Marshal(params[key]); err == nil {
			builder.Write(encoded)
		} else {
			builder.WriteString(fmt.Sprintf("%v", params[key]))
		}
	}
	builder.WriteString("|inner=")
	builder.WriteString(string(inner))

	h := sha1.Sum([]byte(builder.String()))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func background(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

var _ interfaces.ComponentRenderer = (*Renderer)(nil)
