package components

import (
	"errors"
	"testing"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

type noopValidator struct{}

func (noopValidator) ValidateDefinition(interfaces.ComponentDefinition) error { return nil }

func TestRegistry_RegisterAndGetCaseInsensitive(t *testing.T) {
	registry := NewRegistry(noopValidator{})

	def := interfaces.ComponentDefinition{Name: "Demo", Template: "<p>demo</p>"}
	if err := registry.Register(def); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	for _, name := range []string{"Demo", "demo", "DEMO"} {
		got, ok := registry.Get(name)
		if !ok || got.Name != "Demo" {
			t.Fatalf("Get(%q) expected definition, got %+v %v", name, got, ok)
		}
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	registry := NewRegistry(noopValidator{})
	def := interfaces.ComponentDefinition{Name: "Demo", Template: "x"}
	if err := registry.Register(def); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	def.Name = "demo"
	if err := registry.Register(def); !errors.Is(err, ErrDuplicateDefinition) {
		t.Fatalf("expected ErrDuplicateDefinition, got %v", err)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	registry, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	list := registry.List()
	want := []string{"Alert", "SpecViewer", "StatCards", "Tweet", "YouTube"}
	if len(list) != len(want) {
		t.Fatalf("expected %d built-ins, got %d", len(want), len(list))
	}
	for i, def := range list {
		if def.Name != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], def.Name)
		}
	}
}

func TestValidator_RejectsBadDefinitions(t *testing.T) {
	v := NewValidator()
	cases := map[string]interfaces.ComponentDefinition{
		"no name":     {Template: "x"},
		"no target":   {Name: "Empty"},
		"bad type":    {Name: "T", Template: "x", Schema: interfaces.ComponentSchema{Params: []interfaces.ComponentParam{{Name: "a", Type: "float"}}}},
		"dup param":   {Name: "T", Template: "x", Schema: interfaces.ComponentSchema{Params: []interfaces.ComponentParam{{Name: "a", Type: "string"}, {Name: "a", Type: "string"}}}},
		"bad schema":  {Name: "T", Template: "x", Schema: interfaces.ComponentSchema{Params: []interfaces.ComponentParam{{Name: "a", Type: "any", JSONSchema: map[string]any{"type": 12}}}}},
	}
	for name, def := range cases {
		if err := v.ValidateDefinition(def); !errors.Is(err, ErrInvalidDefinition) {
			t.Fatalf("%s: expected ErrInvalidDefinition, got %v", name, err)
		}
	}
}

func TestValidator_CoerceParams(t *testing.T) {
	v := NewValidator()
	def := interfaces.ComponentDefinition{
		Name:     "Demo",
		Template: "x",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "label", Type: interfaces.ComponentParamString, Required: true},
				{Name: "count", Type: interfaces.ComponentParamInt, Default: 1},
				{Name: "enabled", Type: interfaces.ComponentParamBool},
				{Name: "tags", Type: interfaces.ComponentParamArray},
			},
		},
	}

	out, err := v.CoerceParams(def, map[string]any{
		"label":   float64(7),
		"enabled": "yes",
		"tags":    "a, b",
	})
	if err != nil {
		t.Fatalf("CoerceParams: %v", err)
	}
	if out["label"] != "7" || out["count"] != 1 || out["enabled"] != true {
		t.Fatalf("unexpected coercion %#v", out)
	}
	if tags, _ := out["tags"].([]any); len(tags) != 2 || tags[1] != "b" {
		t.Fatalf("unexpected tags %#v", out["tags"])
	}

	if _, err := v.CoerceParams(def, map[string]any{}); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
	if _, err := v.CoerceParams(def, map[string]any{"label": "x", "other": 1}); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
	if _, err := v.CoerceParams(def, map[string]any{"label": "x", "count": 1.5}); !errors.Is(err, ErrParameterType) {
		t.Fatalf("expected ErrParameterType, got %v", err)
	}
}

func TestValidator_JSONSchema(t *testing.T) {
	v := NewValidator()
	def := statCardsDefinition()

	if _, err := v.CoerceParams(def, map[string]any{"stats": []any{}}); !errors.Is(err, ErrParameterType) {
		t.Fatalf("expected empty stats to fail schema, got %v", err)
	}
	if _, err := v.CoerceParams(def, map[string]any{"stats": []any{map[string]any{"description": "no stat"}}}); !errors.Is(err, ErrParameterType) {
		t.Fatalf("expected missing stat to fail schema, got %v", err)
	}
	if _, err := v.CoerceParams(def, map[string]any{"stats": []any{map[string]any{"stat": float64(3)}}}); err != nil {
		t.Fatalf("expected numeric stat to pass, got %v", err)
	}
}
