package components

import (
	"fmt"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// RegisterBuiltIns registers the built-in definitions on the provided registry.
// When names is empty, every built-in element is registered.
func RegisterBuiltIns(registry interfaces.ComponentRegistry, names []string) error {
	if registry == nil {
		return fmt.Errorf("components: registry is required")
	}

	available := make(map[string]interfaces.ComponentDefinition)
	for _, def := range BuiltInDefinitions() {
		available[registryKey(def.Name)] = def
	}

	if len(names) == 0 {
		for _, def := range BuiltInDefinitions() {
			if err := registry.Register(def); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		key := registryKey(name)
		if key == "" {
			continue
		}
		def, ok := available[key]
		if !ok {
			return fmt.Errorf("%w: built-in %q not found", ErrUnknownComponent, name)
		}
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// NewDefaultRegistry returns a registry holding every built-in element.
func NewDefaultRegistry() (*Registry, error) {
	registry := NewRegistry(NewValidator())
	if err := RegisterBuiltIns(registry, nil); err != nil {
		return nil, err
	}
	return registry, nil
}
