package components

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaCache compiles parameter schemas once per definition parameter.
type schemaCache struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

func newSchemaCache() *schemaCache {
	return &schemaCache{compiled: map[string]*jsonschema.Schema{}}
}

func (c *schemaCache) compile(key string, schema map[string]any) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if compiled, ok := c.compiled[key]; ok {
		return compiled, nil
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	resource := key + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(resource, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, err
	}
	c.compiled[key] = compiled
	return compiled, nil
}

// validate checks value against schema. The value is normalised through a
// JSON round trip so numbers and nested maps take the shapes the validator expects.
func (c *schemaCache) validate(key string, schema map[string]any, value any) error {
	compiled, err := c.compile(key, schema)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return err
	}

	if err := compiled.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return errors.New(describeIssues(validationErr))
		}
		return err
	}
	return nil
}

func describeIssues(err *jsonschema.ValidationError) string {
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			parts = append(parts, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(parts, "; ")
}
