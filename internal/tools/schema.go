package tools

import (
	"fmt"
	"slices"
)

// validateSchema checks args against the subset of JSON Schema our tool
// definitions use: an object with typed properties, optional enums,
// required fields, and arrays of strings. Unknown argument keys are
// rejected so a hallucinated parameter fails closed.
func validateSchema(schema, args map[string]any) error {
	props, _ := schema["properties"].(map[string]any)

	if required, ok := schema["required"].([]string); ok {
		for _, name := range required {
			if _, present := args[name]; !present {
				return fmt.Errorf("missing required argument %q", name)
			}
		}
	}

	for name, raw := range args {
		propRaw, ok := props[name]
		if !ok {
			return fmt.Errorf("unexpected argument %q", name)
		}
		prop, _ := propRaw.(map[string]any)
		if err := validateValue(prop, raw); err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
	}

	return nil
}

func validateValue(prop map[string]any, raw any) error {
	typ, _ := prop["type"].(string)

	switch typ {
	case "string":
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", raw)
		}
		if enum, ok := prop["enum"].([]string); ok && s != "" {
			if !slices.Contains(enum, s) {
				return fmt.Errorf("value %q not in %v", s, enum)
			}
		}
	case "integer", "number":
		switch raw.(type) {
		case float64, int: // JSON numbers decode as float64
		default:
			return fmt.Errorf("expected number, got %T", raw)
		}
	case "boolean":
		if _, ok := raw.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", raw)
		}
	case "array":
		items, ok := raw.([]any)
		if !ok {
			// Models sometimes send a single string where an array is
			// declared; accept it as a one-element list.
			if _, isStr := raw.(string); isStr {
				return nil
			}
			return fmt.Errorf("expected array, got %T", raw)
		}
		itemProp, _ := prop["items"].(map[string]any)
		for i, item := range items {
			if err := validateValue(itemProp, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	case "", "object":
		// No constraint beyond presence.
	default:
		return fmt.Errorf("unsupported schema type %q", typ)
	}

	return nil
}
