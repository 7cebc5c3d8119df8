package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Command is one entry of the manifest command map.
type Command struct {
	Description string         `json:"description" validate:"required"`
	Example     string         `json:"example,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ValidateCommandMap checks that the value is a direct command map: command
// name to {description, example, parameters?}. Tagged-union schemas do not
// pass; callers convert those first.
func ValidateCommandMap(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("commands must be an object, got %T", value)
	}

	if isTaggedUnion(m) {
		return fmt.Errorf("commands object is a tagged-union schema, not a command map")
	}

	for name, entry := range m {
		cmd, err := decodeCommand(entry)
		if err != nil {
			return fmt.Errorf("command %q: %w", name, err)
		}

		if err := validate.Struct(cmd); err != nil {
			return fmt.Errorf("command %q: %w", name, err)
		}
	}

	return nil
}

// isTaggedUnion reports whether the schema is an anyOf/oneOf variant list.
func isTaggedUnion(m map[string]any) bool {
	_, ok := unionVariants(m)

	return ok
}

func unionVariants(m map[string]any) ([]any, bool) {
	for _, key := range []string{"anyOf", "oneOf"} {
		if vs, ok := m[key].([]any); ok {
			return vs, true
		}
	}

	return nil, false
}

func decodeCommand(entry any) (*Command, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var cmd Command
	if err := dec.Decode(&cmd); err != nil {
		return nil, err
	}

	return &cmd, nil
}

// ConvertTaggedUnion flattens an anyOf/oneOf command schema into a direct
// command map. Each variant must carry a literal command name: a
// single-value const or a single-element enum on properties.name. Existing
// manifest entries feed the description, example, and parameters fallback
// chains.
func ConvertTaggedUnion(schema map[string]any, existing map[string]any) (map[string]any, error) {
	variants, ok := unionVariants(schema)
	if !ok {
		return nil, fmt.Errorf("schema has no anyOf/oneOf variant list")
	}

	out := make(map[string]any, len(variants))

	for i, v := range variants {
		variant, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("variant %d is not an object", i)
		}

		nameSchema, ok := memberSchema(variant, "name")
		if !ok {
			return nil, fmt.Errorf("variant %d has no properties.name schema", i)
		}

		name, err := literalName(nameSchema)
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", i, err)
		}

		prior, _ := existing[name].(map[string]any)

		entry := map[string]any{
			"description": firstNonEmpty(
				stringAt(nameSchema, "description"),
				stringAt(variant, "description"),
				stringAt(prior, "description"),
				name,
			),
			"example": firstNonEmpty(
				stringAt(nameSchema, "example"),
				firstExample(nameSchema),
				stringAt(prior, "example"),
				"/"+name,
			),
		}

		if params := variantParameters(variant, prior); params != nil {
			entry["parameters"] = params
		}

		out[name] = entry
	}

	if err := ValidateCommandMap(out); err != nil {
		return nil, err
	}

	return out, nil
}

// memberSchema returns properties[member] as an object schema.
func memberSchema(variant map[string]any, member string) (map[string]any, bool) {
	props, ok := variant["properties"].(map[string]any)
	if !ok {
		return nil, false
	}

	m, ok := props[member].(map[string]any)

	return m, ok
}

// literalName reads the command name from a single-value const or a
// single-element enum.
func literalName(nameSchema map[string]any) (string, error) {
	if c, ok := nameSchema["const"].(string); ok && c != "" {
		return c, nil
	}

	if enum, ok := nameSchema["enum"].([]any); ok && len(enum) == 1 {
		if s, ok := enum[0].(string); ok && s != "" {
			return s, nil
		}
	}

	return "", fmt.Errorf("properties.name must declare a literal command name via const or single-element enum")
}

func variantParameters(variant, prior map[string]any) map[string]any {
	if p, ok := variant["parameters"].(map[string]any); ok {
		return p
	}

	if p, ok := prior["parameters"].(map[string]any); ok {
		return p
	}

	return nil
}

func firstExample(nameSchema map[string]any) string {
	if xs, ok := nameSchema["examples"].([]any); ok && len(xs) > 0 {
		if s, ok := xs[0].(string); ok {
			return s
		}
	}

	return ""
}

func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}

	s, _ := m[key].(string)

	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
