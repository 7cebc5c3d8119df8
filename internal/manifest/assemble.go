package manifest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"manifest-generator/internal/diagnostic"
	"manifest-generator/internal/extract"
)

const shortNameLimit = 32

// listenerShape is the accepted event name form: "entity.action".
var listenerShape = regexp.MustCompile(`^\w+\.\w+$`)

// PackageMeta is the subset of package metadata assembly consumes.
type PackageMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AssembleInput collects everything assembly merges.
type AssembleInput struct {
	// Existing is the previously written manifest, empty when none exists.
	Existing map[string]any
	// Metadata is the extraction result.
	Metadata *extract.Metadata
	// Package is the parsed package metadata, zero when absent.
	Package PackageMeta
	// Repo identifies the repository, used as a name fallback.
	Repo string
	// SkipBotEvents is the raw flag value: bool, string, or nil for unset.
	SkipBotEvents any
}

// Assemble merges the inputs into a field-ordered manifest. Field problems
// become warnings; the manifest is always produced.
func Assemble(in AssembleInput) (*Object, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	out := NewObject()

	// Keys of the existing manifest carry over unless recomputed below,
	// in sorted order so repeated runs serialize identically.
	keys := make([]string, 0, len(in.Existing))
	for key := range in.Existing {
		switch key {
		case "short_name", "commands", "listeners", "configuration", "skipBotEvents":
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		out.Set(key, in.Existing[key])
	}

	assembleIdentity(out, in, diags)
	assembleCommands(out, in, diags)
	assembleListeners(out, in.Metadata.SupportedEvents, diags)
	assembleConfiguration(out, in.Metadata.SettingsSchema, diags)

	out.Set("skipBotEvents", normalizeSkipBotEvents(in.SkipBotEvents, diags))

	out.Reorder()

	return out, diags
}

// assembleIdentity fills name, description, and the recomputed short_name.
func assembleIdentity(out *Object, in AssembleInput, diags *diagnostic.Diagnostics) {
	for _, f := range []struct {
		field string
		fresh string
	}{
		{"name", in.Package.Name},
		{"description", in.Package.Description},
	} {
		field, fresh := f.field, f.fresh

		if fresh != "" {
			out.Set(field, fresh)
			continue
		}

		if prior, ok := in.Existing[field]; ok {
			diags.AddWarning("stale_"+field,
				fmt.Sprintf("package metadata has no %s, keeping the existing manifest value", field),
				field)

			out.Set(field, prior)

			continue
		}

		diags.AddWarning("missing_"+field,
			fmt.Sprintf("no %s in package metadata or existing manifest", field), field)
	}

	base, _ := out.Get("name")
	name, _ := base.(string)

	if name == "" {
		name = in.Repo
	}

	if short := ShortName(name); short != "" {
		out.Set("short_name", short)
	}
}

// assembleCommands validates the loaded command schema as a direct map,
// converting tagged-union schemas first. Failures warn and omit the field.
func assembleCommands(out *Object, in AssembleInput, diags *diagnostic.Diagnostics) {
	schema := in.Metadata.CommandSchema
	if schema == nil {
		return
	}

	if err := ValidateCommandMap(schema); err == nil {
		out.Set("commands", schema)
		return
	}

	m, ok := schema.(map[string]any)
	if ok && isTaggedUnion(m) {
		prior, _ := in.Existing["commands"].(map[string]any)

		converted, err := ConvertTaggedUnion(m, prior)
		if err == nil {
			out.Set("commands", converted)
			return
		}

		diags.AddWarning("invalid_commands",
			fmt.Sprintf("tagged-union command schema could not be converted: %v", err),
			"commands")

		return
	}

	diags.AddWarning("invalid_commands",
		"command schema is neither a valid command map nor a tagged union, omitting",
		"commands")
}

// assembleListeners validates the supported events and writes them as the
// listener list.
func assembleListeners(out *Object, events []string, diags *diagnostic.Diagnostics) {
	if len(events) == 0 {
		diags.AddWarning("missing_listeners", "no supported events to register", "listeners")
		return
	}

	for _, e := range events {
		if !listenerShape.MatchString(e) {
			diags.AddWarning("invalid_listeners",
				fmt.Sprintf("event %q is not of the form entity.action, omitting listeners", e),
				"listeners")

			return
		}
	}

	out.Set("listeners", events)
}

// assembleConfiguration deep-clones the settings schema and applies the
// required-list revival pass.
func assembleConfiguration(out *Object, schema any, diags *diagnostic.Diagnostics) {
	if schema == nil {
		diags.AddWarning("missing_configuration",
			"settings schema did not load, omitting configuration", "configuration")

		return
	}

	revived, err := ReviveConfiguration(schema)
	if err != nil {
		diags.AddWarning("invalid_configuration",
			fmt.Sprintf("settings schema is not serializable: %v", err), "configuration")

		return
	}

	out.Set("configuration", revived)
}

// ReviveConfiguration deep-clones the schema via a JSON round-trip, then
// strips every property that declares a default from its parent's required
// list. A required list emptied by the pass is removed entirely. The pass
// applies to the configuration subtree only.
func ReviveConfiguration(schema any) (any, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var clone any
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}

	reviveRequired(clone)

	return clone, nil
}

func reviveRequired(node any) {
	switch n := node.(type) {
	case map[string]any:
		props, hasProps := n["properties"].(map[string]any)
		required, hasRequired := n["required"].([]any)

		if hasProps && hasRequired {
			kept := make([]any, 0, len(required))

			for _, r := range required {
				name, ok := r.(string)
				if ok && hasDefault(props, name) {
					continue
				}

				kept = append(kept, r)
			}

			if len(kept) == 0 {
				delete(n, "required")
			} else {
				n["required"] = kept
			}
		}

		for _, v := range n {
			reviveRequired(v)
		}
	case []any:
		for _, v := range n {
			reviveRequired(v)
		}
	}
}

func hasDefault(props map[string]any, name string) bool {
	p, ok := props[name].(map[string]any)
	if !ok {
		return false
	}

	_, ok = p["default"]

	return ok
}

// normalizeSkipBotEvents reduces the raw flag value to a boolean. Unset
// defaults to true; unrecognized values warn and default to true.
func normalizeSkipBotEvents(value any, diags *diagnostic.Diagnostics) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "":
			return true
		case "false":
			return false
		}

		diags.AddWarning("invalid_skip_bot_events",
			fmt.Sprintf("unrecognized skipBotEvents value %q, defaulting to true", v),
			"skipBotEvents")

		return true
	default:
		diags.AddWarning("invalid_skip_bot_events",
			fmt.Sprintf("unrecognized skipBotEvents value of type %T, defaulting to true", value),
			"skipBotEvents")

		return true
	}
}

// ShortName derives the abbreviated name: scope prefix stripped, lowered,
// non-alphanumeric runs collapsed to single dashes, trimmed, and capped.
func ShortName(name string) string {
	n := name
	if i := strings.LastIndexByte(n, '/'); i >= 0 && strings.HasPrefix(n, "@") {
		n = n[i+1:]
	}

	n = strings.ToLower(n)

	var b strings.Builder
	dash := false

	for i := 0; i < len(n); i++ {
		c := n[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			dash = false

			continue
		}

		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	short := strings.TrimRight(b.String(), "-")
	if len(short) > shortNameLimit {
		short = strings.TrimRight(short[:shortNameLimit], "-")
	}

	return short
}
