package extract

import (
	"fmt"
	"strings"

	"manifest-generator/internal/common"
	"manifest-generator/internal/entrypoint"
	"manifest-generator/internal/loader"
	"manifest-generator/internal/resolve"
	"manifest-generator/internal/source"
)

// Generic argument positions of the entrypoint contract. The first two
// (plugin config and environment) are not consumed here but must be
// present for the callsite to qualify.
const (
	genericCommand         = 2
	genericSupportedEvents = 3
	minGenericArgs         = 4
)

// Options configures an extraction run.
type Options struct {
	// Root is the source tree to scan.
	Root string
	// ExcludedEvents are event names to drop from the supported set.
	ExcludedEvents []string
}

// Metadata is everything extraction learns about the plugin.
type Metadata struct {
	// Entrypoint is the selected callsite.
	Entrypoint *entrypoint.Callsite
	// SettingsSchema is the loaded settings schema value.
	SettingsSchema any
	// CommandSchema is the loaded command schema value, nil when the
	// contract declares none.
	CommandSchema any
	// AllowMissingCommandSchema is true when the command generic was the
	// literal null, so an absent command schema is intentional.
	AllowMissingCommandSchema bool
	// SupportedEvents is the supported set after exclusions, in declaration
	// order.
	SupportedEvents []string
	// ExcludedEvents are the exclusions that were applied.
	ExcludedEvents []string
}

// ParseExcluded splits a comma-separated exclusion list, trimming and
// deduplicating entries.
func ParseExcluded(csv string) []string {
	var out []string

	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return common.Dedupe(out)
}

// Extract runs the pipeline over the tree rooted at opts.Root.
func Extract(opts Options, l *loader.Loader) (*Metadata, error) {
	files, err := source.Discover(opts.Root)
	if err != nil {
		return nil, err
	}

	cache := source.NewCache()

	cs, err := entrypoint.Locate(cache, files)
	if err != nil {
		return nil, err
	}

	if len(cs.GenericArgs) < minGenericArgs {
		return nil, fmt.Errorf("entrypoint call in %s declares %d generic arguments, need at least %d",
			cs.FilePath, len(cs.GenericArgs), minGenericArgs)
	}

	mod, err := cache.Module(cs.FilePath)
	if err != nil {
		return nil, err
	}

	settingsRef, err := resolveSettingsReference(cache, mod, cs)
	if err != nil {
		return nil, err
	}

	commandRef, err := resolve.ResolveCommandReference(cache, mod, cs.GenericArgs[genericCommand])
	if err != nil {
		return nil, err
	}

	events, err := resolve.ResolveSupportedEvents(cache, mod, cs.GenericArgs[genericSupportedEvents], resolve.NewVisited())
	if err != nil {
		return nil, err
	}

	if common.IsEmpty(events) {
		return nil, fmt.Errorf("supported-events type of the entrypoint in %s reduces to no events", cs.FilePath)
	}

	excluded := common.Dedupe(opts.ExcludedEvents)

	remaining, err := applyExclusions(events, excluded)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		Entrypoint:                cs,
		AllowMissingCommandSchema: commandRef == nil,
		SupportedEvents:           remaining,
		ExcludedEvents:            excluded,
	}

	if err := loadSchemas(l, meta, settingsRef, commandRef); err != nil {
		return nil, err
	}

	return meta, nil
}

// resolveSettingsReference reads the directly declared settingsSchema
// property from the options argument and resolves it to a runtime
// reference. A property supplied only through a spread does not count.
func resolveSettingsReference(cache *source.Cache, mod *source.Module, cs *entrypoint.Callsite) (*resolve.RuntimeReference, error) {
	idx := cs.OptionsArgIndex()
	if idx >= len(cs.Args) {
		return nil, fmt.Errorf("entrypoint call in %s has no options argument at position %d",
			cs.FilePath, idx+1)
	}

	obj, err := entrypoint.ParseObjectLiteral(cs.Args[idx])
	if err != nil {
		return nil, fmt.Errorf("options argument of the entrypoint in %s: %w", cs.FilePath, err)
	}

	expr, ok := obj.Direct("settingsSchema")
	if !ok {
		return nil, fmt.Errorf("options object in %s must declare settingsSchema as a direct property", cs.FilePath)
	}

	ref, err := resolve.RuntimeReferenceFromIdentifier(cache, mod, expr)
	if err != nil {
		return nil, fmt.Errorf("resolving settingsSchema reference: %w", err)
	}

	return ref, nil
}

// applyExclusions verifies every exclusion names a supported event, then
// removes the exclusions while preserving declaration order. An unknown
// exclusion is fatal and names its nearest supported event.
func applyExclusions(events, excluded []string) ([]string, error) {
	for _, ex := range excluded {
		if common.Contains(events, ex) {
			continue
		}

		msg := fmt.Sprintf("excluded event %q is not among the supported events", ex)
		if nearest, ok := common.Closest(ex, events); ok {
			msg += fmt.Sprintf(" (closest match: %q)", nearest)
		}

		return nil, fmt.Errorf("%s", msg)
	}

	remaining := common.Difference(events, excluded)
	if common.IsEmpty(remaining) {
		return nil, fmt.Errorf("exclusions remove every supported event (%s)", strings.Join(excluded, ", "))
	}

	return remaining, nil
}

// loadSchemas loads the referenced schema exports, batching references
// that live in the same module into one subprocess run.
func loadSchemas(l *loader.Loader, meta *Metadata, settings, command *resolve.RuntimeReference) error {
	wanted := map[string][]string{
		settings.ModulePath: {settings.ExportName},
	}
	if command != nil {
		wanted[command.ModulePath] = common.Dedupe(append(wanted[command.ModulePath], command.ExportName))
	}

	loaded := make(map[string]map[string]any, len(wanted))

	for modulePath, names := range wanted {
		values, err := l.Load(modulePath, names)
		if err != nil {
			return err
		}

		loaded[modulePath] = values
	}

	var ok bool

	meta.SettingsSchema, ok = loaded[settings.ModulePath][settings.ExportName]
	if !ok {
		return fmt.Errorf("module %s does not export settings schema %q",
			settings.ModulePath, settings.ExportName)
	}

	if command != nil {
		meta.CommandSchema, ok = loaded[command.ModulePath][command.ExportName]
		if !ok {
			return fmt.Errorf("module %s does not export command schema %q",
				command.ModulePath, command.ExportName)
		}
	}

	return nil
}
