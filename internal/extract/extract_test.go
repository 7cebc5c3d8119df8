package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest-generator/internal/loader"
)

// fakeRuntime serves exports from an in-memory table instead of spawning a
// JavaScript runtime.
type fakeRuntime struct {
	exports map[string]map[string]any
	calls   int
}

func (*fakeRuntime) Name() string { return "fake runtime" }

func (f *fakeRuntime) Load(modulePath string, exportNames []string) (map[string]any, error) {
	f.calls++

	out := map[string]any{}
	for _, name := range exportNames {
		if v, ok := f.exports[modulePath][name]; ok {
			out[name] = v
		}
	}

	return out, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	return dir
}

func pluginTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"src/main.ts": `
import { createPlugin } from "@sdk/server";
import { settingsSchema } from "./schemas";
import { Command, SupportedEvents } from "./types";

createPlugin<PluginSettings, Env, Command, SupportedEvents>(
  (context) => handle(context),
  manifest,
  { settingsSchema, logLevel: "info" },
);
`,
		"src/types.ts": `
import { commandSchema } from "./schemas";

export type SupportedEvents = "issues.opened" | "issue_comment.created" | "push";
export type Command = Static<typeof commandSchema>;
`,
		"src/schemas.ts": `
export const settingsSchema = {};
export const commandSchema = {};
`,
	})
}

func fakeLoader(dir string, rt *fakeRuntime) *loader.Loader {
	rt.exports = map[string]map[string]any{
		filepath.Join(dir, "src", "schemas.ts"): {
			"settingsSchema": map[string]any{"type": "object"},
			"commandSchema":  map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}

	return loader.NewWithStrategies(rt)
}

func TestExtract_HappyPath(t *testing.T) {
	dir := pluginTree(t)
	rt := &fakeRuntime{}

	meta, err := Extract(Options{Root: dir}, fakeLoader(dir, rt))
	require.NoError(t, err)

	assert.Equal(t, "createPlugin", meta.Entrypoint.FunctionName)
	assert.Equal(t, []string{"issues.opened", "issue_comment.created", "push"}, meta.SupportedEvents)
	assert.False(t, meta.AllowMissingCommandSchema)
	assert.NotNil(t, meta.SettingsSchema)
	assert.NotNil(t, meta.CommandSchema)

	// Both schemas live in one module, so one subprocess run suffices.
	assert.Equal(t, 1, rt.calls)
}

func TestExtract_Exclusions(t *testing.T) {
	dir := pluginTree(t)
	rt := &fakeRuntime{}

	meta, err := Extract(Options{
		Root:           dir,
		ExcludedEvents: []string{"push", "push"},
	}, fakeLoader(dir, rt))
	require.NoError(t, err)

	assert.Equal(t, []string{"issues.opened", "issue_comment.created"}, meta.SupportedEvents)
	assert.Equal(t, []string{"push"}, meta.ExcludedEvents)
}

func TestExtract_UnknownExclusionSuggestsNearest(t *testing.T) {
	dir := pluginTree(t)

	_, err := Extract(Options{
		Root:           dir,
		ExcludedEvents: []string{"issues.opend"},
	}, fakeLoader(dir, &fakeRuntime{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"issues.opend"`)
	assert.Contains(t, err.Error(), `closest match: "issues.opened"`)
}

func TestExtract_ExclusionsCannotEmptyTheSet(t *testing.T) {
	dir := pluginTree(t)

	_, err := Extract(Options{
		Root:           dir,
		ExcludedEvents: []string{"issues.opened", "issue_comment.created", "push"},
	}, fakeLoader(dir, &fakeRuntime{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove every supported event")
}

func TestExtract_NullCommandGeneric(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `
import { settingsSchema } from "./schemas";

createActionsPlugin<PluginSettings, Env, null, "push">(
  run,
  { settingsSchema },
);
`,
		"schemas.ts": `export const settingsSchema = {};`,
	})

	rt := &fakeRuntime{exports: map[string]map[string]any{
		filepath.Join(dir, "schemas.ts"): {
			"settingsSchema": map[string]any{"type": "object"},
		},
	}}

	meta, err := Extract(Options{Root: dir}, loader.NewWithStrategies(rt))
	require.NoError(t, err)

	assert.Equal(t, "createActionsPlugin", meta.Entrypoint.FunctionName)
	assert.True(t, meta.AllowMissingCommandSchema)
	assert.Nil(t, meta.CommandSchema)
	assert.Equal(t, []string{"push"}, meta.SupportedEvents)
}

func TestExtract_SpreadSettingsSchemaRejected(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `
createPlugin<A, B, null, "push">(handler, manifest, { ...defaults });
`,
	})

	_, err := Extract(Options{Root: dir}, loader.NewWithStrategies(&fakeRuntime{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settingsSchema")
}

func TestExtract_TooFewGenerics(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.ts": `createPlugin<A, B>(handler, manifest, { settingsSchema });`,
	})

	_, err := Extract(Options{Root: dir}, loader.NewWithStrategies(&fakeRuntime{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generic arguments")
}

func TestExtract_MissingExportIsFatal(t *testing.T) {
	dir := pluginTree(t)

	rt := &fakeRuntime{exports: map[string]map[string]any{}}

	_, err := Extract(Options{Root: dir}, loader.NewWithStrategies(rt))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings schema")
}

func TestExtract_Idempotent(t *testing.T) {
	dir := pluginTree(t)

	first, err := Extract(Options{Root: dir}, fakeLoader(dir, &fakeRuntime{}))
	require.NoError(t, err)

	second, err := Extract(Options{Root: dir}, fakeLoader(dir, &fakeRuntime{}))
	require.NoError(t, err)

	assert.Equal(t, first.SupportedEvents, second.SupportedEvents)
	assert.Equal(t, first.SettingsSchema, second.SettingsSchema)
	assert.Equal(t, first.Entrypoint.Offset, second.Entrypoint.Offset)
}

func TestParseExcluded(t *testing.T) {
	assert.Equal(t,
		[]string{"push", "issues.opened"},
		ParseExcluded(" push , issues.opened ,, push "))
	assert.Nil(t, ParseExcluded(""))
}
