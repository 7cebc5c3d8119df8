package entrypoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest-generator/internal/source"
)

func writeTree(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	paths, err := source.Discover(dir)
	require.NoError(t, err)

	return dir, paths
}

func TestLocate_SinglePreferred(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"src/main.ts": `
createPlugin<Config, Env, Command, SupportedEvents>(
  handler,
  manifest,
  { settingsSchema: configSchema, kernelKey },
);
`,
	})

	cs, err := Locate(source.NewCache(), files)
	require.NoError(t, err)

	assert.Equal(t, PreferredName, cs.FunctionName)
	assert.Equal(t, []string{"Config", "Env", "Command", "SupportedEvents"}, cs.GenericArgs)
	require.Len(t, cs.Args, 3)
	assert.Equal(t, 2, cs.OptionsArgIndex())
}

func TestLocate_AmbiguousPreferredIsFatalDespiteFallback(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"a.ts": `createPlugin<A, B, C, D>(h, m, {});`,
		"b.ts": `createPlugin<A, B, C, D>(h, m, {});`,
		"c.ts": `createActionsPlugin<A, B, C, D>(h, {});`,
	})

	_, err := Locate(source.NewCache(), files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous entrypoint")
}

func TestLocate_FallbackUsedWhenPreferredAbsent(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"main.ts": `createActionsPlugin<A, B, C, D>(handler, { settingsSchema: s });`,
	})

	cs, err := Locate(source.NewCache(), files)
	require.NoError(t, err)
	assert.Equal(t, FallbackName, cs.FunctionName)
	assert.Equal(t, 1, cs.OptionsArgIndex())
}

func TestLocate_NoEntrypoint(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"main.ts": `somethingElse<A>(x);`,
	})

	_, err := Locate(source.NewCache(), files)
	assert.ErrorIs(t, err, ErrNoEntrypoint)
}

func TestLocate_RequiresExplicitGenerics(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"main.ts": `createPlugin(handler, manifest, {});`,
	})

	_, err := Locate(source.NewCache(), files)
	assert.ErrorIs(t, err, ErrNoEntrypoint)
}

func TestLocate_IgnoresCommentedAndQuotedOccurrences(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"main.ts": `
// createPlugin<A, B, C, D>(h, m, {});
const doc = "createPlugin<A, B, C, D>(h, m, {})";
createPlugin<A, B, C, D>(h, m, {});
`,
	})

	cs, err := Locate(source.NewCache(), files)
	require.NoError(t, err)
	assert.Equal(t, PreferredName, cs.FunctionName)
}

func TestLocate_GenericArgsWithNestedAngles(t *testing.T) {
	_, files := writeTree(t, map[string]string{
		"main.ts": `createPlugin<Static<typeof s>, Env, null, "a.b" | "c.d">(h, m, {});`,
	})

	cs, err := Locate(source.NewCache(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{`Static<typeof s>`, "Env", "null", `"a.b" | "c.d"`}, cs.GenericArgs)
}

func TestParseObjectLiteral(t *testing.T) {
	obj, err := ParseObjectLiteral(`({
  settingsSchema: Schemas.configSchema,
  "quoted": 1,
  shorthand,
  ...spread,
  nested: { inner: "a,b" },
})`)
	require.NoError(t, err)

	v, ok := obj.Direct("settingsSchema")
	require.True(t, ok)
	assert.Equal(t, "Schemas.configSchema", v)

	_, ok = obj.Direct("quoted")
	assert.True(t, ok)

	v, ok = obj.Direct("shorthand")
	require.True(t, ok)
	assert.Equal(t, "shorthand", v)

	_, ok = obj.Direct("spread")
	assert.False(t, ok)
	assert.Equal(t, []string{"spread"}, obj.Spreads)

	v, ok = obj.Direct("nested")
	require.True(t, ok)
	assert.Equal(t, `{ inner: "a,b" }`, v)
}

func TestParseObjectLiteral_SpreadNeverSatisfiesDirect(t *testing.T) {
	obj, err := ParseObjectLiteral(`{ ...defaults }`)
	require.NoError(t, err)

	_, ok := obj.Direct("settingsSchema")
	assert.False(t, ok)
}

func TestParseObjectLiteral_NotAnObject(t *testing.T) {
	_, err := ParseObjectLiteral(`someIdentifier`)
	assert.Error(t, err)
}
