package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name   string
	values map[string]any
	err    error
	calls  int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Load(string, []string) (map[string]any, error) {
	f.calls++
	return f.values, f.err
}

func TestLoader_FirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "first", err: errors.New("unavailable")}
	second := &fakeStrategy{name: "second", values: map[string]any{"schema": map[string]any{"type": "object"}}}
	third := &fakeStrategy{name: "third", values: map[string]any{}}

	l := NewWithStrategies(first, second, third)

	values, err := l.Load("/p/index.js", []string{"schema"})
	require.NoError(t, err)
	assert.Contains(t, values, "schema")

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestLoader_AggregatesAllFailures(t *testing.T) {
	l := NewWithStrategies(
		&fakeStrategy{name: "bun import", err: errors.New("bun missing")},
		&fakeStrategy{name: "node import", err: errors.New("esm broken")},
		&fakeStrategy{name: "node require", err: errors.New("cjs broken")},
	)

	_, err := l.Load("/p/index.js", nil)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "all module load strategies failed")
	assert.Contains(t, msg, "bun import: bun missing")
	assert.Contains(t, msg, "node import: esm broken")
	assert.Contains(t, msg, "node require: cjs broken")
}

func TestParseExportsOutput_LastMarkerLineWins(t *testing.T) {
	stdout := "random log\n" +
		Marker + `{"schema": "stale"}` + "\n" +
		"more noise\n" +
		"prefix " + Marker + `{"schema": {"type": "object"}}` + "\n" +
		"trailing\n"

	values, err := ParseExportsOutput(stdout)
	require.NoError(t, err)

	schema, ok := values["schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
}

func TestParseExportsOutput_NoMarker(t *testing.T) {
	_, err := ParseExportsOutput("just logs\nnothing else\n")
	assert.Error(t, err)
}

func TestParseExportsOutput_BadPayload(t *testing.T) {
	_, err := ParseExportsOutput(Marker + "{not json}\n")
	assert.Error(t, err)
}

func TestScriptsCarryMarkerAndPath(t *testing.T) {
	// The scripts are executed by external runtimes; here we only pin the
	// wire contract pieces they must contain.
	assert.Contains(t, printExpr(), Marker)
	assert.Contains(t, pickExpr([]string{"a", "b"}), `["a","b"]`)
}
