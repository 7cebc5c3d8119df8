package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// runScript executes a JavaScript runtime with the given arguments and
// parses the marker line from its stdout. Intentionally no timeout: the
// subprocess either finishes or blocks the run.
func runScript(bin string, args ...string) (map[string]any, error) {
	cmd := exec.Command(bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w (%s)", bin, err, tail(stderr.String()))
	}

	values, err := ParseExportsOutput(stdout.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%s)", bin, err, tail(stderr.String()))
	}

	return values, nil
}

// tail returns the last portion of subprocess stderr for error messages.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "no stderr"
	}

	const limit = 300
	if len(s) > limit {
		s = "..." + s[len(s)-limit:]
	}

	return strings.ReplaceAll(s, "\n", " | ")
}

// pickExpr builds the JS expression collecting the requested exports.
func pickExpr(exportNames []string) string {
	names, _ := json.Marshal(exportNames)

	return fmt.Sprintf(
		"const out = {}; for (const name of %s) { out[name] = mod[name]; }", names)
}

func printExpr() string {
	return fmt.Sprintf("console.log(%q + JSON.stringify(out));", Marker)
}

// bunStrategy spawns an isolated bun process that imports the module fresh
// and prints the delimited export payload.
type bunStrategy struct{}

func (*bunStrategy) Name() string { return "bun import" }

func (*bunStrategy) Load(modulePath string, exportNames []string) (map[string]any, error) {
	path, _ := json.Marshal(modulePath)

	script := fmt.Sprintf(
		"const mod = await import(%s); %s %s",
		path, pickExpr(exportNames), printExpr())

	return runScript("bun", "-e", script)
}

// nodeImportStrategy performs an ESM dynamic import under node. The module
// may expect the primary runtime's globals, so a minimal stand-in (env
// access, cwd, OS/arch, a not-found error type) is injected before the
// import and removed on every exit path regardless of success.
type nodeImportStrategy struct{}

func (*nodeImportStrategy) Name() string { return "node import" }

func (*nodeImportStrategy) Load(modulePath string, exportNames []string) (map[string]any, error) {
	path, _ := json.Marshal(modulePath)

	script := fmt.Sprintf(`import { pathToFileURL } from "node:url";
const injected = typeof globalThis.Bun === "undefined";
if (injected) {
  globalThis.Bun = {
    env: process.env,
    cwd: () => process.cwd(),
    platform: process.platform,
    arch: process.arch,
    FileNotFoundError: class FileNotFoundError extends Error {},
  };
}
try {
  const mod = await import(pathToFileURL(%s).href);
  %s
  %s
} finally {
  if (injected) { delete globalThis.Bun; }
}`, path, pickExpr(exportNames), printExpr())

	return runScript("node", "--input-type=module", "-e", script)
}

// nodeRequireStrategy is the synchronous legacy-style require, kept as last
// resort for CommonJS build output.
type nodeRequireStrategy struct{}

func (*nodeRequireStrategy) Name() string { return "node require" }

func (*nodeRequireStrategy) Load(modulePath string, exportNames []string) (map[string]any, error) {
	path, _ := json.Marshal(modulePath)

	script := fmt.Sprintf("const mod = require(%s); %s %s",
		path, pickExpr(exportNames), printExpr())

	return runScript("node", "-e", script)
}
