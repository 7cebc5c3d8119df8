// Package main provides the CLI entrypoint for manifest-generator.
//
// manifest-generator is a static source-contract resolver that:
//   - Scans a plugin source tree for the canonical entrypoint call
//   - Resolves its generic contract across imports, re-exports, and aliases
//   - Loads the referenced schema values through a JavaScript runtime
//   - Assembles and writes a validated, field-ordered manifest
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
