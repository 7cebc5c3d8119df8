package resolve

import (
	"fmt"
	"strings"

	"manifest-generator/internal/scan"
	"manifest-generator/internal/source"
)

// ResolveSupportedEvents statically reduces a type expression to its string
// literal members, in declaration order, deduplicated. Direct unions,
// including multi-line ones, are read literally; a bare identifier is
// resolved as a type alias and its body reduced recursively. Any other
// shape is fatal: arbitrary type-level evaluation is out of scope.
func ResolveSupportedEvents(cache *source.Cache, mod *source.Module, expr string, seen Visited) ([]string, error) {
	e := strings.TrimSpace(expr)
	e = stripParens(e)

	if lits := scan.StringLiterals(e); len(lits) > 0 {
		return dedupe(lits), nil
	}

	if scan.IsIdentifier(e) {
		body, defMod, err := ResolveTypeAlias(cache, mod, e, seen)
		if err != nil {
			return nil, err
		}

		return ResolveSupportedEvents(cache, defMod, body, seen)
	}

	return nil, fmt.Errorf("cannot statically reduce supported-events type %q to string literals", expr)
}

// dedupe removes duplicates while preserving first-occurrence order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))

	for _, it := range items {
		if seen[it] {
			continue
		}

		seen[it] = true
		out = append(out, it)
	}

	return out
}
