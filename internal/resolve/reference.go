package resolve

import (
	"fmt"
	"strings"

	"manifest-generator/internal/scan"
	"manifest-generator/internal/source"
)

// RuntimeReference is a resolved pointer to an exported runtime value: a
// module path plus an export name. It is distinct from a purely textual
// reference in that the file is guaranteed to exist, but the value has not
// been loaded yet.
type RuntimeReference struct {
	// ModulePath is the file that defines (or is presumed to define) the
	// export.
	ModulePath string
	// ExportName is the export to read; "default" for default imports.
	ExportName string
	// Source is the expression text the reference was resolved from.
	Source string
}

// RuntimeReferenceFromIdentifier resolves an identifier expression to a
// runtime reference. Type-assertion wrappers are stripped first; the
// remainder is classified as a namespace member access, a named import, a
// default import, or a same-module export (identifier presumed local).
func RuntimeReferenceFromIdentifier(cache *source.Cache, mod *source.Module, expr string) (*RuntimeReference, error) {
	e := StripAssertions(expr)

	if dot := strings.IndexByte(e, '.'); dot >= 0 {
		ns := strings.TrimSpace(e[:dot])
		member := strings.TrimSpace(e[dot+1:])

		if !scan.IsIdentifier(ns) || !scan.IsIdentifier(member) {
			return nil, fmt.Errorf("unsupported reference expression %q", expr)
		}

		spec, ok := mod.NamespaceImports[ns]
		if !ok {
			return nil, fmt.Errorf("%q is not a namespace import in %s", ns, mod.Path)
		}

		path, err := cache.ResolveSpecifier(mod.Path, spec)
		if err != nil {
			return nil, err
		}

		return &RuntimeReference{ModulePath: path, ExportName: member, Source: expr}, nil
	}

	if !scan.IsIdentifier(e) {
		return nil, fmt.Errorf("unsupported reference expression %q", expr)
	}

	if imp, ok := mod.NamedImports[e]; ok {
		path, err := cache.ResolveSpecifier(mod.Path, imp.Source)
		if err != nil {
			return nil, err
		}

		return &RuntimeReference{ModulePath: path, ExportName: imp.OriginalName, Source: expr}, nil
	}

	if spec, ok := mod.DefaultImports[e]; ok {
		path, err := cache.ResolveSpecifier(mod.Path, spec)
		if err != nil {
			return nil, err
		}

		return &RuntimeReference{ModulePath: path, ExportName: "default", Source: expr}, nil
	}

	// Not imported: presumed exported by the module itself.
	return &RuntimeReference{ModulePath: mod.Path, ExportName: e, Source: expr}, nil
}

// StripAssertions removes type-assertion wrappers from an expression:
// wrapping parentheses, non-null '!' suffixes, and top-level `as` /
// `satisfies` clauses.
func StripAssertions(expr string) string {
	e := strings.TrimSpace(expr)

	for {
		prev := e

		e = stripParens(e)

		if cut := topLevelWordIndex(e, "as"); cut >= 0 {
			e = strings.TrimSpace(e[:cut])
		}

		if cut := topLevelWordIndex(e, "satisfies"); cut >= 0 {
			e = strings.TrimSpace(e[:cut])
		}

		e = strings.TrimSuffix(e, "!")
		e = strings.TrimSpace(e)

		if e == prev {
			return e
		}
	}
}

func stripParens(e string) string {
	for len(e) > 1 && e[0] == '(' {
		end := scan.FindMatchingDelimiter(e, 0, '(', ')')
		if end != len(e)-1 {
			break
		}

		e = strings.TrimSpace(e[1 : len(e)-1])
	}

	return e
}

// topLevelWordIndex finds the first occurrence of word at zero nesting
// depth, or -1.
func topLevelWordIndex(s, word string) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		if j, ok := scan.SkipNonCode(s, i); ok {
			i = j
			continue
		}

		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			if depth > 0 {
				depth--
			}
		}

		if depth == 0 && scan.HasWordAt(s, i, word) {
			return i
		}
	}

	return -1
}
