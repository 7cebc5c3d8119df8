package source

import (
	"strings"

	"manifest-generator/internal/scan"
)

// Parse builds the structural view of one source file. It recognizes import
// declarations, re-exports, and type aliases; everything else is skipped.
func Parse(path, text string) *Module {
	m := newModule(path, text)

	for i := 0; i < len(text); i++ {
		if j, ok := scan.SkipNonCode(text, i); ok {
			i = j
			continue
		}

		if !scan.IsIdentStart(text[i]) {
			continue
		}

		switch {
		case scan.HasWordAt(text, i, "import"):
			i = parseImport(m, text, i)
		case scan.HasWordAt(text, i, "export"):
			i = parseExport(m, text, i)
		case scan.HasWordAt(text, i, "type"):
			i = parseTypeAlias(m, text, i)
		default:
			// Skip the whole identifier so keywords embedded in longer
			// names never match.
			_, j := scan.ReadIdent(text, i)
			i = j - 1
		}
	}

	return m
}

// parseImport consumes an import declaration starting at the "import"
// keyword and records its bindings. It returns the index of the last byte
// it consumed.
func parseImport(m *Module, text string, start int) int {
	i := scan.SkipSpaceAndComments(text, start+len("import"))
	if i >= len(text) {
		return len(text) - 1
	}

	switch text[i] {
	case '(':
		// Dynamic import expression, not a declaration.
		return start + len("import") - 1
	case '\'', '"':
		// Side-effect import carries no bindings.
		return scan.SkipStringLiteral(text, i)
	}

	// Inline `import type`: the bindings still participate in type-alias
	// resolution, so they are recorded like value imports.
	if scan.HasWordAt(text, i, "type") {
		j := scan.SkipSpaceAndComments(text, i+len("type"))
		if j < len(text) && text[j] != ',' && !scan.HasWordAt(text, j, "from") {
			i = j
		}
	}

	var (
		defaultName string
		namespace   string
		named       []specifier
	)

	for i < len(text) {
		i = scan.SkipSpaceAndComments(text, i)
		if i >= len(text) {
			return len(text) - 1
		}

		switch {
		case text[i] == '*':
			j := scan.SkipSpaceAndComments(text, i+1)
			if !scan.HasWordAt(text, j, "as") {
				return i
			}

			j = scan.SkipSpaceAndComments(text, j+len("as"))
			namespace, i = scan.ReadIdent(text, j)
		case text[i] == '{':
			end := scan.FindMatchingDelimiter(text, i, '{', '}')
			if end < 0 {
				return len(text) - 1
			}

			named = parseSpecifiers(text[i+1 : end])
			i = end + 1
		case text[i] == ',':
			i++
		case scan.HasWordAt(text, i, "from"):
			j := scan.SkipSpaceAndComments(text, i+len("from"))
			if j >= len(text) || (text[j] != '\'' && text[j] != '"') {
				return i
			}

			end := scan.SkipStringLiteral(text, j)
			src := text[j+1 : end]

			if defaultName != "" {
				m.DefaultImports[defaultName] = src
			}

			if namespace != "" {
				m.NamespaceImports[namespace] = src
			}

			for _, s := range named {
				m.NamedImports[s.local] = NamedImport{Source: src, OriginalName: s.original}
			}

			return end
		default:
			ident, j := scan.ReadIdent(text, i)
			if ident == "" {
				return i
			}

			defaultName = ident
			i = j
		}
	}

	return len(text) - 1
}

// parseExport consumes an export declaration starting at the "export"
// keyword, recording named and star re-exports. Exported type aliases are
// delegated to parseTypeAlias; other export forms carry nothing the
// resolver needs.
func parseExport(m *Module, text string, start int) int {
	i := scan.SkipSpaceAndComments(text, start+len("export"))
	if i >= len(text) {
		return len(text) - 1
	}

	if scan.HasWordAt(text, i, "declare") {
		i = scan.SkipSpaceAndComments(text, i+len("declare"))
	}

	if scan.HasWordAt(text, i, "type") {
		j := scan.SkipSpaceAndComments(text, i+len("type"))
		if j < len(text) && text[j] == '{' {
			// Type-only re-export clause: `export type { ... } from "..."`.
			i = j
		} else {
			return parseTypeAlias(m, text, i)
		}
	}

	switch text[i] {
	case '*':
		j := scan.SkipSpaceAndComments(text, i+1)

		aliased := scan.HasWordAt(text, j, "as")
		if aliased {
			// `export * as ns from ...` exposes only the namespace object;
			// it cannot forward individual symbols, so nothing is recorded.
			j = scan.SkipSpaceAndComments(text, j+len("as"))
			_, j = scan.ReadIdent(text, j)
		}

		k := scan.SkipSpaceAndComments(text, j)
		if !scan.HasWordAt(text, k, "from") {
			return i
		}

		k = scan.SkipSpaceAndComments(text, k+len("from"))
		if k >= len(text) || (text[k] != '\'' && text[k] != '"') {
			return k
		}

		end := scan.SkipStringLiteral(text, k)
		if !aliased {
			m.StarReexports = append(m.StarReexports, text[k+1:end])
		}

		return end
	case '{':
		end := scan.FindMatchingDelimiter(text, i, '{', '}')
		if end < 0 {
			return len(text) - 1
		}

		specs := parseSpecifiers(text[i+1 : end])

		j := scan.SkipSpaceAndComments(text, end+1)
		if !scan.HasWordAt(text, j, "from") {
			// Local export clause; the bindings resolve through the
			// module's own imports and aliases.
			return end
		}

		j = scan.SkipSpaceAndComments(text, j+len("from"))
		if j >= len(text) || (text[j] != '\'' && text[j] != '"') {
			return end
		}

		strEnd := scan.SkipStringLiteral(text, j)
		src := text[j+1 : strEnd]

		for _, s := range specs {
			m.Reexports[s.local] = Reexport{Source: src, OriginalName: s.original}
		}

		return strEnd
	}

	return start + len("export") - 1
}

// parseTypeAlias consumes a `type Name = ...` declaration starting at the
// "type" keyword and records the alias body text.
func parseTypeAlias(m *Module, text string, start int) int {
	i := scan.SkipSpaceAndComments(text, start+len("type"))

	name, j := scan.ReadIdent(text, i)
	if name == "" {
		return start + len("type") - 1
	}

	i = scan.SkipSpaceAndComments(text, j)

	// Generic parameter list on the alias itself.
	if i < len(text) && text[i] == '<' {
		end := scan.FindMatchingDelimiter(text, i, '<', '>')
		if end < 0 {
			return len(text) - 1
		}

		i = scan.SkipSpaceAndComments(text, end+1)
	}

	if i >= len(text) || text[i] != '=' {
		return j - 1
	}

	rhsStart := i + 1
	end := aliasEnd(text, rhsStart)
	m.TypeAliases[name] = strings.TrimSpace(text[rhsStart:end])

	return end - 1
}

// aliasEnd returns the exclusive end index of an alias body starting just
// after its '='. Terminators are optional in the source language, so three
// rules apply in priority order: a top-level ';'; a '}' closing one level
// below the scan's start depth; or a line boundary whose next token is a
// '}' or a new top-level declaration keyword.
func aliasEnd(text string, start int) int {
	depth := 0

	for i := start; i < len(text); i++ {
		if j, ok := scan.SkipNonCode(text, i); ok {
			i = j
			continue
		}

		switch text[i] {
		case ';':
			if depth == 0 {
				return i
			}
		case '(', '{', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '}':
			if depth == 0 {
				return i
			}

			depth--
		case '\n':
			if depth != 0 {
				continue
			}

			j := scan.SkipSpaceAndComments(text, i+1)
			if j >= len(text) {
				return len(text)
			}

			if text[j] == '}' || startsDeclaration(text, j) {
				return i
			}
		}
	}

	return len(text)
}

var declarationKeywords = []string{
	"export", "import", "type", "interface", "const", "let", "var",
	"function", "class", "enum", "declare", "namespace", "async",
}

func startsDeclaration(text string, i int) bool {
	for _, kw := range declarationKeywords {
		if scan.HasWordAt(text, i, kw) {
			return true
		}
	}

	return false
}

type specifier struct {
	original string
	local    string
}

// parseSpecifiers splits the interior of an import/export clause into
// (original, local) name pairs, handling `as` renames and inline `type`
// markers.
func parseSpecifiers(interior string) []specifier {
	var specs []specifier

	for _, entry := range strings.Split(interior, ",") {
		entry = strings.TrimSpace(entry)
		entry = strings.TrimPrefix(entry, "type ")
		entry = strings.TrimSpace(entry)

		if entry == "" {
			continue
		}

		orig, rest := entry, ""
		if idx := strings.Index(entry, " as "); idx >= 0 {
			orig = strings.TrimSpace(entry[:idx])
			rest = strings.TrimSpace(entry[idx+4:])
		}

		local := orig
		if rest != "" {
			local = rest
		}

		if !scan.IsIdentifier(orig) || !scan.IsIdentifier(local) {
			continue
		}

		specs = append(specs, specifier{original: orig, local: local})
	}

	return specs
}
