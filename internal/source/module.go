package source

// NamedImport records one binding of `import { orig as local } from "src"`.
type NamedImport struct {
	// Source is the module specifier as written.
	Source string
	// OriginalName is the exported name in the source module.
	OriginalName string
}

// Reexport records one binding of `export { orig as exported } from "src"`.
type Reexport struct {
	Source       string
	OriginalName string
}

// Module is the structural view of one source file. It is parsed once per
// extraction run and never mutated afterwards.
type Module struct {
	// Path is the absolute file path.
	Path string
	// Text is the raw file content.
	Text string

	// NamedImports maps a local binding name to its import.
	NamedImports map[string]NamedImport
	// DefaultImports maps a local binding name to a module specifier.
	DefaultImports map[string]string
	// NamespaceImports maps a local namespace name to a module specifier.
	NamespaceImports map[string]string

	// Reexports maps an exported name to its named re-export.
	Reexports map[string]Reexport
	// StarReexports lists the specifiers of `export * from "..."`.
	StarReexports []string

	// TypeAliases maps an alias name to its right-hand-side expression text.
	TypeAliases map[string]string
}

func newModule(path, text string) *Module {
	return &Module{
		Path:             path,
		Text:             text,
		NamedImports:     make(map[string]NamedImport),
		DefaultImports:   make(map[string]string),
		NamespaceImports: make(map[string]string),
		Reexports:        make(map[string]Reexport),
		TypeAliases:      make(map[string]string),
	}
}
