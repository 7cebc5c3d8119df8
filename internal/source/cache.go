package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache holds the modules parsed during one extraction run. It is populated
// lazily, never mutated after a file is parsed, and discarded when the run
// ends. It is not safe for concurrent use; extraction is single-threaded by
// design.
type Cache struct {
	modules map[string]*Module
}

// NewCache creates an empty per-run module cache.
func NewCache() *Cache {
	return &Cache{modules: make(map[string]*Module)}
}

// Module returns the parsed module for the given file path, reading and
// parsing it on first access.
func (c *Cache) Module(path string) (*Module, error) {
	if m, ok := c.modules[path]; ok {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module %s: %w", path, err)
	}

	m := Parse(path, string(data))
	c.modules[path] = m

	return m, nil
}

// ResolveSpecifier resolves a relative import specifier against the
// importing file and returns the path of an existing file. Package imports
// (bare specifiers) cannot be resolved statically and are an error.
func (c *Cache) ResolveSpecifier(fromFile, spec string) (string, error) {
	if !strings.HasPrefix(spec, ".") {
		return "", fmt.Errorf("cannot statically resolve package import %q (imported from %s)", spec, fromFile)
	}

	base := filepath.Join(filepath.Dir(fromFile), spec)

	var candidates []string
	if strings.HasSuffix(base, ".ts") || strings.HasSuffix(base, ".tsx") {
		candidates = append(candidates, base)
	}

	candidates = append(candidates,
		base+".ts",
		base+".tsx",
		filepath.Join(base, "index.ts"),
	)

	for _, cand := range candidates {
		if st, err := os.Stat(cand); err == nil && !st.IsDir() {
			return cand, nil
		}
	}

	return "", fmt.Errorf("import %q in %s does not resolve to an existing file", spec, fromFile)
}

// ModuleFor resolves an import specifier relative to fromFile and returns
// the target module.
func (c *Cache) ModuleFor(fromFile, spec string) (*Module, error) {
	path, err := c.ResolveSpecifier(fromFile, spec)
	if err != nil {
		return nil, err
	}

	return c.Module(path)
}
