package source

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Directories that never contain first-party source modules.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	".git":         true,
}

// Discover walks the project root and returns the paths of all source
// modules, in lexical order. Declaration files (.d.ts) are excluded since
// they cannot carry the entrypoint callsite, as are dependency and build
// output directories.
func Discover(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}

			return nil
		}

		name := d.Name()
		if strings.HasSuffix(name, ".d.ts") {
			return nil
		}

		if strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx") {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
