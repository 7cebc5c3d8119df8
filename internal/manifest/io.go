package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const filePerm = 0o644

// ReadExisting loads a previously written manifest. A missing file yields
// an empty map; a malformed one is an error.
func ReadExisting(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return m, nil
}

// ReadPackageMeta loads package metadata. A missing file yields the zero
// value.
func ReadPackageMeta(path string) (PackageMeta, error) {
	var meta PackageMeta

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return meta, nil
	}

	if err != nil {
		return meta, fmt.Errorf("reading package metadata %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parsing package metadata %s: %w", path, err)
	}

	return meta, nil
}

// Write serializes the manifest with two-space indentation and a trailing
// newline.
func Write(path string, obj *Object) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}

	return nil
}
