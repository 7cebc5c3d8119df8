package resolve

import (
	"errors"
	"fmt"

	"manifest-generator/internal/source"
)

// maxResolutionDepth bounds recursive alias resolution defensively, on top
// of the visited-set cycle check.
const maxResolutionDepth = 64

// ErrAliasCycle marks a circular type-alias chain.
var ErrAliasCycle = errors.New("type alias cycle detected")

// Visited tracks (file, symbol) pairs already entered during one resolution
// so cycles fail fast instead of looping.
type Visited map[visitKey]bool

type visitKey struct {
	file string
	name string
}

// NewVisited creates an empty visited set for one resolution.
func NewVisited() Visited {
	return make(Visited)
}

func (v Visited) clone() Visited {
	c := make(Visited, len(v))
	for k := range v {
		c[k] = true
	}

	return c
}

// ResolveTypeAlias resolves name to its alias body, following named imports,
// named re-exports, and star re-exports across modules. It returns the body
// text together with the module that defines it, so callers can continue
// resolving identifiers in the right context.
func ResolveTypeAlias(cache *source.Cache, mod *source.Module, name string, seen Visited) (string, *source.Module, error) {
	key := visitKey{file: mod.Path, name: name}
	if seen[key] {
		return "", nil, fmt.Errorf("%w: %q revisited in %s", ErrAliasCycle, name, mod.Path)
	}

	if len(seen) >= maxResolutionDepth {
		return "", nil, fmt.Errorf("type alias resolution exceeded depth %d at %q in %s", maxResolutionDepth, name, mod.Path)
	}

	seen[key] = true

	if body, ok := mod.TypeAliases[name]; ok {
		return body, mod, nil
	}

	if imp, ok := mod.NamedImports[name]; ok {
		target, err := cache.ModuleFor(mod.Path, imp.Source)
		if err != nil {
			return "", nil, err
		}

		return ResolveTypeAlias(cache, target, imp.OriginalName, seen)
	}

	if re, ok := mod.Reexports[name]; ok {
		target, err := cache.ModuleFor(mod.Path, re.Source)
		if err != nil {
			return "", nil, err
		}

		return ResolveTypeAlias(cache, target, re.OriginalName, seen)
	}

	// Star re-exports: try each target in turn, first success wins. This is
	// the typical barrel-file case. Each attempt gets its own copy of the
	// visited set so one failed branch cannot poison another, while cycles
	// within a branch still fail fast.
	for _, spec := range mod.StarReexports {
		target, err := cache.ModuleFor(mod.Path, spec)
		if err != nil {
			continue
		}

		body, defMod, err := ResolveTypeAlias(cache, target, name, seen.clone())
		if err == nil {
			return body, defMod, nil
		}

		if errors.Is(err, ErrAliasCycle) {
			return "", nil, err
		}
	}

	return "", nil, fmt.Errorf("type alias %q not found in %s or its re-exports", name, mod.Path)
}
