package entrypoint

import (
	"errors"
	"fmt"
	"strings"

	"manifest-generator/internal/scan"
	"manifest-generator/internal/source"
)

const (
	// PreferredName is the primary entrypoint call form. Its options object
	// is the third call argument.
	PreferredName = "createPlugin"
	// FallbackName is the secondary call form, consulted only when the
	// preferred name has zero matches. Its options object is the second
	// call argument.
	FallbackName = "createActionsPlugin"
)

// ErrNoEntrypoint is returned when neither call form occurs anywhere in the
// source tree.
var ErrNoEntrypoint = errors.New("no plugin entrypoint callsite found")

// Callsite is one located entrypoint call expression.
type Callsite struct {
	// FunctionName is the call form that matched.
	FunctionName string
	// FilePath is the file containing the call.
	FilePath string
	// GenericArgs are the explicit generic arguments, in declaration order.
	GenericArgs []string
	// Args are the call arguments, in order.
	Args []string
	// Offset is the byte offset of the function name in the file.
	Offset int
}

// OptionsArgIndex returns the position of the options-object argument for
// the matched call form. The two forms have different arities, which is why
// the position differs.
func (c *Callsite) OptionsArgIndex() int {
	if c.FunctionName == FallbackName {
		return 1
	}

	return 2
}

// Locate scans every file for qualifying callsites and applies the
// resolution policy: the preferred name is considered first; exactly one
// match selects it and the fallback is ignored entirely; two or more are a
// fatal ambiguity regardless of the fallback; zero matches fall through to
// the fallback under the same rule.
func Locate(cache *source.Cache, files []string) (*Callsite, error) {
	for _, name := range []string{PreferredName, FallbackName} {
		sites, err := collect(cache, files, name)
		if err != nil {
			return nil, err
		}

		switch len(sites) {
		case 0:
			continue
		case 1:
			return sites[0], nil
		default:
			var where []string
			for _, s := range sites {
				where = append(where, fmt.Sprintf("%s:%d", s.FilePath, s.Offset))
			}

			return nil, fmt.Errorf("ambiguous entrypoint: %d %s callsites found (%s)",
				len(sites), name, strings.Join(where, ", "))
		}
	}

	return nil, ErrNoEntrypoint
}

// collect gathers every occurrence of name that qualifies as a callsite: an
// explicit <...> generic list followed by a (...) argument list.
func collect(cache *source.Cache, files []string, name string) ([]*Callsite, error) {
	var sites []*Callsite

	for _, file := range files {
		mod, err := cache.Module(file)
		if err != nil {
			return nil, err
		}

		text := mod.Text
		for i := 0; i < len(text); i++ {
			if j, ok := scan.SkipNonCode(text, i); ok {
				i = j
				continue
			}

			if !hasCallNameAt(text, i, name) {
				continue
			}

			cs := parseCallsite(text, i, name)
			if cs != nil {
				cs.FilePath = file
				sites = append(sites, cs)
			}

			i += len(name) - 1
		}
	}

	return sites, nil
}

// hasCallNameAt matches name at a word boundary. Unlike keyword matching, a
// preceding '.' is allowed so namespace-qualified calls still qualify.
func hasCallNameAt(text string, i int, name string) bool {
	if i+len(name) > len(text) || text[i:i+len(name)] != name {
		return false
	}

	if i > 0 && scan.IsIdentPart(text[i-1]) {
		return false
	}

	end := i + len(name)

	return end >= len(text) || !scan.IsIdentPart(text[end])
}

// parseCallsite parses `<...>(...)` immediately following the name at
// offset. Occurrences without an explicit generic list do not qualify.
func parseCallsite(text string, offset int, name string) *Callsite {
	i := scan.SkipSpaceAndComments(text, offset+len(name))
	if i >= len(text) || text[i] != '<' {
		return nil
	}

	gEnd := scan.FindMatchingDelimiter(text, i, '<', '>')
	if gEnd < 0 {
		return nil
	}

	j := scan.SkipSpaceAndComments(text, gEnd+1)
	if j >= len(text) || text[j] != '(' {
		return nil
	}

	aEnd := scan.FindMatchingDelimiter(text, j, '(', ')')
	if aEnd < 0 {
		return nil
	}

	return &Callsite{
		FunctionName: name,
		GenericArgs:  splitArgs(text[i+1:gEnd], true),
		Args:         splitArgs(text[j+1:aEnd], false),
		Offset:       offset,
	}
}

// splitArgs splits an argument list at top level, trims each entry, and
// drops a trailing empty entry left by a trailing comma.
func splitArgs(interior string, trackAngles bool) []string {
	parts := scan.SplitTopLevel(interior, ',', trackAngles)

	args := make([]string, 0, len(parts))
	for _, p := range parts {
		args = append(args, strings.TrimSpace(p))
	}

	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	return args
}
