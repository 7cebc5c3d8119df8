package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"manifest-generator/internal/scan"
	"manifest-generator/internal/source"
)

// commandShape matches the accepted command alias bodies:
// `Static<typeof X>` or `StaticDecode<typeof X>`, optionally
// namespace-qualified on either side.
var commandShape = regexp.MustCompile(
	`^(?:[A-Za-z_$][\w$]*\s*\.\s*)?(?:Static|StaticDecode)\s*<\s*typeof\s+([A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*)?)\s*>$`,
)

// ResolveCommandReference resolves the command generic argument. The
// contract is deliberately narrow: the literal `null` means the command
// schema is intentionally omitted (nil reference, no error); a bare
// identifier must resolve to an alias whose body is `Static<typeof X>` or
// `StaticDecode<typeof X>`, in which case X is resolved as a runtime
// reference. Any other shape is fatal.
func ResolveCommandReference(cache *source.Cache, mod *source.Module, expr string) (*RuntimeReference, error) {
	e := strings.TrimSpace(expr)
	e = stripParens(e)

	if e == "null" {
		return nil, nil
	}

	if !scan.IsIdentifier(e) {
		return nil, fmt.Errorf("command generic must be null or a type alias identifier, got %q", expr)
	}

	body, defMod, err := ResolveTypeAlias(cache, mod, e, NewVisited())
	if err != nil {
		return nil, fmt.Errorf("resolving command type %q: %w", e, err)
	}

	m := commandShape.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return nil, fmt.Errorf("command type %q must alias Static<typeof X> or StaticDecode<typeof X>, got %q", e, body)
	}

	target := stripSpaces(m[1])

	ref, err := RuntimeReferenceFromIdentifier(cache, defMod, target)
	if err != nil {
		return nil, fmt.Errorf("resolving command schema reference %q: %w", target, err)
	}

	return ref, nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}

		return r
	}, s)
}
