package entrypoint

import (
	"errors"
	"strings"

	"manifest-generator/internal/scan"
)

// Property is one `key: value` entry of an object literal.
type Property struct {
	Key   string
	Value string
}

// ObjectLiteral is the classified content of one object literal expression.
// Spreads are recorded separately because they never satisfy direct
// property checks: a contract must remain textually locatable.
type ObjectLiteral struct {
	Properties []Property
	Shorthands []string
	Spreads    []string
}

// ParseObjectLiteral strips redundant wrapping parentheses, locates the
// first top-level brace pair, and classifies each top-level entry as a
// key/value pair, a shorthand property, or a spread.
func ParseObjectLiteral(expr string) (*ObjectLiteral, error) {
	t := stripWrappingParens(expr)

	open := scan.IndexTopLevel(t, '{')
	if open < 0 {
		return nil, errors.New("expression is not an object literal")
	}

	end := scan.FindMatchingDelimiter(t, open, '{', '}')
	if end < 0 {
		return nil, errors.New("object literal is unterminated")
	}

	obj := &ObjectLiteral{}

	for _, entry := range scan.SplitTopLevel(t[open+1:end], ',', false) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.HasPrefix(entry, "...") {
			obj.Spreads = append(obj.Spreads, strings.TrimSpace(entry[3:]))
			continue
		}

		if ci := scan.IndexTopLevel(entry, ':'); ci >= 0 {
			obj.Properties = append(obj.Properties, Property{
				Key:   normalizeKey(entry[:ci]),
				Value: strings.TrimSpace(entry[ci+1:]),
			})

			continue
		}

		if scan.IsIdentifier(entry) {
			obj.Shorthands = append(obj.Shorthands, entry)
		}
	}

	return obj, nil
}

// Direct returns the value expression of a directly declared property: a
// literal key/value pair or a shorthand. Spread content never matches.
func (o *ObjectLiteral) Direct(key string) (string, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}

	for _, s := range o.Shorthands {
		if s == key {
			return s, true
		}
	}

	return "", false
}

// normalizeKey reduces an identifier or quoted property key to its plain
// name. Computed keys are kept verbatim; they can never equal a plain name.
func normalizeKey(raw string) string {
	k := strings.TrimSpace(raw)
	if len(k) >= 2 {
		switch k[0] {
		case '\'', '"', '`':
			if k[len(k)-1] == k[0] {
				return k[1 : len(k)-1]
			}
		}
	}

	return k
}

// stripWrappingParens removes parentheses that wrap the entire expression,
// repeatedly.
func stripWrappingParens(expr string) string {
	t := strings.TrimSpace(expr)

	for len(t) > 1 && t[0] == '(' {
		end := scan.FindMatchingDelimiter(t, 0, '(', ')')
		if end != len(t)-1 {
			break
		}

		t = strings.TrimSpace(t[1 : len(t)-1])
	}

	return t
}
