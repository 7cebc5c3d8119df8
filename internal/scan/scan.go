package scan

import "strings"

// SkipStringLiteral returns the index of the quote that closes the string
// literal starting at s[start]. Escape sequences are honored. For
// template-style strings (backtick quoted) the scan also skips balanced
// ${...} interpolations, which may themselves contain nested strings.
//
// An unterminated literal extends to the end of the input, in which case
// the index of the last byte is returned.
func SkipStringLiteral(s string, start int) int {
	quote := s[start]

	i := start + 1
	for i < len(s) {
		switch {
		case s[i] == '\\':
			i += 2
			continue
		case s[i] == quote:
			return i
		case quote == '`' && s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end := FindMatchingDelimiter(s, i+1, '{', '}')
			if end < 0 {
				return len(s) - 1
			}

			i = end + 1
			continue
		}

		i++
	}

	return len(s) - 1
}

// SkipLineComment returns the index of the last byte of the // comment
// starting at s[start], excluding the terminating newline.
func SkipLineComment(s string, start int) int {
	nl := strings.IndexByte(s[start:], '\n')
	if nl < 0 {
		return len(s) - 1
	}

	return start + nl - 1
}

// SkipBlockComment returns the index of the final '/' of the block comment
// starting at s[start], or the last byte of s if the comment is unterminated.
func SkipBlockComment(s string, start int) int {
	end := strings.Index(s[start+2:], "*/")
	if end < 0 {
		return len(s) - 1
	}

	return start + 2 + end + 1
}

// SkipNonCode checks whether s[i] begins a string literal or a comment. If
// so it returns the index of the construct's last byte and true; otherwise
// it returns i and false.
func SkipNonCode(s string, i int) (int, bool) {
	switch s[i] {
	case '\'', '"', '`':
		return SkipStringLiteral(s, i), true
	case '/':
		if i+1 < len(s) {
			switch s[i+1] {
			case '/':
				return SkipLineComment(s, i), true
			case '*':
				return SkipBlockComment(s, i), true
			}
		}
	}

	return i, false
}

// FindMatchingDelimiter returns the index of the closer that structurally
// matches the opener at s[start], skipping string and comment content and
// nested same-kind pairs. It returns -1 when no match exists before the end
// of the input.
//
// When close is '>' a '>' directly preceded by '=' is ignored, so arrow
// functions inside generic argument lists do not unbalance the scan.
func FindMatchingDelimiter(s string, start int, open, close byte) int {
	if start < 0 || start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0

	for i := start; i < len(s); i++ {
		if j, ok := SkipNonCode(s, i); ok {
			i = j
			continue
		}

		c := s[i]
		if close == '>' && c == '>' && i > start && s[i-1] == '=' {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// SplitTopLevel splits s at every occurrence of sep that sits at zero
// nesting depth of parentheses, braces, and brackets. Angle brackets are
// tracked only when trackAngles is set, because outside generic-argument
// position '<' and '>' are ambiguous with comparison operators.
func SplitTopLevel(s string, sep byte, trackAngles bool) []string {
	var parts []string

	depth := 0
	angles := 0
	last := 0

	for i := 0; i < len(s); i++ {
		if j, ok := SkipNonCode(s, i); ok {
			i = j
			continue
		}

		c := s[i]
		if c == sep && depth == 0 && angles == 0 {
			parts = append(parts, s[last:i])
			last = i + 1

			continue
		}

		switch c {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			if depth > 0 {
				depth--
			}
		case '<':
			if trackAngles {
				angles++
			}
		case '>':
			if trackAngles && angles > 0 && !(i > 0 && s[i-1] == '=') {
				angles--
			}
		}
	}

	return append(parts, s[last:])
}

// IndexTopLevel returns the index of the first occurrence of c at zero
// nesting depth, skipping strings and comments, or -1. The match is tested
// before the depth update, so searching for an opening bracket finds the
// first top-level one instead of counting it as nesting.
func IndexTopLevel(s string, c byte) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		if j, ok := SkipNonCode(s, i); ok {
			i = j
			continue
		}

		if s[i] == c && depth == 0 {
			return i
		}

		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			if depth > 0 {
				depth--
			}
		}
	}

	return -1
}

// SkipSpace returns the index of the first byte at or after i that is not
// whitespace.
func SkipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	return i
}

// SkipSpaceAndComments returns the index of the first byte at or after i
// that is neither whitespace nor part of a comment.
func SkipSpaceAndComments(s string, i int) int {
	for i < len(s) {
		if isSpace(s[i]) {
			i++
			continue
		}

		if s[i] == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				i = SkipLineComment(s, i) + 1
				continue
			case '*':
				i = SkipBlockComment(s, i) + 1
				continue
			}
		}

		break
	}

	return i
}

// StringLiterals returns the contents of every quoted string literal in s,
// in source order. Comment content is skipped.
func StringLiterals(s string) []string {
	var lits []string

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '"', '`':
			end := SkipStringLiteral(s, i)
			if end > i {
				lits = append(lits, s[i+1:end])
			}

			i = end
		case '/':
			if j, ok := SkipNonCode(s, i); ok {
				i = j
			}
		}
	}

	return lits
}

// IsIdentStart reports whether c can begin an identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdentPart reports whether c can appear inside an identifier.
func IsIdentPart(c byte) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// IsIdentifier reports whether s is a single plain identifier.
func IsIdentifier(s string) bool {
	if s == "" || !IsIdentStart(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !IsIdentPart(s[i]) {
			return false
		}
	}

	return true
}

// HasWordAt reports whether the word occurs at s[i] with identifier
// boundaries on both sides. A preceding '.' also disqualifies the match, so
// member accesses are not mistaken for keywords.
func HasWordAt(s string, i int, word string) bool {
	if i < 0 || i+len(word) > len(s) || s[i:i+len(word)] != word {
		return false
	}

	if i > 0 && (IsIdentPart(s[i-1]) || s[i-1] == '.') {
		return false
	}

	end := i + len(word)

	return end >= len(s) || !IsIdentPart(s[end])
}

// ReadIdent reads the identifier starting at s[i] and returns it together
// with the index just past its end. It returns "" when s[i] cannot start an
// identifier.
func ReadIdent(s string, i int) (string, int) {
	if i >= len(s) || !IsIdentStart(s[i]) {
		return "", i
	}

	j := i + 1
	for j < len(s) && IsIdentPart(s[j]) {
		j++
	}

	return s[i:j], j
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
