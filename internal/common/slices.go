package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Dedupe removes duplicates while preserving first-occurrence order.
func Dedupe[S ~[]E, E comparable](s S) S {
	if len(s) < 2 {
		return s
	}

	seen := make(map[E]bool, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if seen[e] {
			continue
		}

		seen[e] = true
		out = append(out, e)
	}

	return out
}

// Difference returns the elements of s not present in removed, preserving
// the order of s.
func Difference[S ~[]E, E comparable](s, removed S) S {
	drop := make(map[E]bool, len(removed))
	for _, e := range removed {
		drop[e] = true
	}

	out := make(S, 0, len(s))

	for _, e := range s {
		if !drop[e] {
			out = append(out, e)
		}
	}

	return out
}

// Contains reports whether s has the element e.
func Contains[S ~[]E, E comparable](s S, e E) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}

	return false
}
