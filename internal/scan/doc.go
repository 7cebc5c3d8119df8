// Package scan provides quote-, comment-, and delimiter-aware scanning
// primitives over raw source text.
//
// Every parser in this tool is built on these helpers. They operate on
// plain byte offsets, never panic, and treat unterminated constructs as
// extending to the end of the input.
//
// Key functions:
//   - SkipStringLiteral: closing-quote index, template interpolation aware
//   - FindMatchingDelimiter: structurally matching closer, or -1
//   - SplitTopLevel: split only at zero nesting depth
package scan
