// Package resolve performs cross-file symbol resolution without a type
// checker: runtime references, type aliases (through imports, re-exports,
// and barrel files), string-literal event unions, and the command type
// contract.
//
// Resolution over (file, symbol) pairs is a potentially cyclic graph, so an
// explicit visited set is threaded through every recursive call; revisiting
// a pair is a fatal cycle error, and depth is bounded defensively.
package resolve
