// Package source models TypeScript source modules as structural facts:
// imports, re-exports, and type aliases.
//
// Each file is parsed exactly once per extraction run and cached; parsed
// modules are immutable afterwards. Parsing is lexical only: no syntax
// tree is built, and only the declaration forms the resolver needs are
// recognized.
package source
