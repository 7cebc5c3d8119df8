// Package entrypoint locates the canonical plugin entrypoint callsite in a
// source tree and parses its options object literal.
//
// Two call forms are accepted: createPlugin (preferred) and
// createActionsPlugin (fallback). Each must carry an explicit generic
// argument list followed by a call argument list. Exactly one qualifying
// callsite may exist in the whole tree.
package entrypoint
