// Package loader obtains concrete exported values from a built JavaScript
// module.
//
// It is a capability probe: an ordered list of loader strategies, each a
// function from module path and export names to a value map or a typed
// failure, tried in sequence with first success winning. Every strategy
// speaks the same wire contract: a single stdout line consisting of a
// fixed ASCII marker immediately followed by a JSON object of the requested
// exports. The reader scans stdout lines in reverse and takes the last line
// containing the marker, so module-side logging cannot corrupt the result.
//
// No timeout is enforced: a hanging runtime blocks extraction indefinitely.
// This is a known limitation.
package loader
