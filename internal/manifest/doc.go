// Package manifest assembles the plugin manifest from extraction metadata,
// package metadata, and any previously written manifest.
//
// Assembly is warning-tolerant: once extraction has succeeded, a malformed
// field is downgraded to a warning and omitted (or left at its prior value)
// instead of failing the run. Output keys are held in a fixed canonical
// order so repeated runs produce byte-identical files.
package manifest
