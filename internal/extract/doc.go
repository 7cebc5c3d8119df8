// Package extract runs the full static-analysis pipeline: discover source
// files, locate the single entrypoint callsite, resolve the generic
// contract to runtime references, apply event exclusions, and load the
// referenced schema values through the module loader.
//
// The pipeline is deterministic: the same tree and options always produce
// the same metadata.
package extract
