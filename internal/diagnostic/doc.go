// Package diagnostic provides structured warnings for manifest assembly.
//
// Resolution-phase failures are plain fatal errors; once resolution has
// succeeded, assembly downgrades field-level problems to warnings collected
// here, so a single malformed field never blocks the manifest write.
package diagnostic
