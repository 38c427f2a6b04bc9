// Package pipeline orchestrates input discovery, the concurrent per-file
// conversion pool, completion-order result aggregation, and batch summary
// reporting.
package pipeline
