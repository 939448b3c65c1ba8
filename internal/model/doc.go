// Package model defines the core data structures used throughout patentprobe.
//
// This package contains the following main types:
//   - ProbeTarget: One endpoint configuration to test
//   - Outcome: The raw transport-level result of one probe attempt
//   - Category: The classification assigned to an outcome
//   - Result: A classified outcome, including discovered secondary targets
//   - Report: The aggregated artifact of a full run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (prober, classifier, pipeline, report) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
