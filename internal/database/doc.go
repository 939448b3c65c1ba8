// Package database provides SQLite-based storage for patentprobe.
//
// This package implements the ProbeDB, which stores:
//   - Probe runs with their full reports for historical analysis
//   - Per-endpoint results for tracking behavior across runs
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
