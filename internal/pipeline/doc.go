// Package pipeline orchestrates a full probe run.
//
// Probing is I/O-bound and embarrassingly parallel across independent
// targets, so the runner issues catalog probes through a bounded worker
// pool using errgroup. Each completed probe is classified and folded
// into a single report under a mutex; secondary targets discovered by
// deep scans are probed from the same pool, once each, at depth 1.
//
// Design decision: Environmental failures never abort a run. Every
// top-level target is guaranteed an entry in the report, even if that
// entry is unreachable — dead endpoints are data, not exceptions. Only
// catalog construction bugs (duplicate labels, empty catalog) fail the
// run, since they indicate a caller error rather than a network
// condition.
package pipeline
