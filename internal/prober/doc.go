// Package prober executes individual endpoint probes.
//
// A probe is a single bounded-timeout GET request. There are no retries:
// the goal is reachability and payload-shape discovery, not reliability
// measurement, so each target is attempted exactly once per run.
//
// Transport-level failures (DNS, refused connections, TLS errors,
// timeouts) are normalized into typed Outcome values. Probe never
// returns a Go error for an environmental failure; dead endpoints are
// data, not exceptions.
package prober
