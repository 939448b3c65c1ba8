// Package main provides the entry point for the patentprobe CLI.
//
// Patentprobe discovers and classifies patent-data endpoints. It probes a
// catalog of candidate URLs, classifies each response, and recommends the
// best access strategy for programmatic patent data retrieval.
//
// Usage:
//
//	patentprobe probe
//	patentprobe probe --catalog endpoints.yaml --json
//
// See --help for all available options.
package main

// main is the entry point for patentprobe.
func main() {
	Execute()
}
