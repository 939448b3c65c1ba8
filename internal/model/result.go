package model

import "strings"

// DiscoveredMarker is the label segment that marks secondary targets
// synthesized for endpoints discovered by a deep scan.
const DiscoveredMarker = "/discovered/"

// Result is a classified probe outcome.
// Ownership passes to the aggregator once produced; nothing mutates a
// Result after aggregation.
type Result struct {
	// Label is the logical name of the probed target. Secondary targets
	// discovered by deep scans carry synthesized labels of the form
	// "<parent-label>/discovered/<n>".
	Label string `json:"label"`

	// URL is the URL the classified response came from.
	URL string `json:"url"`

	// Category is the assigned classification.
	Category Category `json:"category"`

	// Note carries human-readable detail about the classification:
	// status codes, truncated transport errors, parse failures, or
	// endpoint hints extracted from markup.
	Note string `json:"note,omitempty"`

	// Secondary contains probe targets discovered by a deep scan.
	// Only ever populated for top-level DeepScan targets; results for
	// discovered targets never carry secondaries (depth is capped at 1).
	Secondary []ProbeTarget `json:"secondary_targets,omitempty"`
}

// Discovered reports whether this result belongs to a secondary target
// found by a deep scan rather than a catalog entry.
func (r *Result) Discovered() bool {
	return strings.Contains(r.Label, DiscoveredMarker)
}
