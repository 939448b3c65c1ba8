package model

import (
	"sort"
	"time"
)

// Report is the aggregated artifact of one probe run.
// It is built once per run and is immutable after construction; report
// writers and the database consume it read-only.
//
// Design decision: Every field has a defined zero/empty state so a
// partially completed run (cancelled mid-flight) still yields a valid,
// returnable report.
type Report struct {
	// DateScanned is when the run started.
	DateScanned time.Time `json:"date_scanned"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Results maps target labels to their classified results.
	// Every top-level catalog target has an entry, even when probing
	// failed; secondary discoveries only add more entries.
	Results map[string]*Result `json:"results"`

	// Counts tallies results by category. All six categories are always
	// present, zero-filled, so consumers never need defensive lookups.
	Counts map[Category]int `json:"counts_by_category"`

	// Recommendations is the ranked, human-readable action list derived
	// from the category tallies.
	Recommendations []string `json:"recommendations,omitempty"`

	// Cancelled is true when the run was interrupted before all targets
	// were probed. The report still contains every completed result.
	Cancelled bool `json:"cancelled"`
}

// NewReport creates an empty report with initialized, zero-filled maps.
//
// Design decision: We provide a constructor rather than relying on zero
// values because the Counts map must contain every category from the
// start to uphold the zero-fill invariant.
func NewReport() *Report {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	return &Report{
		DateScanned: time.Now(),
		Results:     make(map[string]*Result),
		Counts:      counts,
	}
}

// AddResult records a classified result under its label and updates the
// category tally. If two results share a label the later one overwrites;
// unique labels are a documented caller precondition, not runtime-enforced.
func (r *Report) AddResult(res *Result) {
	if prev, ok := r.Results[res.Label]; ok {
		r.Counts[prev.Category]--
	}
	r.Results[res.Label] = res
	r.Counts[res.Category]++
}

// Labels returns all result labels whose category matches c, in
// lexicographic order for deterministic output.
func (r *Report) Labels(c Category) []string {
	labels := make([]string, 0)
	for label, res := range r.Results {
		if res.Category == c {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// TotalResults returns the number of classified results in the report.
func (r *Report) TotalResults() int {
	return len(r.Results)
}
