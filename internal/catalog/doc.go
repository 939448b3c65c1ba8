// Package catalog defines the ordered list of probe targets for a run.
//
// The built-in catalog covers the patent-data endpoints worth surveying:
// PatentsView, the USPTO open-data APIs, TSDR, the assignment search,
// the Patent Public Search application, bulk-data portals, and a handful
// of alternative sources. A YAML file can replace it entirely.
//
// Design decision: Earlier tooling enumerated near-identical URL lists
// across several scripts. Unifying them into one data-driven catalog of
// ProbeTarget values removes that duplication and makes the probe list
// reviewable in one place.
package catalog
