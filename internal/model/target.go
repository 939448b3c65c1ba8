package model

// Variant selects how a target is probed.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output when needed.
type Variant int

const (
	// VariantPlain performs a single GET against the target URL.
	VariantPlain Variant = iota

	// VariantFollowForm performs the initial GET and, if the body contains
	// a form with an action path, issues exactly one additional GET to the
	// resolved action URL. The follow-up response replaces the initial one
	// for classification purposes. It never recurses further.
	VariantFollowForm

	// VariantDeepScan performs a plain GET and additionally scans the
	// response markup for embedded endpoint hints: script blocks mentioning
	// API-like paths (recorded as note content) and rooted form actions
	// (enqueued as secondary probe targets).
	VariantDeepScan
)

// String returns a human-readable representation of the probe variant.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantFollowForm:
		return "follow-form"
	case VariantDeepScan:
		return "deep-scan"
	default:
		return "unknown"
	}
}

// Hint is an optional expectation about the response format of a target.
// Hints are advisory: classification always verifies the actual payload
// rather than trusting the hint.
type Hint int

const (
	// HintNone means no expectation about the response format.
	HintNone Hint = iota

	// HintExpectJSON means the catalog author expects a JSON API.
	HintExpectJSON

	// HintExpectXML means the catalog author expects an XML API.
	HintExpectXML
)

// String returns a human-readable representation of the hint.
func (h Hint) String() string {
	switch h {
	case HintNone:
		return "none"
	case HintExpectJSON:
		return "expect-json"
	case HintExpectXML:
		return "expect-xml"
	default:
		return "unknown"
	}
}

// ProbeTarget is one endpoint configuration to test.
// Targets are immutable once constructed at catalog-build time.
//
// Design decision: The label is an explicit field set at construction,
// never derived from formatting of a display name. Deriving identity from
// display strings caused collisions and casing bugs in earlier tooling.
type ProbeTarget struct {
	// Label is the unique logical name for this target.
	// Callers must guarantee labels are unique within one run.
	Label string `json:"label"`

	// URL is the endpoint to probe.
	URL string `json:"url"`

	// Params are optional query parameters, order-irrelevant.
	Params map[string]string `json:"params,omitempty"`

	// Variant selects the probe behavior for this target.
	Variant Variant `json:"variant"`

	// Hint is the optional expected response format.
	Hint Hint `json:"hint,omitempty"`
}
