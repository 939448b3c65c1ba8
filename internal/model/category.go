package model

// Category is the classification assigned to a probe outcome.
// Every outcome maps to exactly one category; the classifier is total
// over the Outcome type.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and map keys. MarshalText/UnmarshalText make
// categories usable as JSON object keys in serialized reports.
type Category int

const (
	// CategoryJSONAPI means the endpoint returned HTTP 200 with a body
	// that parses as JSON.
	CategoryJSONAPI Category = iota

	// CategoryXMLAPI means the endpoint returned HTTP 200 with a
	// well-formed XML body.
	CategoryXMLAPI

	// CategoryHTMLScrapable means the endpoint returned HTTP 200 with an
	// HTML (or unspecified) payload that could be scraped.
	CategoryHTMLScrapable

	// CategoryAuthRequired means the endpoint answered 401 or 403.
	// The endpoint exists but needs credentials.
	CategoryAuthRequired

	// CategoryUnreachable means the endpoint failed at the transport
	// level or returned a non-200 status other than 401/403.
	CategoryUnreachable

	// CategoryMalformed means the endpoint claimed a structured format
	// (JSON or XML) but the body failed to parse as that format.
	CategoryMalformed
)

// Categories lists every category in a fixed order. Aggregation uses this
// to zero-fill tallies so downstream consumers never need defensive lookups.
var Categories = []Category{
	CategoryJSONAPI,
	CategoryXMLAPI,
	CategoryHTMLScrapable,
	CategoryAuthRequired,
	CategoryUnreachable,
	CategoryMalformed,
}

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryJSONAPI:
		return "json-api"
	case CategoryXMLAPI:
		return "xml-api"
	case CategoryHTMLScrapable:
		return "html-scrapable"
	case CategoryAuthRequired:
		return "auth-required"
	case CategoryUnreachable:
		return "unreachable"
	case CategoryMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize
// as their string names, including as JSON map keys.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	for _, cat := range Categories {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}
	return &UnknownCategoryError{Name: string(text)}
}

// UnknownCategoryError is returned when deserializing an unrecognized
// category name.
type UnknownCategoryError struct {
	// Name is the unrecognized category name.
	Name string
}

// Error implements the error interface.
func (e *UnknownCategoryError) Error() string {
	return "unknown category: " + e.Name
}
