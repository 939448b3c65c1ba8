package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// fileFormat is the YAML structure of a catalog file.
//
// Design decision: The file format uses its own types with string enums
// rather than unmarshalling into model.ProbeTarget directly. This keeps
// YAML concerns out of the model package and lets the file use readable
// names ("deep-scan") instead of integer constants.
type fileFormat struct {
	Targets []fileTarget `yaml:"targets"`
}

// fileTarget is one target entry in a catalog file.
type fileTarget struct {
	Label   string            `yaml:"label"`
	URL     string            `yaml:"url"`
	Params  map[string]string `yaml:"params,omitempty"`
	Variant string            `yaml:"variant,omitempty"`
	Hint    string            `yaml:"hint,omitempty"`
}

// Load reads probe targets from a YAML catalog file.
// The file replaces the built-in catalog entirely.
//
// Example:
//
//	targets:
//	  - label: my-api
//	    url: https://api.example.com/v1/
//	    params:
//	      q: test
//	    variant: plain
//	    hint: expect-json
func Load(path string) ([]model.ProbeTarget, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided catalog path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	targets := make([]model.ProbeTarget, 0, len(ff.Targets))
	for i, ft := range ff.Targets {
		variant, err := parseVariant(ft.Variant)
		if err != nil {
			return nil, fmt.Errorf("target %d (%q): %w", i, ft.Label, err)
		}
		hint, err := parseHint(ft.Hint)
		if err != nil {
			return nil, fmt.Errorf("target %d (%q): %w", i, ft.Label, err)
		}
		targets = append(targets, model.ProbeTarget{
			Label:   ft.Label,
			URL:     ft.URL,
			Params:  ft.Params,
			Variant: variant,
			Hint:    hint,
		})
	}

	if err := Validate(targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// parseVariant maps a variant name to its enum value.
// An empty string means plain, so file authors can omit the field.
func parseVariant(s string) (model.Variant, error) {
	switch s {
	case "", "plain":
		return model.VariantPlain, nil
	case "follow-form":
		return model.VariantFollowForm, nil
	case "deep-scan":
		return model.VariantDeepScan, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want plain, follow-form, or deep-scan)", s)
	}
}

// parseHint maps a hint name to its enum value.
func parseHint(s string) (model.Hint, error) {
	switch s {
	case "", "none":
		return model.HintNone, nil
	case "expect-json":
		return model.HintExpectJSON, nil
	case "expect-xml":
		return model.HintExpectXML, nil
	default:
		return 0, fmt.Errorf("unknown hint %q (want none, expect-json, or expect-xml)", s)
	}
}
