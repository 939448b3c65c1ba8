package model

import (
	"encoding/json"
	"testing"
)

// TestCategoryString tests string representations of all categories.
func TestCategoryString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     string
	}{
		{CategoryJSONAPI, "json-api"},
		{CategoryXMLAPI, "xml-api"},
		{CategoryHTMLScrapable, "html-scrapable"},
		{CategoryAuthRequired, "auth-required"},
		{CategoryUnreachable, "unreachable"},
		{CategoryMalformed, "malformed"},
		{Category(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

// TestCategoriesCoversAllValues ensures the fixed category list is exhaustive.
func TestCategoriesCoversAllValues(t *testing.T) {
	t.Parallel()

	if len(Categories) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(Categories))
	}

	seen := make(map[Category]bool)
	for _, c := range Categories {
		if seen[c] {
			t.Errorf("duplicate category in Categories: %s", c)
		}
		seen[c] = true
		if c.String() == "unknown" {
			t.Errorf("category %d has no string representation", c)
		}
	}
}

// TestCategoryTextRoundTrip tests text marshaling of categories.
func TestCategoryTextRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("round trips every category", func(t *testing.T) {
		t.Parallel()

		for _, c := range Categories {
			text, err := c.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText(%s): %v", c, err)
			}

			var got Category
			if err := got.UnmarshalText(text); err != nil {
				t.Fatalf("UnmarshalText(%q): %v", text, err)
			}
			if got != c {
				t.Errorf("round trip changed %s to %s", c, got)
			}
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		var c Category
		err := c.UnmarshalText([]byte("not-a-category"))
		if err == nil {
			t.Fatal("expected error for unknown category name")
		}
	})

	t.Run("serializes as JSON map key", func(t *testing.T) {
		t.Parallel()

		counts := map[Category]int{CategoryJSONAPI: 2}
		data, err := json.Marshal(counts)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `{"json-api":2}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})
}
