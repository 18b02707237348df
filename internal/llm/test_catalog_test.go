package llm

import "testing"

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"fast", VariantFast, true},
		{"deep", VariantDeep, true},
		{" Deep ", VariantDeep, true},
		{"", DefaultVariant, true},
		{"turbo", "", false},
	}
	for _, tc := range cases {
		got, err := ParseVariant(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseVariant(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseVariant(%q) should fail", tc.in)
		}
	}
}

func TestModelFor(t *testing.T) {
	if m := ModelFor(VariantFast); m != "gemini-3-flash-preview" {
		t.Fatalf("fast model = %q", m)
	}
	if m := ModelFor(VariantDeep); m != "gemini-3-pro-preview" {
		t.Fatalf("deep model = %q", m)
	}
}

func TestCatalogIsACopy(t *testing.T) {
	c := Catalog()
	if len(c) != 2 {
		t.Fatalf("catalog entries = %d, want 2", len(c))
	}
	c[0].Model = "mutated"
	if Catalog()[0].Model == "mutated" {
		t.Fatal("Catalog must return a copy")
	}
}

func TestNeedsURLContext(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"check https://example.com/page please", true},
		{"ftp://host/file", true},
		{"custom+scheme://thing", true},
		{"no links here", false},
		{"dangling scheme:// ", false},
		{"www.example.com without scheme", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := NeedsURLContext(tc.text); got != tc.want {
			t.Fatalf("NeedsURLContext(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
