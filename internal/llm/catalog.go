package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// Variant is the user-facing model choice on the submit affordance.
type Variant string

const (
	VariantFast Variant = "fast"
	VariantDeep Variant = "deep"
)

// DefaultVariant applies when the user did not pick one.
const DefaultVariant = VariantFast

// ParseVariant normalizes a wire value. Empty means DefaultVariant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultVariant, nil
	case VariantFast:
		return VariantFast, nil
	case VariantDeep:
		return VariantDeep, nil
	}
	return "", fmt.Errorf("llm: unknown variant %q", s)
}

// ModelSpec describes one catalog entry.
type ModelSpec struct {
	Variant     Variant `json:"variant"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
}

var catalog = []ModelSpec{
	{Variant: VariantFast, Model: "gemini-3-flash-preview", Description: "Low latency, reduced reasoning effort"},
	{Variant: VariantDeep, Model: "gemini-3-pro-preview", Description: "High reasoning effort, slower"},
}

// Catalog lists the available variants in a stable order.
func Catalog() []ModelSpec {
	return append([]ModelSpec(nil), catalog...)
}

// ModelFor resolves a variant to its model identifier.
func ModelFor(v Variant) string {
	for _, m := range catalog {
		if m.Variant == v {
			return m.Model
		}
	}
	return catalog[0].Model
}

// urlPattern is the heuristic for "the input mentions a URL": a scheme
// followed by non-whitespace. False positives only enable an extra
// tool, so precision is not a goal.
var urlPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.-]*://\S+`)

// NeedsURLContext reports whether text warrants enabling the URL-fetch
// tool on the call.
func NeedsURLContext(text string) bool {
	return urlPattern.MatchString(text)
}
