package handler

import (
	"net/http"

	"contextify/internal/llm"
)

type modelEntry struct {
	llm.ModelSpec
	Default bool `json:"default"`
}

// ListModels returns the selectable variants for the submit affordance.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	specs := llm.Catalog()
	entries := make([]modelEntry, 0, len(specs))
	for _, spec := range specs {
		entries = append(entries, modelEntry{
			ModelSpec: spec,
			Default:   spec.Variant == llm.DefaultVariant,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": entries})
}
