package reply

import (
	"encoding/json"
	"fmt"
	"strings"

	"contextify/internal/form"
)

type wireReply struct {
	Status        *string                `json:"status"`
	Message       *string                `json:"message"`
	Fields        []form.FieldDescriptor `json:"fields"`
	Analysis      string                 `json:"analysis"`
	FinalOutput   string                 `json:"final_output"`
	KeyReferences []string               `json:"key_references"`
}

// StripFence removes one optional surrounding markdown code fence
// (```json or ```) from the model's reply text.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Parse turns raw reply text into a Reply.
//
// The text is fence-stripped, parsed as JSON, and checked against the
// contract: status and message keys present, status one of the two
// legal values, and (for COLLECTING) a well-formed descriptor list.
// Any failure wraps ErrSchemaViolation; the raw text is the caller's to
// log. Payload fields that do not belong to the reply's status are
// dropped, not surfaced.
func Parse(raw string) (*Reply, error) {
	text := StripFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply text", ErrSchemaViolation)
	}
	var w wireReply
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrSchemaViolation, err)
	}
	if w.Status == nil {
		return nil, fmt.Errorf("%w: missing status", ErrSchemaViolation)
	}
	if w.Message == nil {
		return nil, fmt.Errorf("%w: missing message", ErrSchemaViolation)
	}
	status := Status(*w.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unrecognized status %q", ErrSchemaViolation, *w.Status)
	}

	r := &Reply{Status: status, Message: *w.Message, KeyReferences: w.KeyReferences}
	switch status {
	case StatusCollecting:
		if err := form.ValidateDescriptors(w.Fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		r.Fields = w.Fields
	case StatusComplete:
		r.Analysis = w.Analysis
		r.FinalOutput = w.FinalOutput
	}
	return r, nil
}
