// Package reply models the structured assistant reply: a status flag,
// display text, and the optional payloads (field descriptors, analysis,
// final output, references) plus normalized grounding links.
package reply

import (
	"errors"

	"contextify/internal/form"
)

// Status mirrors the model's status field exactly. No other values are
// legal; an unrecognized status fails closed as a schema violation.
type Status string

const (
	StatusCollecting Status = "COLLECTING"
	StatusComplete   Status = "COMPLETE"
)

// ErrSchemaViolation marks a reply that could not be parsed or that
// breaks the reply contract. Never retried, never partially trusted.
var ErrSchemaViolation = errors.New("reply: schema violation")

// Valid reports whether s is one of the two legal statuses.
func (s Status) Valid() bool {
	return s == StatusCollecting || s == StatusComplete
}

// GroundingLink is one source-attribution entry surfaced with a reply.
type GroundingLink struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Reply is one parsed, normalized model reply.
//
// The payload is already classified by status: a COLLECTING reply
// carries only Fields, a COMPLETE reply only Analysis/FinalOutput.
// Links are attached by the caller from the call's grounding metadata.
type Reply struct {
	Status        Status
	Message       string
	Fields        []form.FieldDescriptor
	Analysis      string
	FinalOutput   string
	KeyReferences []string
	Links         []GroundingLink
}
