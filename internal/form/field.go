// Package form models the dynamic context forms the model declares:
// abstract field descriptors coming in, concrete controls going out to
// the client, and the submission payload going back into a new turn.
package form

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of field types the model may declare.
type Kind string

const (
	KindText      Kind = "text"
	KindNumber    Kind = "number"
	KindDate      Kind = "date"
	KindMultiline Kind = "multiline-text"
	KindFile      Kind = "file"
	KindSelect    Kind = "select"
)

// ErrDescriptor marks a field-descriptor list that violates the model
// contract. Callers treat it like any other malformed reply.
var ErrDescriptor = errors.New("form: invalid field descriptor")

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindDate, KindMultiline, KindFile, KindSelect:
		return true
	}
	return false
}

// FieldDescriptor is one abstract input the model asked for. Produced
// fresh per reply, consumed once, never mutated.
type FieldDescriptor struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"` // select only
}

// ValidateDescriptors enforces the descriptor-list contract: non-empty
// unique ids, known kinds, and required selects carrying at least one
// option.
func ValidateDescriptors(fields []FieldDescriptor) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return fmt.Errorf("%w: field %d has empty id", ErrDescriptor, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrDescriptor, id)
		}
		seen[id] = struct{}{}
		if !f.Kind.Valid() {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrDescriptor, id, f.Kind)
		}
		if f.Kind == KindSelect && f.Required && len(f.Options) == 0 {
			return fmt.Errorf("%w: required select %q has no options", ErrDescriptor, id)
		}
	}
	return nil
}
