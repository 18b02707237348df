// Package conversation owns the chat state: the visible message log,
// the model-facing turn history, per-conversation sessions, and the
// send pipeline that drives them.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"contextify/internal/form"
	"contextify/internal/media"
	"contextify/internal/reply"
)

// Role identifies a transcript author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the visible transcript. Messages are
// immutable once appended; only a full reset removes them.
type Message struct {
	ID            string                 `json:"id"`
	Role          Role                   `json:"role"`
	Text          string                 `json:"text,omitempty"`
	Attachments   []media.Attachment     `json:"attachments,omitempty"`
	Status        reply.Status           `json:"status,omitempty"`
	Fields        []form.FieldDescriptor `json:"fields,omitempty"`
	Analysis      string                 `json:"analysis,omitempty"`
	FinalOutput   string                 `json:"finalOutput,omitempty"`
	KeyReferences []string               `json:"keyReferences,omitempty"`
	Links         []reply.GroundingLink  `json:"links,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

func newUserMessage(text string, atts []media.Attachment) Message {
	return Message{
		ID:          uuid.NewString(),
		Role:        RoleUser,
		Text:        text,
		Attachments: atts,
		CreatedAt:   time.Now().UTC(),
	}
}

// newAssistantMessage classifies one parsed reply into a transcript
// entry. The reply's payload is already status-scoped, so the copy is
// mechanical.
func newAssistantMessage(r *reply.Reply) Message {
	return Message{
		ID:            uuid.NewString(),
		Role:          RoleAssistant,
		Text:          r.Message,
		Status:        r.Status,
		Fields:        r.Fields,
		Analysis:      r.Analysis,
		FinalOutput:   r.FinalOutput,
		KeyReferences: r.KeyReferences,
		Links:         r.Links,
		CreatedAt:     time.Now().UTC(),
	}
}

func newNoticeMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
