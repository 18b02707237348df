// Package llm is the model-facing stack: the client interface, the
// Gemini implementation, the decorator middleware around it, and the
// fast/deep model catalog.
package llm

import (
	"context"
	"errors"

	"contextify/internal/media"
	"contextify/internal/reply"
)

// ErrInference marks a failed generation call (network, auth, quota,
// upstream rejection). Callers surface a generic failure message.
var ErrInference = errors.New("llm: inference failed")

// Role identifies who produced a turn, in the values the API expects.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one history entry in the model's turn-taking shape. A user
// turn holds text plus inlined media; a model turn holds the raw
// serialized reply exactly as it came back.
type Turn struct {
	Role        Role
	Text        string
	Attachments []media.Attachment
}

// Request is one generation call. History is read, never mutated.
type Request struct {
	History     []Turn
	Text        string
	Attachments []media.Attachment
	Model       string
}

// Result is the raw call outcome: the reply text plus the grounding
// metadata needed for link normalization. Parsing is the caller's job.
type Result struct {
	Text      string
	Citations []reply.Citation // search-grounding chunks, model order
	Retrieved []string         // URL-fetch retrieved URLs, model order
}

// Client issues generation calls. Cross-cutting concerns (rate
// limiting, logging) are applied via Middleware, not baked in.
type Client interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Result, error)
	Close() error
}
