package conversation

import (
	"context"
	"errors"
	"log"
	"strings"

	"contextify/internal/form"
	"contextify/internal/llm"
	"contextify/internal/media"
	"contextify/internal/reply"
	"contextify/internal/transcribe"
)

// welcomeText seeds every fresh conversation.
const welcomeText = "Hi! Describe what you need and attach anything relevant. I'll ask for any missing details, then deliver a grounded answer."

// fallbackText is the single generic assistant message every failed
// send turns into. The user's own message always stays put.
const fallbackText = "I ran into a small issue processing that. Please try restating your request."

// Service runs the conversation pipelines over a Store, a model client,
// and a transcriber.
type Service struct {
	store       *Store
	client      llm.Client
	transcriber transcribe.Transcriber
}

func NewService(store *Store, client llm.Client, transcriber transcribe.Transcriber) *Service {
	return &Service{store: store, client: client, transcriber: transcriber}
}

// SendResult is the message pair one submission produced. Assistant is
// the parsed reply on success and the generic notice on failure.
type SendResult struct {
	User      Message `json:"user"`
	Assistant Message `json:"assistant"`
}

// Create opens a session seeded with the greeting.
func (svc *Service) Create() *Session {
	s := newSession()
	s.messages = append(s.messages, newNoticeMessage(welcomeText))
	svc.store.add(s)
	return s
}

// Get resolves a session id.
func (svc *Service) Get(id string) (*Session, error) {
	s, ok := svc.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session entirely.
func (svc *Service) Delete(id string) error {
	if !svc.store.Delete(id) {
		return ErrNotFound
	}
	return nil
}

// Send runs one user submission through the model and returns the
// resulting message pair.
//
// The user message (text plus staged and inline attachments) is
// committed immediately and never rolled back. On success the turn
// history grows by exactly the user/model pair; on any failure it grows
// by nothing and the assistant slot carries the generic notice. Loading
// clears on every path. A second send while one is in flight returns
// ErrBusy without a model call.
func (svc *Service) Send(ctx context.Context, id, text string, atts []media.Attachment, variant llm.Variant) (*SendResult, error) {
	s, err := svc.Get(id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	userMsg, files, err := s.beginSend(text, atts, true)
	if err != nil {
		return nil, err
	}
	return svc.run(ctx, s, userMsg, text, files, variant), nil
}

// run drives one committed submission to its conclusion: events out,
// model call, assistant message in, loading cleared.
func (svc *Service) run(ctx context.Context, s *Session, userMsg Message, text string, files []media.Attachment, variant llm.Variant) *SendResult {
	s.notify(Event{Type: EventMessage, Message: &userMsg, Loading: true})
	s.notify(Event{Type: EventLoading, Loading: true})

	assistant := svc.converse(ctx, s, text, files, variant)

	assistant = s.finishSend(assistant)
	s.notify(Event{Type: EventMessage, Message: &assistant})
	s.notify(Event{Type: EventLoading, Loading: false})
	return &SendResult{User: userMsg, Assistant: assistant}
}

// converse issues the model call and classifies the outcome. Failures
// of any kind collapse into the generic notice; the raw text of an
// unparseable reply is logged for diagnosis.
func (svc *Service) converse(ctx context.Context, s *Session, text string, files []media.Attachment, variant llm.Variant) Message {
	req := llm.Request{
		History:     s.log.Snapshot(),
		Text:        text,
		Attachments: files,
		Model:       llm.ModelFor(variant),
	}
	// Once issued, the call runs to completion even if the requester
	// goes away; there is no cancellation path.
	res, err := svc.client.Generate(context.WithoutCancel(ctx), req)
	if err != nil {
		log.Printf("conversation %s: inference failed: %v", s.ID, err)
		return newNoticeMessage(fallbackText)
	}
	parsed, err := reply.Parse(res.Text)
	if err != nil {
		log.Printf("conversation %s: %v; raw reply: %q", s.ID, err, res.Text)
		return newNoticeMessage(fallbackText)
	}
	parsed.Links = reply.NormalizeLinks(res.Citations, res.Retrieved)

	s.log.Append(
		llm.Turn{Role: llm.RoleUser, Text: text, Attachments: files},
		llm.Turn{Role: llm.RoleModel, Text: res.Text},
	)
	return newAssistantMessage(parsed)
}

// SubmitForm assembles a submission against the active form and sends
// it. The target must still be the newest message; anything older is
// inert and yields ErrFormSuperseded.
func (svc *Service) SubmitForm(ctx context.Context, id, messageID string, sub form.Submission, variant llm.Variant) (*SendResult, error) {
	s, err := svc.Get(id)
	if err != nil {
		return nil, err
	}
	activeID, fields, ok := s.ActiveForm()
	if !ok || activeID != messageID {
		return nil, ErrFormSuperseded
	}
	payload := form.Compose(fields, sub)
	userMsg, files, err := s.beginSend(payload.Message, payload.Files, false)
	if err != nil {
		return nil, err
	}
	return svc.run(ctx, s, userMsg, payload.Message, files, variant), nil
}

// Reset clears a conversation back to its seeded state. Calling it
// twice lands in the same place as calling it once.
func (svc *Service) Reset(id string) error {
	s, err := svc.Get(id)
	if err != nil {
		return err
	}
	if err := s.reset(newNoticeMessage(welcomeText)); err != nil {
		return err
	}
	s.notify(Event{Type: EventReset})
	return nil
}

// CaptureStart claims the session's microphone gate.
func (svc *Service) CaptureStart(id string) (transcribe.State, error) {
	s, err := svc.Get(id)
	if err != nil {
		return "", err
	}
	if err := s.Capture().Start(); err != nil {
		return s.Capture().State(), err
	}
	return s.Capture().State(), nil
}

// CaptureCancel discards the current recording.
func (svc *Service) CaptureCancel(id string) (transcribe.State, error) {
	s, err := svc.Get(id)
	if err != nil {
		return "", err
	}
	if err := s.Capture().Cancel(); err != nil {
		return s.Capture().State(), err
	}
	return s.Capture().State(), nil
}

// CaptureFinish transcribes the recorded audio and releases the gate on
// every exit path. A transcription failure means no text, never a stuck
// control.
func (svc *Service) CaptureFinish(ctx context.Context, id, audioB64, mimeType string) (string, error) {
	s, err := svc.Get(id)
	if err != nil {
		return "", err
	}
	gate := s.Capture()
	if err := gate.Process(); err != nil {
		return "", err
	}
	defer gate.Finish()

	text, err := svc.transcriber.Transcribe(context.WithoutCancel(ctx), audioB64, mimeType)
	if err != nil {
		log.Printf("conversation %s: %v", s.ID, err)
		return "", err
	}
	return text, nil
}

// IsConflict reports whether err is a busy/superseded condition a
// transport should answer with a conflict status.
func IsConflict(err error) bool {
	return errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrFormSuperseded) ||
		errors.Is(err, transcribe.ErrCaptureBusy)
}
