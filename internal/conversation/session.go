package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"contextify/internal/form"
	"contextify/internal/llm"
	"contextify/internal/media"
	"contextify/internal/reply"
	"contextify/internal/transcribe"
)

// Session is one conversation's full in-memory state. All mutation goes
// through the mutex; the model call itself runs outside it.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	messages   []Message
	log        TurnLog
	loading    bool
	staged     []media.Attachment
	capture    transcribe.Gate

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func newSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		lastActive: now,
		subs:       make(map[int]chan Event),
	}
}

func (s *Session) touchLocked() { s.lastActive = time.Now().UTC() }

// LastActive reports the last mutation time, for idle expiry.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Transcript returns a copy of the message log plus the loading flag.
func (s *Session) Transcript() ([]Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...), s.loading
}

// History returns the model-facing turn sequence as of now.
func (s *Session) History() []llm.Turn {
	return s.log.Snapshot()
}

// ActiveForm returns the newest message's descriptors when that message
// is a COLLECTING reply. Older forms are superseded and inert.
func (s *Session) ActiveForm() (messageID string, fields []form.FieldDescriptor, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return "", nil, false
	}
	last := s.messages[len(s.messages)-1]
	if last.Role != RoleAssistant || last.Status != reply.StatusCollecting {
		return "", nil, false
	}
	return last.ID, append([]form.FieldDescriptor(nil), last.Fields...), true
}

// Capture exposes the session's dictation gate. Gates on different
// sessions are independent.
func (s *Session) Capture() *transcribe.Gate { return &s.capture }

// Stage parks an attachment on the session until the next send consumes
// it (or a reset frees it).
func (s *Session) Stage(att media.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = append(s.staged, att)
	s.touchLocked()
}

// Staged lists the currently staged attachments.
func (s *Session) Staged() []media.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]media.Attachment(nil), s.staged...)
}

// Unstage removes one staged attachment by id, freeing its payload.
func (s *Session) Unstage(attachmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, att := range s.staged {
		if att.ID == attachmentID {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			s.touchLocked()
			return true
		}
	}
	return false
}

// beginSend claims the single in-flight slot: it appends the user
// message, flips loading, and returns the material for the model call.
// consumeStaged folds the composer's staged attachments into the
// message (plain sends do, form submissions bring their own files).
// ErrBusy when a send is already outstanding.
func (s *Session) beginSend(text string, atts []media.Attachment, consumeStaged bool) (Message, []media.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return Message{}, nil, ErrBusy
	}
	var files []media.Attachment
	if consumeStaged {
		files = append(files, s.staged...)
	}
	files = append(files, atts...)
	if text == "" && len(files) == 0 {
		return Message{}, nil, ErrEmptyMessage
	}
	if consumeStaged {
		s.staged = nil
	}
	msg := newUserMessage(text, files)
	s.messages = append(s.messages, msg)
	s.loading = true
	s.touchLocked()
	return msg, files, nil
}

// finishSend appends the assistant message and clears loading. It is
// the only way out of the loading state, failure paths included.
func (s *Session) finishSend(assistant Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, assistant)
	s.loading = false
	s.touchLocked()
	return assistant
}

// reset clears messages, history, and staged payloads, then seeds the
// given greeting. Rejected while a send is in flight.
func (s *Session) reset(seed Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	s.messages = []Message{seed}
	s.staged = nil
	s.log.Reset()
	s.touchLocked()
	return nil
}

// Subscribe registers an event feed. The returned cancel func must be
// called when the consumer goes away. Slow consumers lose events rather
// than stall the conversation; they can refetch the transcript.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()
	return ch, func() {
		s.subMu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	}
}

func (s *Session) notify(ev Event) {
	ev.ConversationID = s.ID
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default: // drop for slow consumers
		}
	}
}
