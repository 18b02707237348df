package conversation

// EventType tags one transcript change pushed to subscribers.
type EventType string

const (
	// EventMessage carries a newly appended message.
	EventMessage EventType = "message"
	// EventLoading signals the loading flag flipped.
	EventLoading EventType = "loading"
	// EventReset signals the conversation was cleared and reseeded.
	EventReset EventType = "reset"
)

// Event is one feed entry. Message is set for EventMessage; Loading
// accompanies EventLoading.
type Event struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversationId"`
	Message        *Message  `json:"message,omitempty"`
	Loading        bool      `json:"loading"`
}
