package conversation

import "errors"

var (
	// ErrNotFound: no session with that id.
	ErrNotFound = errors.New("conversation: not found")
	// ErrBusy: a send is already in flight; the second one is refused
	// without touching the model.
	ErrBusy = errors.New("conversation: request already in flight")
	// ErrEmptyMessage: nothing to send, no text and no files.
	ErrEmptyMessage = errors.New("conversation: empty message")
	// ErrFormSuperseded: the submission targets a form that is no
	// longer the newest message.
	ErrFormSuperseded = errors.New("conversation: form superseded")
)
