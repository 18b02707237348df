package conversation

import (
	"sync"

	"contextify/internal/llm"
)

// TurnLog is the append-only model-facing history. Entries arrive only
// in user/model pairs: a failed call appends nothing, so the log can
// never hold a half-pair.
type TurnLog struct {
	mu    sync.RWMutex
	turns []llm.Turn
}

// Append adds the user turn and the model turn as one atomic step.
func (l *TurnLog) Append(user, model llm.Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, user, model)
}

// Snapshot returns a copy of the full ordered sequence, unmodified, for
// use as the history of the next call.
func (l *TurnLog) Snapshot() []llm.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]llm.Turn(nil), l.turns...)
}

// Len reports the number of entries.
func (l *TurnLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Reset clears the log to empty.
func (l *TurnLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
}
