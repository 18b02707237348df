package transcribe

import (
	"errors"
	"sync"
)

// State is the capture control's position: idle, recording, or
// processing. Gates on different conversations are independent.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// ErrCaptureBusy is returned for transitions the machine does not
// allow, e.g. starting while a recording or transcription is underway.
var ErrCaptureBusy = errors.New("transcribe: capture busy")

// Gate is the capture state machine. The zero value is an idle gate.
type Gate struct {
	mu    sync.Mutex
	state State
}

func (g *Gate) current() State {
	if g.state == "" {
		return StateIdle
	}
	return g.state
}

// State reports the current position.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current()
}

// Start moves idle → recording. Any other position is rejected.
func (g *Gate) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current() != StateIdle {
		return ErrCaptureBusy
	}
	g.state = StateRecording
	return nil
}

// Cancel discards a recording, recording → idle. Cancelling an idle
// gate is a no-op; a processing run cannot be cancelled.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.current() {
	case StateProcessing:
		return ErrCaptureBusy
	default:
		g.state = StateIdle
		return nil
	}
}

// Process moves recording → processing, claiming the gate for the
// transcription call.
func (g *Gate) Process() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current() != StateRecording {
		return ErrCaptureBusy
	}
	g.state = StateProcessing
	return nil
}

// Finish releases the gate back to idle unconditionally. It runs on
// every exit path, success or failure, so the control never sticks.
func (g *Gate) Finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateIdle
}
