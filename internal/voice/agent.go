package voice

import (
	"context"
	"errors"
)

var (
	// ErrSessionActive is returned when a call is started while another is running
	ErrSessionActive = errors.New("voice session already active")
	// ErrNotConnected is returned when no call is running
	ErrNotConnected = errors.New("voice session not connected")
)

// Agent starts and stops real-time voice calls.
// Start returns a fresh event stream per call; it is closed when the call ends or Stop is called.
type Agent interface {
	Start(ctx context.Context, assistantID string) (<-chan Event, error)
	Stop() error
}

// Speaker announces text through the voice channel
type Speaker interface {
	Say(ctx context.Context, text string) error
}
