package voice

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Status is the lifecycle state of a call
type Status int

const (
	Inactive Status = iota
	Connecting
	Active
	Finished
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Finished:
		return "finished"
	}
	return "inactive"
}

// Label is the caption shown under the assistant name
func (s Status) Label() string {
	switch s {
	case Active:
		return "Listening..."
	case Connecting:
		return "Connecting..."
	}
	return "Standby"
}

// Session tracks one UI's voice call and the transcripts it produced
type Session struct {
	agent       Agent
	assistantID string
	log         zerolog.Logger

	mu       sync.RWMutex
	status   Status
	speaking bool
	messages []Transcript
	onEvent  func(Event, *Transcript)
	cancel   context.CancelFunc
	done     chan struct{}
	call     int
}

// NewSession creates an inactive session
func NewSession(agent Agent, assistantID string, log zerolog.Logger) *Session {
	return &Session{
		agent:       agent,
		assistantID: assistantID,
		log:         log,
	}
}

// OnEvent registers fn to observe every handled event.
// The transcript is non-nil when the event produced a final transcript.
func (s *Session) OnEvent(fn func(Event, *Transcript)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = fn
}

// Call starts a call and pumps its events until the stream ends
func (s *Session) Call(ctx context.Context) error {
	s.mu.Lock()
	if s.status == Connecting || s.status == Active {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.status = Connecting
	s.call++
	call := s.call
	prevCancel, prevDone := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	// A finished call's pump may still be draining
	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	ctx, cancel := context.WithCancel(ctx)
	events, err := s.agent.Start(ctx, s.assistantID)
	if err != nil {
		cancel()
		s.setStatus(Finished)
		s.log.Error().Err(err).Msg("voice call failed to start")
		return fmt.Errorf("start call: %w", err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.pump(ctx, call, events, done)
	return nil
}

func (s *Session) pump(ctx context.Context, call int, events <-chan Event, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				s.mu.Lock()
				if s.call == call {
					s.status = Finished
					s.speaking = false
				}
				s.mu.Unlock()
				return
			}
			s.Handle(ev)
		}
	}
}

// Handle applies an event to the session
func (s *Session) Handle(ev Event) {
	var saved *Transcript

	s.mu.Lock()
	switch ev.Type {
	case CallStart:
		s.status = Active
	case CallEnd:
		s.status = Finished
		s.speaking = false
	case SpeechStart:
		s.speaking = true
	case SpeechEnd:
		s.speaking = false
	case MessageType:
		if ev.Message != nil && ev.Message.IsFinalTranscript() {
			t := Transcript{Role: ev.Message.Role, Content: ev.Message.Transcript}
			s.messages = append(s.messages, t)
			saved = &t
		}
	case ErrorType:
		s.status = Finished
		s.speaking = false
	}
	fn := s.onEvent
	s.mu.Unlock()

	if ev.Type == ErrorType {
		s.log.Error().Err(ev.Err).Msg("voice agent error")
	} else {
		s.log.Debug().Str("event", string(ev.Type)).Msg("voice event")
	}

	if fn != nil {
		fn(ev, saved)
	}
}

// Disconnect ends the current call
func (s *Session) Disconnect() error {
	s.mu.Lock()
	if s.status != Connecting && s.status != Active {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.status = Finished
	s.speaking = false
	s.mu.Unlock()

	if err := s.agent.Stop(); err != nil {
		return fmt.Errorf("stop call: %w", err)
	}
	return nil
}

// Close stops any running call and waits for the event pump to exit
func (s *Session) Close() error {
	var err error
	if s.Status() == Connecting || s.Status() == Active {
		err = s.Disconnect()
	}

	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return err
}

// Status returns the call status
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// Speaking reports whether the assistant is talking
func (s *Session) Speaking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speaking
}

// Messages returns the saved transcripts in order
func (s *Session) Messages() []Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transcript, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastMessage returns the newest transcript text, or "" when there is none
func (s *Session) LastMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].Content
}
