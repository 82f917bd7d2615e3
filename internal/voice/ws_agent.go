package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Frame is the JSON envelope exchanged with the voice relay
type Frame struct {
	Type        string   `json:"type"`
	AssistantID string   `json:"assistantId,omitempty"`
	Text        string   `json:"text,omitempty"`
	Message     *Message `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Outgoing frame types
const (
	frameStart = "start"
	frameStop  = "stop"
	frameSay   = "say"
)

// WSAgent is an Agent backed by a WebSocket voice relay
type WSAgent struct {
	url    string
	dialer *websocket.Dialer
	log    zerolog.Logger

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    *websocket.Conn
	stopped chan struct{}
	reading chan struct{}
}

// NewWSAgent creates an agent for the relay at url
func NewWSAgent(url string, log zerolog.Logger) *WSAgent {
	return &WSAgent{
		url:    url,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:    log.With().Str("component", "voice-relay").Logger(),
	}
}

// Start dials the relay and asks it to start a call with the assistant
func (a *WSAgent) Start(ctx context.Context, assistantID string) (<-chan Event, error) {
	a.mu.Lock()
	if a.conn != nil {
		a.mu.Unlock()
		return nil, ErrSessionActive
	}
	a.mu.Unlock()

	conn, _, err := a.dialer.DialContext(ctx, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial voice relay: %w", err)
	}

	if err := conn.WriteJSON(Frame{Type: frameStart, AssistantID: assistantID}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write start frame: %w", err)
	}

	events := make(chan Event, 16)
	stopped := make(chan struct{})
	reading := make(chan struct{})

	a.mu.Lock()
	a.conn = conn
	a.stopped = stopped
	a.reading = reading
	a.mu.Unlock()

	go a.readLoop(ctx, conn, events, stopped, reading)

	a.log.Info().Str("url", a.url).Msg("voice call requested")
	return events, nil
}

func (a *WSAgent) readLoop(ctx context.Context, conn *websocket.Conn, events chan<- Event, stopped, reading chan struct{}) {
	defer close(reading)
	defer close(events)

	finished := make(chan struct{})
	defer close(finished)

	// Unblock ReadJSON when the caller goes away
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stopped:
		case <-finished:
		}
	}()

	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-stopped:
			case <-ctx.Done():
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					a.emit(ctx, events, stopped, Event{Type: ErrorType, Err: fmt.Errorf("read voice frame: %w", err)})
				}
				a.emit(ctx, events, stopped, Event{Type: CallEnd})
			}
			a.release(conn)
			return
		}

		ev, ok := toEvent(f)
		if !ok {
			a.log.Debug().Str("type", f.Type).Msg("ignoring unknown voice frame")
			continue
		}
		if !a.emit(ctx, events, stopped, ev) {
			a.release(conn)
			return
		}
		if ev.Type == CallEnd {
			a.release(conn)
			return
		}
	}
}

func (a *WSAgent) emit(ctx context.Context, events chan<- Event, stopped <-chan struct{}, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-stopped:
		return false
	case <-ctx.Done():
		return false
	}
}

func (a *WSAgent) release(conn *websocket.Conn) {
	a.mu.Lock()
	if a.conn == conn {
		a.conn = nil
	}
	a.mu.Unlock()
	conn.Close()
}

func toEvent(f Frame) (Event, bool) {
	switch EventType(f.Type) {
	case CallStart, CallEnd, SpeechStart, SpeechEnd:
		return Event{Type: EventType(f.Type)}, true
	case MessageType:
		return Event{Type: MessageType, Message: f.Message}, true
	case ErrorType:
		msg := f.Error
		if msg == "" {
			msg = "unknown voice error"
		}
		return Event{Type: ErrorType, Err: errors.New(msg)}, true
	}
	return Event{}, false
}

// Stop asks the relay to end the call and waits for the event stream to close
func (a *WSAgent) Stop() error {
	a.mu.Lock()
	conn, stopped, reading := a.conn, a.stopped, a.reading
	a.conn = nil
	a.mu.Unlock()

	if conn == nil {
		if reading != nil {
			<-reading
		}
		return nil
	}

	a.writeMu.Lock()
	err := conn.WriteJSON(Frame{Type: frameStop})
	a.writeMu.Unlock()

	close(stopped)
	conn.Close()
	<-reading

	if err != nil {
		return fmt.Errorf("write stop frame: %w", err)
	}
	return nil
}

// Say asks the relay to speak text on the active call
func (a *WSAgent) Say(ctx context.Context, text string) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
		defer conn.SetWriteDeadline(time.Time{})
	}
	if err := conn.WriteJSON(Frame{Type: frameSay, Text: text}); err != nil {
		return fmt.Errorf("write say frame: %w", err)
	}
	return nil
}
