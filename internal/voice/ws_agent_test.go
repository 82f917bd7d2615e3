package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relay starts a WebSocket server running script for each connection
func relay(t *testing.T, script func(conn *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		script(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("event stream did not close, got %d events", len(out))
		}
	}
}

func TestWSAgent_StreamsEvents(t *testing.T) {
	url := relay(t, func(conn *websocket.Conn) {
		var start Frame
		if err := conn.ReadJSON(&start); err != nil {
			return
		}
		if start.Type != "start" || start.AssistantID != "assistant-7" {
			conn.WriteJSON(Frame{Type: "error", Error: "bad start frame"})
			return
		}
		conn.WriteJSON(Frame{Type: "call-start"})
		conn.WriteJSON(Frame{Type: "volume-level"})
		conn.WriteJSON(Frame{Type: "message", Message: &Message{Type: "transcript", TranscriptType: "final", Role: "user", Transcript: "hello"}})
		conn.WriteJSON(Frame{Type: "call-end"})
	})

	agent := NewWSAgent(url, zerolog.Nop())
	events, err := agent.Start(context.Background(), "assistant-7")
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 3)
	assert.Equal(t, CallStart, got[0].Type)
	assert.Equal(t, MessageType, got[1].Type)
	assert.Equal(t, "hello", got[1].Message.Transcript)
	assert.Equal(t, CallEnd, got[2].Type)
}

func TestWSAgent_SayAndStop(t *testing.T) {
	said := make(chan Frame, 4)
	url := relay(t, func(conn *websocket.Conn) {
		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			said <- f
			if f.Type == "stop" {
				return
			}
		}
	})

	agent := NewWSAgent(url, zerolog.Nop())
	assert.ErrorIs(t, agent.Say(context.Background(), "too early"), ErrNotConnected)

	events, err := agent.Start(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, agent.Say(ctx, "At your service."))
	require.NoError(t, agent.Stop())

	collect(t, events)

	var frames []Frame
	for len(frames) < 3 {
		select {
		case f := <-said:
			frames = append(frames, f)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected 3 frames, got %v", frames)
		}
	}
	assert.Equal(t, "start", frames[0].Type)
	assert.Equal(t, Frame{Type: "say", Text: "At your service."}, frames[1])
	assert.Equal(t, "stop", frames[2].Type)

	assert.NoError(t, agent.Stop())
}

func TestWSAgent_RelayErrorFrame(t *testing.T) {
	url := relay(t, func(conn *websocket.Conn) {
		var start Frame
		conn.ReadJSON(&start)
		conn.WriteJSON(Frame{Type: "error", Error: "assistant not found"})
		conn.WriteJSON(Frame{Type: "call-end"})
	})

	events, err := NewWSAgent(url, zerolog.Nop()).Start(context.Background(), "missing")
	require.NoError(t, err)

	got := collect(t, events)
	require.NotEmpty(t, got)
	assert.Equal(t, ErrorType, got[0].Type)
	assert.EqualError(t, got[0].Err, "assistant not found")
}

func TestWSAgent_DialFailure(t *testing.T) {
	_, err := NewWSAgent("ws://127.0.0.1:1/voice", zerolog.Nop()).Start(context.Background(), "a")
	assert.Error(t, err)
}

func TestWSAgent_DroppedConnectionEndsCall(t *testing.T) {
	url := relay(t, func(conn *websocket.Conn) {
		var start Frame
		conn.ReadJSON(&start)
		conn.WriteJSON(Frame{Type: "call-start"})
	})

	events, err := NewWSAgent(url, zerolog.Nop()).Start(context.Background(), "a")
	require.NoError(t, err)

	got := collect(t, events)
	require.NotEmpty(t, got)
	assert.Equal(t, CallStart, got[0].Type)
	assert.Equal(t, CallEnd, got[len(got)-1].Type)
}
