package console

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yourusername/friday/internal/commands"
	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/mode"
	"github.com/yourusername/friday/internal/proxy"
	"github.com/yourusername/friday/internal/voice"
)

type fakePrompter struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakePrompter) Ask(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeSpeaker struct {
	said []string
	err  error
}

func (f *fakeSpeaker) Say(ctx context.Context, text string) error {
	f.said = append(f.said, text)
	return f.err
}

type recorder struct {
	reloads, clears int
}

func (r *recorder) Reload()       { r.reloads++ }
func (r *recorder) ClearConsole() { r.clears++ }

func newConsole(p Prompter, opts ...Option) *Console {
	return New(mode.NewStore(), conversation.NewLog(), p, opts...)
}

func TestSubmit_IgnoresBlankInput(t *testing.T) {
	c := newConsole(&fakePrompter{})
	for _, in := range []string{"", "   ", "\t\n"} {
		if out := c.Submit(context.Background(), in); !out.Ignored {
			t.Fatalf("expected %q to be ignored", in)
		}
	}
	if c.Log().Len() != 0 {
		t.Fatalf("expected empty log, got %d entries", c.Log().Len())
	}
}

func TestSubmit_PromptIsNotDispatched(t *testing.T) {
	p := &fakePrompter{reply: "  General Kenobi.  "}
	c := newConsole(p)

	out := c.Submit(context.Background(), "hello there")
	if out.Command {
		t.Fatalf("expected plain text not to be treated as a command")
	}
	if out.Prompt != "hello there" {
		t.Fatalf("expected prompt to pass through unmodified, got %q", out.Prompt)
	}

	reply, err := c.Ask(context.Background(), out.Prompt)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply != "General Kenobi." {
		t.Fatalf("expected trimmed reply, got %q", reply)
	}
	if len(p.prompts) != 1 || p.prompts[0] != "hello there" {
		t.Fatalf("expected proxy to receive the prompt verbatim, got %v", p.prompts)
	}

	last, ok := c.Log().Last(conversation.KindReply)
	if !ok || last.Text != "General Kenobi." {
		t.Fatalf("expected reply in log, got %+v", last)
	}
	if c.Store().Emergency() {
		t.Fatalf("expected prompt not to touch the mode")
	}
}

func TestSubmit_ClearScenario(t *testing.T) {
	rec := &recorder{}
	c := newConsole(&fakePrompter{}, WithEffects(rec))
	c.Log().AddPrompt("one")
	c.Log().AddReply("two")
	c.Submit(context.Background(), "--emergency")

	out := c.Submit(context.Background(), "--clear")
	if !out.Result.ClearChat {
		t.Fatalf("expected clearChat result")
	}
	if !out.Transient {
		t.Fatalf("expected the cleared confirmation to be transient")
	}

	entries := c.Log().Entries()
	if len(entries) != 1 || entries[0].Display() != "> Console cleared." {
		t.Fatalf("expected only the cleared confirmation, got %+v", entries)
	}
	if rec.clears != 1 {
		t.Fatalf("expected console clear effect, got %d", rec.clears)
	}
	if !c.Store().Emergency() {
		t.Fatalf("expected clearing the chat to keep emergency mode")
	}

	if !c.ExpireEntry(out.Feedback.ID) {
		t.Fatalf("expected transient entry to be removed")
	}
	if c.Log().Len() != 0 {
		t.Fatalf("expected empty log after expiry, got %d", c.Log().Len())
	}
}

func TestSubmit_ModeCommands(t *testing.T) {
	c := newConsole(&fakePrompter{})

	out := c.Submit(context.Background(), "  --ALARM ")
	if !c.Store().Emergency() {
		t.Fatalf("expected emergency mode")
	}
	if out.Feedback.Display() != "> Emergency Mode Activated." {
		t.Fatalf("unexpected feedback %q", out.Feedback.Display())
	}
	if out.Transient {
		t.Fatalf("expected mode feedback to stay")
	}

	c.Submit(context.Background(), "--.")
	if c.Store().Emergency() {
		t.Fatalf("expected normal mode")
	}
}

func TestSubmit_UnknownCommand(t *testing.T) {
	c := newConsole(&fakePrompter{})
	c.Store().Set(true)

	out := c.Submit(context.Background(), "--selfdestruct")
	if out.Result.Success {
		t.Fatalf("expected failure")
	}
	if out.Feedback.Text != "Unknown command: selfdestruct" {
		t.Fatalf("unexpected feedback %q", out.Feedback.Text)
	}
	if !c.Store().Emergency() {
		t.Fatalf("expected unknown command to leave the mode alone")
	}
}

func TestSubmit_Reload(t *testing.T) {
	rec := &recorder{}
	c := newConsole(&fakePrompter{}, WithEffects(rec))
	c.Submit(context.Background(), "--emergency")
	c.Log().AddReply("old")

	out := c.Submit(context.Background(), "--reset")
	if out.Result.Effect != commands.ReloadEffect {
		t.Fatalf("expected reload effect, got %s", out.Result.Effect)
	}
	if rec.reloads != 1 {
		t.Fatalf("expected reload effect to run once, got %d", rec.reloads)
	}
	if c.Store().Emergency() {
		t.Fatalf("expected reload to reset the mode")
	}
	entries := c.Log().Entries()
	if len(entries) != 1 || entries[0].Text != "Page reloaded." {
		t.Fatalf("expected only the reload confirmation, got %+v", entries)
	}
}

func TestToggle(t *testing.T) {
	c := newConsole(&fakePrompter{})
	c.Toggle(context.Background())
	if !c.Store().Emergency() {
		t.Fatalf("expected toggle to enter emergency mode")
	}
	out := c.Toggle(context.Background())
	if c.Store().Emergency() {
		t.Fatalf("expected toggle to leave emergency mode")
	}
	if out.Result.Message != commands.MsgEmergencyOff {
		t.Fatalf("unexpected message %q", out.Result.Message)
	}
}

func TestAsk_ProxyFailure(t *testing.T) {
	p := &fakePrompter{err: fmt.Errorf("%w: Internal Server Error", proxy.ErrProxyFailure)}
	s := &fakeSpeaker{}
	c := newConsole(p, WithSpeaker(s))

	_, err := c.Ask(context.Background(), "hello")
	if !errors.Is(err, proxy.ErrProxyFailure) {
		t.Fatalf("expected proxy failure, got %v", err)
	}
	if len(p.prompts) != 1 {
		t.Fatalf("expected no retry, got %d attempts", len(p.prompts))
	}

	entries := c.Log().Entries()
	if len(entries) != 1 || entries[0].Kind != conversation.KindError {
		t.Fatalf("expected a single error entry, got %+v", entries)
	}
	if len(s.said) != 0 {
		t.Fatalf("expected nothing to be spoken")
	}
}

func TestAsk_SpeaksReply(t *testing.T) {
	s := &fakeSpeaker{err: voice.ErrNotConnected}
	c := newConsole(&fakePrompter{reply: "Boss."}, WithSpeaker(s))

	if _, err := c.Ask(context.Background(), "hi"); err != nil {
		t.Fatalf("expected speaker errors not to fail the prompt, got %v", err)
	}
	if len(s.said) != 1 || s.said[0] != "Boss." {
		t.Fatalf("expected reply to be spoken, got %v", s.said)
	}
}

func TestTranscript(t *testing.T) {
	c := newConsole(&fakePrompter{})

	out := c.Transcript(context.Background(), voice.Transcript{Role: "user", Content: "--emergency"})
	if !out.Command || !c.Store().Emergency() {
		t.Fatalf("expected spoken command to run")
	}

	c.Transcript(context.Background(), voice.Transcript{Role: "assistant", Content: "--normal"})
	if !c.Store().Emergency() {
		t.Fatalf("expected assistant speech not to run commands")
	}

	last, ok := c.Log().Last(conversation.KindTranscript)
	if !ok || last.Role != "assistant" {
		t.Fatalf("expected assistant transcript in log, got %+v", last)
	}
}

func TestAsk_CancelledLeavesNoErrorEntry(t *testing.T) {
	p := &fakePrompter{err: fmt.Errorf("%w: %w", proxy.ErrProxyFailure, context.Canceled)}
	c := newConsole(p)

	_, err := c.Ask(context.Background(), "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := c.Log().Last(conversation.KindError); ok {
		t.Fatalf("expected no error entry for a cancelled request")
	}
}
