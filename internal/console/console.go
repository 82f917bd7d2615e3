// Package console routes user input to the command interpreter or the conversational proxy.
package console

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourusername/friday/internal/commands"
	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/mode"
	"github.com/yourusername/friday/internal/voice"
)

// MsgCommandFailed is shown when a command fails without saying why
const MsgCommandFailed = "Command failed."

// Prompter answers conversational prompts
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Effects performs the side effects commands ask for
type Effects interface {
	Reload()
	ClearConsole()
}

// EffectFuncs adapts optional functions to Effects
type EffectFuncs struct {
	OnReload       func()
	OnClearConsole func()
}

func (e EffectFuncs) Reload() {
	if e.OnReload != nil {
		e.OnReload()
	}
}

func (e EffectFuncs) ClearConsole() {
	if e.OnClearConsole != nil {
		e.OnClearConsole()
	}
}

// Outcome describes what Submit did with one line of input
type Outcome struct {
	Ignored bool
	Command bool
	Result  commands.Result

	// Feedback is the entry added for a command
	Feedback conversation.Entry
	// Transient is set when Feedback must be expired after the cleared timeout
	Transient bool

	// Prompt is the text to send to Ask when the input was not a command
	Prompt string
}

// Console is the input path of one UI session
type Console struct {
	store    *mode.Store
	log      *conversation.Log
	prompter Prompter
	speaker  voice.Speaker
	effects  Effects
	logger   zerolog.Logger
}

// Option configures a Console
type Option func(*Console)

// WithSpeaker announces replies through s
func WithSpeaker(s voice.Speaker) Option {
	return func(c *Console) { c.speaker = s }
}

// WithEffects routes reload and clear-console side effects to e
func WithEffects(e Effects) Option {
	return func(c *Console) { c.effects = e }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// New creates a Console over the session's mode store and log
func New(store *mode.Store, log *conversation.Log, prompter Prompter, opts ...Option) *Console {
	c := &Console{
		store:    store,
		log:      log,
		prompter: prompter,
		effects:  EffectFuncs{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the session's mode store
func (c *Console) Store() *mode.Store {
	return c.store
}

// Log returns the session's conversation log
func (c *Console) Log() *conversation.Log {
	return c.log
}

// Submit classifies input and runs it if it is a command.
// Prompts are recorded and returned for the caller to pass to Ask.
func (c *Console) Submit(ctx context.Context, input string) Outcome {
	text := strings.TrimSpace(input)
	if text == "" {
		return Outcome{Ignored: true}
	}

	if !commands.IsCommand(text) {
		c.log.AddPrompt(text)
		return Outcome{Prompt: text}
	}

	res := commands.Handle(text)
	c.logger.Info().
		Str("input", text).
		Bool("success", res.Success).
		Str("effect", res.Effect.String()).
		Msg("command")

	changed := c.store.Apply(res)
	if changed {
		c.logger.Info().Str("mode", c.store.State().String()).Msg("mode changed")
	}

	if res.ClearChat {
		c.log.Clear()
	}

	switch res.Effect {
	case commands.ReloadEffect:
		c.Reload()
	case commands.ClearConsoleEffect:
		c.effects.ClearConsole()
	}

	msg := res.Message
	if msg == "" && !res.Success {
		msg = MsgCommandFailed
	}

	out := Outcome{Command: true, Result: res}
	if msg != "" {
		out.Feedback = c.log.AddCommand(msg)
		out.Transient = res.ClearChat
	}
	return out
}

// Ask forwards prompt to the proxy and records the reply or the failure.
// There is no retry.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	reply, err := c.prompter.Ask(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		c.logger.Error().Err(err).Msg("prompt failed")
		c.log.AddError(err.Error())
		return "", err
	}

	reply = strings.TrimSpace(reply)
	c.log.AddReply(reply)

	if c.speaker != nil && reply != "" {
		if err := c.speaker.Say(ctx, reply); err != nil && !errors.Is(err, voice.ErrNotConnected) {
			c.logger.Warn().Err(err).Msg("failed to speak reply")
		}
	}

	return reply, nil
}

// Transcript records a final voice transcript.
// A user transcript that is a command is run like typed input.
func (c *Console) Transcript(ctx context.Context, t voice.Transcript) Outcome {
	if t.Role == conversation.RoleUser && commands.IsCommand(t.Content) {
		return c.Submit(ctx, t.Content)
	}
	c.log.AddTranscript(t.Role, t.Content)
	return Outcome{Ignored: true}
}

// Toggle switches between emergency and normal mode
func (c *Console) Toggle(ctx context.Context) Outcome {
	if c.store.Emergency() {
		return c.Submit(ctx, commands.Marker+"normal")
	}
	return c.Submit(ctx, commands.Marker+"emergency")
}

// Reload discards the session state, as a fresh start would
func (c *Console) Reload() {
	c.store.Reset()
	c.log.Clear()
	c.effects.Reload()
}

// ExpireEntry removes a transient entry
func (c *Console) ExpireEntry(id uuid.UUID) bool {
	return c.log.Remove(id)
}
