package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/yourusername/friday/internal/commands"
	"github.com/yourusername/friday/internal/config"
	"github.com/yourusername/friday/internal/console"
	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/mode"
	"github.com/yourusername/friday/internal/renderer"
	"github.com/yourusername/friday/internal/voice"
)

const (
	ansiReset   = "\033[0m"
	ansiDim     = "\033[38;5;240m"
	ansiCyan    = "\033[1;38;5;51m"
	ansiRed     = "\033[1;38;5;203m"
	ansiGreen   = "\033[1;32m"
	ansiError   = "\033[38;5;9m"
	clearScreen = "\033[H\033[2J"
)

// autoCompleter provides tab completion for commands
type autoCompleter struct{}

func (a *autoCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])

	// Only commands are completed
	if !strings.HasPrefix(lineStr, commands.Marker) {
		return nil, 0
	}

	var suggestions [][]rune
	for _, cmd := range commands.Completions() {
		if strings.HasPrefix(cmd, lineStr) {
			suggestions = append(suggestions, []rune(cmd[len(lineStr):]))
		}
	}

	return suggestions, len(lineStr)
}

// Deps are the collaborators a UI session talks to
type Deps struct {
	Config   *config.Config
	Prompter console.Prompter
	Voice    *voice.Session
	Speaker  voice.Speaker
	Logger   zerolog.Logger
}

func promptFor(store *mode.Store) string {
	if store.Emergency() {
		return ansiRed + "F.R.I.D.A.Y. [EMERGENCY] > " + ansiReset
	}
	return ansiCyan + "F.R.I.D.A.Y. > " + ansiReset
}

func banner(w io.Writer) {
	fmt.Fprintln(w, ansiCyan+"F.R.I.D.A.Y."+ansiReset+" "+ansiDim+"AI Tactical Assistant"+ansiReset)
	fmt.Fprintln(w, ansiDim+"Type a message, a --command (try --help), 'call', 'hangup', 'copy', or 'q' to quit."+ansiReset)
	fmt.Fprintln(w)
}

// RunPrompt runs the line-oriented console until the user quits
func RunPrompt(ctx context.Context, deps Deps) error {
	historyFile := ""
	if dir, err := config.GetConfigDir(); err == nil {
		historyFile = filepath.Join(dir, "history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptFor(mode.NewStore()),
		HistoryFile:     historyFile,
		AutoComplete:    &autoCompleter{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := rl.Stdout()
	opts := []console.Option{
		console.WithLogger(deps.Logger),
		console.WithEffects(console.EffectFuncs{
			OnReload: func() {
				fmt.Fprint(out, clearScreen)
				banner(out)
			},
			OnClearConsole: func() { fmt.Fprint(out, clearScreen) },
		}),
	}
	if deps.Speaker != nil && deps.Config.UI.SpeakReplies {
		opts = append(opts, console.WithSpeaker(deps.Speaker))
	}
	c := console.New(mode.NewStore(), conversation.NewLog(), deps.Prompter, opts...)

	if deps.Voice != nil {
		deps.Voice.OnEvent(func(ev voice.Event, tr *voice.Transcript) {
			printVoiceEvent(out, ev, tr)
			if tr != nil {
				if res := c.Transcript(ctx, *tr); res.Command {
					printFeedback(out, res)
					rl.SetPrompt(promptFor(c.Store()))
					rl.Refresh()
				}
			}
		})
		defer deps.Voice.Close()
	}

	banner(out)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch input {
		case "q", "quit", "exit":
			return nil
		case "copy":
			copyLastReply(out, c.Log())
			continue
		case "call", "hangup":
			toggleCall(ctx, out, deps.Voice, input == "call")
			continue
		}

		res := c.Submit(ctx, input)
		if res.Command {
			printFeedback(out, res)
			if res.Transient {
				id := res.Feedback.ID
				time.AfterFunc(deps.Config.UI.ClearedTimeout, func() { c.ExpireEntry(id) })
			}
			rl.SetPrompt(promptFor(c.Store()))
			continue
		}

		// An interrupt while asking ends the session along with the signal context
		if err := askAndPrint(ctx, out, c, res.Prompt); errors.Is(err, context.Canceled) {
			return nil
		}
	}

	return nil
}

// askAndPrint sends a prompt and renders the reply
func askAndPrint(ctx context.Context, out io.Writer, c *console.Console, prompt string) error {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Thinking..."
	s.Writer = out
	s.Start()

	reply, err := c.Ask(ctx, prompt)
	if s.Active() {
		s.Stop()
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "%sError: %v%s\n\n", ansiError, err, ansiReset)
		}
		return err
	}

	fmt.Fprintln(out, renderer.RenderMarkdown(reply))
	fmt.Fprintln(out)
	return nil
}

func printFeedback(out io.Writer, res console.Outcome) {
	if res.Feedback.Text == "" {
		return
	}
	color := ansiGreen
	if !res.Result.Success {
		color = ansiError
	} else if res.Result.EmergencyColors != nil && *res.Result.EmergencyColors {
		color = ansiRed
	}
	fmt.Fprintf(out, "%s%s%s\n", color, res.Feedback.Display(), ansiReset)
}

func printVoiceEvent(out io.Writer, ev voice.Event, tr *voice.Transcript) {
	switch {
	case tr != nil:
		fmt.Fprintf(out, "%s[%s]%s %s\n", ansiDim, tr.Role, ansiReset, tr.Content)
	case ev.Type == voice.CallStart:
		fmt.Fprintln(out, ansiDim+"Listening..."+ansiReset)
	case ev.Type == voice.CallEnd:
		fmt.Fprintln(out, ansiDim+"Call ended."+ansiReset)
	case ev.Type == voice.ErrorType:
		fmt.Fprintf(out, "%sVoice error: %v%s\n", ansiError, ev.Err, ansiReset)
	}
}

func toggleCall(ctx context.Context, out io.Writer, s *voice.Session, start bool) {
	if s == nil {
		fmt.Fprintln(out, ansiError+"Voice agent is not configured."+ansiReset)
		return
	}

	var err error
	if start {
		fmt.Fprintln(out, ansiDim+"Connecting..."+ansiReset)
		err = s.Call(ctx)
	} else {
		err = s.Disconnect()
	}
	if err != nil {
		fmt.Fprintf(out, "%sVoice: %v%s\n", ansiError, err, ansiReset)
	}
}

func copyLastReply(out io.Writer, log *conversation.Log) {
	last, ok := log.Last(conversation.KindReply)
	if !ok {
		fmt.Fprintln(out, ansiDim+"Nothing to copy yet."+ansiReset)
		return
	}
	if err := clipboard.WriteAll(last.Text); err != nil {
		fmt.Fprintf(out, "%sCopy failed: %v%s\n", ansiError, err, ansiReset)
		return
	}
	fmt.Fprintln(out, ansiGreen+"✓ Copied to clipboard"+ansiReset)
}
