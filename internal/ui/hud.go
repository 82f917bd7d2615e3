package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourusername/friday/internal/console"
	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/hud"
	"github.com/yourusername/friday/internal/mode"
	"github.com/yourusername/friday/internal/voice"
)

// CompactWidth is the terminal width below which the compact layout is used
const CompactWidth = 100

type (
	tickMsg struct {
		gen int
		id  string
		at  time.Time
	}
	splashDoneMsg   struct{ gen int }
	splashDotsMsg   struct{ gen int }
	highlightOffMsg struct{ gen int }
	expireMsg       struct{ id uuid.UUID }
	feedbackOffMsg  struct{ seq int }
	replyMsg        struct {
		reply string
		err   error
	}
	voiceMsg struct {
		ev voice.Event
		tr *voice.Transcript
	}
	callMsg struct{ err error }
)

// hudModel is the bubbletea model of the heads-up display
type hudModel struct {
	ctx     context.Context
	deps    Deps
	console *console.Console
	logger  zerolog.Logger
	voiceCh chan voiceMsg

	rand   *rand.Rand
	clock  *hud.Clock
	radar  *hud.Radar
	power  *hud.Power
	grid   *hud.StatusGrid
	splash *hud.Splash
	timers map[string]hud.Timer
	gen    int

	showSplash bool
	dots       int
	reloading  bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool

	width  int
	height int

	feedback    string
	feedbackSeq int
	status      string
}

func newHUDModel(ctx context.Context, deps Deps) *hudModel {
	ti := textinput.New()
	ti.Placeholder = "Type message or command..."
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &hudModel{
		ctx:      ctx,
		deps:     deps,
		logger:   deps.Logger,
		voiceCh:  make(chan voiceMsg, 32),
		input:    ti,
		viewport: viewport.New(60, 10),
		spinner:  sp,
		width:    CompactWidth,
		height:   40,
	}

	opts := []console.Option{
		console.WithLogger(deps.Logger),
		console.WithEffects(console.EffectFuncs{
			OnReload:       func() { m.reloading = true },
			OnClearConsole: func() { m.viewport.GotoTop() },
		}),
	}
	if deps.Speaker != nil && deps.Config.UI.SpeakReplies {
		opts = append(opts, console.WithSpeaker(deps.Speaker))
	}
	m.console = console.New(mode.NewStore(), conversation.NewLog(), deps.Prompter, opts...)

	if deps.Voice != nil {
		deps.Voice.OnEvent(func(ev voice.Event, tr *voice.Transcript) {
			select {
			case m.voiceCh <- voiceMsg{ev: ev, tr: tr}:
			case <-ctx.Done():
			}
		})
	}

	m.build(time.Now())
	return m
}

// build creates fresh widgets and starts a new timer generation
func (m *hudModel) build(now time.Time) {
	m.gen++
	m.rand = hud.NewRand(m.deps.Config.UI.Seed)
	m.clock = hud.NewClock(now)
	m.radar = hud.NewRadar(m.rand)
	m.power = hud.NewPower(m.rand)
	m.grid = hud.NewStatusGrid(m.rand)
	m.splash = hud.NewSplash(m.deps.Config.UI.Splash, now)
	m.showSplash = true
	m.dots = 0

	m.timers = map[string]hud.Timer{}
	for _, w := range m.widgets() {
		for _, t := range w.Timers() {
			m.timers[t.ID] = t
		}
	}
}

func (m *hudModel) widgets() []hud.Widget {
	return []hud.Widget{m.clock, m.radar, m.power, m.grid}
}

// start schedules every timer of the current generation
func (m *hudModel) start() tea.Cmd {
	gen := m.gen
	cmds := make([]tea.Cmd, 0, len(m.timers)+2)
	for _, t := range m.timers {
		cmds = append(cmds, tick(gen, t))
	}
	cmds = append(cmds,
		tea.Tick(m.splash.Duration, func(time.Time) tea.Msg { return splashDoneMsg{gen: gen} }),
		tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg { return splashDotsMsg{gen: gen} }),
	)
	return tea.Batch(cmds...)
}

func tick(gen int, t hud.Timer) tea.Cmd {
	return tea.Tick(t.Every, func(at time.Time) tea.Msg {
		return tickMsg{gen: gen, id: t.ID, at: at}
	})
}

func (m *hudModel) waitForVoice() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.voiceCh:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *hudModel) Init() tea.Cmd {
	return tea.Batch(m.start(), textinput.Blink, m.waitForVoice())
}

func (m *hudModel) askCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.console.Ask(m.ctx, prompt)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *hudModel) callCmd() tea.Cmd {
	s := m.deps.Voice
	return func() tea.Msg {
		return callMsg{err: s.Call(m.ctx)}
	}
}

func (m *hudModel) compact() bool {
	return m.width < CompactWidth
}

// RunHUD runs the heads-up display until the user quits
func RunHUD(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newHUDModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	_, err := p.Run()
	if deps.Voice != nil {
		if cerr := deps.Voice.Close(); cerr != nil {
			deps.Logger.Warn().Err(cerr).Msg("closing voice session")
		}
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("hud: %w", err)
	}
	return nil
}
