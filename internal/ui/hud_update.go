package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/friday/internal/console"
	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/hud"
	"github.com/yourusername/friday/internal/voice"
)

func (m *hudModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		t, ok := m.timers[msg.id]
		if !ok {
			return m, nil
		}
		t.Fire(msg.at)
		cmds = append(cmds, tick(m.gen, t))
		if msg.id == "status.highlight" && m.grid.Highlighted() != "" {
			gen := m.gen
			cmds = append(cmds, tea.Tick(hud.HighlightDuration, func(time.Time) tea.Msg {
				return highlightOffMsg{gen: gen}
			}))
		}
		return m, tea.Batch(cmds...)

	case highlightOffMsg:
		if msg.gen == m.gen {
			m.grid.ClearHighlight()
		}
		return m, nil

	case splashDoneMsg:
		if msg.gen == m.gen {
			m.showSplash = false
		}
		return m, nil

	case splashDotsMsg:
		if msg.gen != m.gen || !m.showSplash {
			return m, nil
		}
		m.dots++
		gen := m.gen
		return m, tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg { return splashDotsMsg{gen: gen} })

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil

	case expireMsg:
		if m.console.ExpireEntry(msg.id) {
			m.refresh()
		}
		return m, nil

	case feedbackOffMsg:
		if msg.seq == m.feedbackSeq {
			m.feedback = ""
		}
		return m, nil

	case voiceMsg:
		cmds = append(cmds, m.waitForVoice())
		if cmd := m.handleVoice(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.refresh()
		return m, tea.Batch(cmds...)

	case callMsg:
		if msg.err != nil {
			m.status = "Voice: " + msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	// Keys belong to the input; the viewport only scrolls on pgup/pgdown and the mouse
	if _, ok := msg.(tea.KeyMsg); !ok {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *hudModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true

	case "enter":
		if m.showSplash {
			m.showSplash = false
			return nil, true
		}
		if m.waiting {
			return nil, true
		}
		input := m.input.Value()
		m.input.Reset()
		return m.submit(input), true

	case "ctrl+e":
		return m.apply(m.console.Toggle(m.ctx)), true

	case "ctrl+r":
		return m.submit("--reload"), true

	case "ctrl+l":
		return m.submit("--clear"), true

	case "ctrl+v":
		return m.toggleCall(), true

	case "ctrl+y":
		m.copyLastReply()
		return nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd, true
	}
	return nil, false
}

// submit runs one line of input through the console
func (m *hudModel) submit(input string) tea.Cmd {
	out := m.console.Submit(m.ctx, input)
	if out.Ignored {
		return nil
	}
	if !out.Command {
		m.waiting = true
		m.status = ""
		m.refresh()
		return tea.Batch(m.askCmd(out.Prompt), m.spinner.Tick)
	}
	return m.apply(out)
}

// apply reacts to a command outcome
func (m *hudModel) apply(out console.Outcome) tea.Cmd {
	var cmds []tea.Cmd

	if m.reloading {
		m.reloading = false
		m.waiting = false
		m.status = ""
		m.build(time.Now())
		cmds = append(cmds, m.start())
	}

	if out.Transient {
		id := out.Feedback.ID
		cmds = append(cmds, tea.Tick(m.deps.Config.UI.ClearedTimeout, func(time.Time) tea.Msg {
			return expireMsg{id: id}
		}))
	}

	if out.Feedback.Text != "" {
		m.feedbackSeq++
		m.feedback = out.Feedback.Text
		seq := m.feedbackSeq
		cmds = append(cmds, tea.Tick(m.deps.Config.UI.FeedbackTimeout, func(time.Time) tea.Msg {
			return feedbackOffMsg{seq: seq}
		}))
	}

	m.resize()
	m.refresh()
	return tea.Batch(cmds...)
}

func (m *hudModel) handleVoice(msg voiceMsg) tea.Cmd {
	switch msg.ev.Type {
	case voice.ErrorType:
		m.logger.Warn().Err(msg.ev.Err).Msg("voice error")
		if msg.ev.Err != nil {
			m.status = "Voice: " + msg.ev.Err.Error()
		}
	case voice.CallStart:
		m.status = ""
	}

	if msg.tr == nil {
		return nil
	}
	out := m.console.Transcript(m.ctx, *msg.tr)
	if out.Command {
		return m.apply(out)
	}
	return nil
}

func (m *hudModel) toggleCall() tea.Cmd {
	s := m.deps.Voice
	if s == nil {
		m.status = "Voice: no assistant configured"
		return nil
	}
	switch s.Status() {
	case voice.Active, voice.Connecting:
		if err := s.Disconnect(); err != nil {
			m.status = "Voice: " + err.Error()
		}
		return nil
	}
	return m.callCmd()
}

func (m *hudModel) copyLastReply() {
	last, ok := m.console.Log().Last(conversation.KindReply)
	if !ok {
		m.status = "Nothing to copy"
		return
	}
	if err := clipboard.WriteAll(last.Text); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied last reply"
}

func (m *hudModel) resize() {
	inputHeight := 3
	header := 3
	if m.compact() {
		header = 2
	}

	width := m.width - 4
	if !m.compact() {
		width = m.width - sidebarWidth - 6
	}
	width = max(width, 20)

	m.viewport.Width = width
	m.viewport.Height = max(m.height-header-inputHeight-2, 3)
	m.input.Width = max(width-4, 10)
}

func (m *hudModel) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}
