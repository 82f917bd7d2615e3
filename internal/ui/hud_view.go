package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/friday/internal/conversation"
	"github.com/yourusername/friday/internal/mode"
	"github.com/yourusername/friday/internal/renderer"
)

const sidebarWidth = 44

func (m *hudModel) palette() mode.Palette {
	return m.console.Store().Palette()
}

func (m *hudModel) emergency() bool {
	return m.console.Store().Emergency()
}

func (m *hudModel) View() string {
	p := m.palette()
	if m.showSplash {
		return m.splash.View(p, m.width, m.height, m.dots)
	}

	header := m.renderHeader(p)
	chat := m.renderChat(p)

	if m.compact() {
		parts := []string{header, chat, m.renderCommandBar(p)}
		if m.deps.Voice != nil {
			parts = append(parts, m.renderVoicePanel(p))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	sidebar := m.renderSidebar(p)
	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, " ", sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *hudModel) renderHeader(p mode.Palette) string {
	title := lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("F.R.I.D.A.Y.")
	sub := lipgloss.NewStyle().Foreground(p.Light).Render("AI Tactical Assistant")

	state := "SYSTEMS NOMINAL"
	stateColor := p.Light
	if m.emergency() {
		state = "EMERGENCY"
		stateColor = p.Critical
	}
	badge := lipgloss.NewStyle().Foreground(stateColor).Bold(true).Render("[" + state + "]")

	voiceLabel := "Voice: off"
	if m.deps.Voice != nil {
		voiceLabel = "Voice: " + m.deps.Voice.Status().Label()
		if m.deps.Voice.Speaking() {
			voiceLabel += " (speaking)"
		}
	}
	vl := lipgloss.NewStyle().Foreground(p.Light).Render(voiceLabel)

	line := fmt.Sprintf("%s  %s  %s  %s", title, sub, badge, vl)
	if m.compact() {
		line = fmt.Sprintf("%s %s  %s", title, badge, vl)
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Muted).
		Width(max(m.width-2, 20)).
		Render(line)
}

func (m *hudModel) renderChat(p mode.Palette) string {
	border := lipgloss.RoundedBorder()
	if m.emergency() {
		border = lipgloss.DoubleBorder()
	}

	input := m.input.View()
	if m.waiting {
		input = m.spinner.View() + " Processing..."
	}

	status := ""
	if m.status != "" {
		status = "\n" + lipgloss.NewStyle().Foreground(p.Warning).Render(m.status)
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(p.Primary).
		Render(m.viewport.View() + "\n" + input + status)
}

func (m *hudModel) renderSidebar(p mode.Palette) string {
	emergency := m.emergency()
	panels := []string{
		m.clock.View(p, emergency),
		m.power.View(p, emergency),
		m.radar.View(p, emergency),
		m.grid.View(p, emergency),
	}
	if m.deps.Voice != nil {
		panels = append(panels, m.renderVoicePanel(p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

// renderVoicePanel shows the call status and the newest transcript
func (m *hudModel) renderVoicePanel(p mode.Palette) string {
	s := m.deps.Voice
	heading := lipgloss.NewStyle().Foreground(p.Light).Bold(true).Render("AGENT")
	status := lipgloss.NewStyle().Foreground(p.Primary).Render(s.Status().Label())

	last := s.LastMessage()
	if last == "" {
		last = "No transcript yet."
	}
	if n := len(s.Messages()); n > 0 {
		status += lipgloss.NewStyle().Foreground(p.Muted).Render(fmt.Sprintf("  %d lines", n))
	}
	text := lipgloss.NewStyle().Foreground(p.Light).Width(sidebarWidth - 4).Render(last)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1).
		Render(heading + "\n" + status + "\n" + text)
}

// renderCommandBar shows the latest command feedback in the compact layout
func (m *hudModel) renderCommandBar(p mode.Palette) string {
	text := m.feedback
	if text == "" {
		text = "Type --help for commands"
	}
	return lipgloss.NewStyle().Foreground(p.Light).Render(conversation.CommandMarker + text)
}

func (m *hudModel) renderLog() string {
	p := m.palette()
	width := max(m.viewport.Width-2, 20)

	user := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	cmd := lipgloss.NewStyle().Foreground(p.Light).Italic(true)
	errStyle := lipgloss.NewStyle().Foreground(p.Critical)
	dim := lipgloss.NewStyle().Foreground(p.Muted)

	entries := m.console.Log().Entries()
	if len(entries) == 0 {
		return dim.Render("Standing by.")
	}

	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case conversation.KindPrompt:
			b.WriteString(user.Render("You: ") + e.Text + "\n")
		case conversation.KindReply:
			b.WriteString(user.Render("F.R.I.D.A.Y.:") + "\n")
			b.WriteString(strings.TrimRight(renderer.RenderWidth(e.Text, width), "\n") + "\n")
		case conversation.KindCommand:
			b.WriteString(cmd.Render(e.Display()) + "\n")
		case conversation.KindError:
			b.WriteString(errStyle.Render("Error: "+e.Text) + "\n")
		case conversation.KindTranscript:
			who := "F.R.I.D.A.Y."
			if e.Role == conversation.RoleUser {
				who = "You"
			}
			b.WriteString(dim.Render("["+who+" · voice] ") + e.Text + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
