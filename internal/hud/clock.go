package hud

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/friday/internal/mode"
)

var ringGlyphs = []string{"◜", "◝", "◞", "◟"}

// Clock shows the time inside a rotating ring
type Clock struct {
	Now   time.Time
	Angle float64
	Pulse int
}

// NewClock creates a clock showing now
func NewClock(now time.Time) *Clock {
	return &Clock{Now: now}
}

// Rotate advances the ring by 0.2 degrees
func (c *Clock) Rotate() {
	c.Angle = math.Mod(c.Angle+0.2, 360)
}

// Beat advances the pulse counter
func (c *Clock) Beat() {
	c.Pulse = (c.Pulse + 1) % 100
}

// Opacity is the glow intensity between 0.6 and 1.0
func (c *Clock) Opacity() float64 {
	return 0.8 + math.Sin(float64(c.Pulse)*0.063)*0.2
}

func (c *Clock) Timers() []Timer {
	return []Timer{
		{ID: "clock.time", Every: time.Second, Fire: func(now time.Time) { c.Now = now }},
		{ID: "clock.rotate", Every: 50 * time.Millisecond, Fire: func(time.Time) { c.Rotate() }},
		{ID: "clock.pulse", Every: time.Second, Fire: func(time.Time) { c.Beat() }},
	}
}

func (c *Clock) View(p mode.Palette, emergency bool) string {
	glow := p.Primary
	if c.Opacity() < 0.8 {
		glow = p.GradientEnd
	}

	ring := ringGlyphs[int(c.Angle/90)%len(ringGlyphs)]
	timeStyle := lipgloss.NewStyle().Bold(true).Foreground(glow)
	dateStyle := lipgloss.NewStyle().Foreground(p.Light)
	ringStyle := lipgloss.NewStyle().Foreground(p.Glow)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", ringStyle.Render(ring), timeStyle.Render(c.Now.Format("15:04:05")), ringStyle.Render(ring))
	b.WriteString(dateStyle.Render(strings.ToUpper(c.Now.Format("Mon, Jan 2"))))

	return panel(p, emergency, "CLOCK", b.String())
}

// panel draws the titled box every widget sits in
func panel(p mode.Palette, emergency bool, title, body string) string {
	border := lipgloss.RoundedBorder()
	if emergency {
		border = lipgloss.DoubleBorder()
	}
	heading := lipgloss.NewStyle().Foreground(p.Light).Bold(true).Render(title)
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(p.Primary).
		Padding(0, 1).
		Render(heading + "\n" + body)
}
