package hud

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/friday/internal/mode"
)

// SplashDuration is how long the boot screen stays up by default
const SplashDuration = 3500 * time.Millisecond

// SplashLines are shown while the HUD boots
var SplashLines = []string{
	"STARK INDUSTRIES",
	"INITIALIZING F.R.I.D.A.Y.",
	"SYSTEMS BOOTING",
}

// SplashFooter is the credit line under the boot screen
const SplashFooter = "F.R.I.D.A.Y INTERFACE © STARK INDUSTRIES"

// Splash is the boot screen
type Splash struct {
	Duration time.Duration
	started  time.Time
}

// NewSplash starts a splash screen at now
func NewSplash(d time.Duration, now time.Time) *Splash {
	if d <= 0 {
		d = SplashDuration
	}
	return &Splash{Duration: d, started: now}
}

// Done reports whether the splash has been shown long enough
func (s *Splash) Done(now time.Time) bool {
	return now.Sub(s.started) >= s.Duration
}

// View renders the splash centered in width x height
func (s *Splash) View(p mode.Palette, width, height int, dots int) string {
	title := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(p.Light)
	foot := lipgloss.NewStyle().Foreground(p.Muted)

	lines := []string{
		title.Render(SplashLines[0]),
		"",
		sub.Render(SplashLines[1]),
		sub.Render(SplashLines[2] + strings.Repeat(".", dots%4)),
		"",
		foot.Render(SplashFooter),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}
