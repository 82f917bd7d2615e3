package hud

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/friday/internal/mode"
)

// Level is the severity of a status reading
type Level string

const (
	LevelNormal   Level = "normal"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// StatusItem is one cell of the status grid
type StatusItem struct {
	ID       string
	Label    string
	Value    float64
	Unit     string
	Status   Level
	Category string
}

// HighlightDuration is how long a highlighted cell stays lit
const HighlightDuration = 700 * time.Millisecond

// StatusGrid shows six simulated system readings
type StatusGrid struct {
	items       []StatusItem
	highlighted string
	rand        *rand.Rand
}

// NewStatusGrid creates the grid with its initial readings
func NewStatusGrid(r *rand.Rand) *StatusGrid {
	return &StatusGrid{
		rand: r,
		items: []StatusItem{
			{ID: "memory", Label: "MEMORY", Value: 48, Unit: "%", Status: LevelNormal, Category: "system"},
			{ID: "network", Label: "NETWORK", Value: 87, Unit: "Mbps", Status: LevelNormal, Category: "system"},
			{ID: "temp", Label: "TEMPERATURE", Value: 24, Unit: "°C", Status: LevelNormal, Category: "environment"},
			{ID: "shield", Label: "SHIELD", Value: 99, Unit: "%", Status: LevelNormal, Category: "security"},
			{ID: "threat", Label: "THREAT LEVEL", Value: 12, Unit: "", Status: LevelNormal, Category: "security"},
			{ID: "comms", Label: "COMMS SIGNAL", Value: 92, Unit: "%", Status: LevelNormal, Category: "system"},
		},
	}
}

// Items returns the readings as seen in the given mode.
// Threat and comms are fixed by the mode rather than simulated.
func (g *StatusGrid) Items(emergency bool) []StatusItem {
	out := make([]StatusItem, len(g.items))
	copy(out, g.items)
	for i := range out {
		switch out[i].ID {
		case "threat":
			out[i].Value, out[i].Status = 12, LevelNormal
			if emergency {
				out[i].Value, out[i].Status = 84, LevelCritical
			}
		case "comms":
			out[i].Value, out[i].Status = 92, LevelNormal
			if emergency {
				out[i].Value, out[i].Status = 46, LevelWarning
			}
		}
	}
	return out
}

// Walk moves every simulated reading by up to ±3 and re-evaluates its status
func (g *StatusGrid) Walk() {
	for i, item := range g.items {
		if item.ID == "threat" || item.ID == "comms" {
			continue
		}

		v := item.Value + (g.rand.Float64()*6 - 3)
		switch {
		case item.Unit == "%":
			v = clamp(v, 0, 100)
		case item.ID == "temp":
			v = clamp(v, 20, 35)
		case item.ID == "network":
			v = clamp(v, 50, 120)
		}

		g.items[i].Value = math.Round(v*10) / 10
		g.items[i].Status = levelFor(item.ID, v)
	}
}

func levelFor(id string, v float64) Level {
	switch id {
	case "memory":
		if v > 95 {
			return LevelCritical
		}
		if v > 85 {
			return LevelWarning
		}
	case "temp":
		if v > 33 {
			return LevelCritical
		}
		if v > 30 {
			return LevelWarning
		}
	}
	return LevelNormal
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Highlight lights a random cell 30% of the time and reports whether it did
func (g *StatusGrid) Highlight() bool {
	if g.rand.Float64() <= 0.7 {
		return false
	}
	g.highlighted = g.items[g.rand.IntN(len(g.items))].ID
	return true
}

// ClearHighlight turns the highlight off
func (g *StatusGrid) ClearHighlight() {
	g.highlighted = ""
}

// Highlighted returns the id of the lit cell, if any
func (g *StatusGrid) Highlighted() string {
	return g.highlighted
}

func (g *StatusGrid) Timers() []Timer {
	return []Timer{
		{ID: "status.walk", Every: 2 * time.Second, Fire: func(time.Time) { g.Walk() }},
		{ID: "status.highlight", Every: 2 * time.Second, Fire: func(time.Time) { g.Highlight() }},
	}
}

func (g *StatusGrid) View(p mode.Palette, emergency bool) string {
	cells := make([]string, 0, len(g.items))
	for _, item := range g.Items(emergency) {
		color := p.Primary
		switch item.Status {
		case LevelWarning:
			color = p.Warning
		case LevelCritical:
			color = p.Critical
		}

		border := p.Muted
		if item.ID == g.highlighted {
			border = p.Glow
		}

		value := fmt.Sprintf("%g", item.Value)
		if item.Unit != "" {
			value += " " + item.Unit
		}
		cell := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Width(14).
			Render(
				lipgloss.NewStyle().Foreground(p.Light).Render(item.Label) + "\n" +
					lipgloss.NewStyle().Foreground(color).Bold(item.Status != LevelNormal).Render(value),
			)
		cells = append(cells, cell)
	}

	rows := make([]string, 0, 3)
	for i := 0; i < len(cells); i += 2 {
		end := min(i+2, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}

	return panel(p, emergency, "STATUS", strings.Join(rows, "\n"))
}
