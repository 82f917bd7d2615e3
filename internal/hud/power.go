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

// Ring circumferences of the cpu, memory and power gauges
var (
	CPUCircumference    = 2 * math.Pi * 70
	MemoryCircumference = 2 * math.Pi * 58
	PowerCircumference  = 2 * math.Pi * 46
)

const gaugeWidth = 16

// UsageColor fades from green through yellow to red as percentage grows
func UsageColor(percentage int) string {
	if percentage < 50 {
		red := int(math.Floor(float64(percentage) / 50 * 255))
		return fmt.Sprintf("#%02x%02x%02x", red, 255, 0)
	}
	green := int(math.Floor(float64(100-percentage) / 50 * 255))
	return fmt.Sprintf("#%02x%02x%02x", 255, green, 0)
}

// StrokeDash is the visible length of a ring filled to percentage
func StrokeDash(percentage int, circumference float64) float64 {
	return float64(percentage) / 100 * circumference
}

// Power shows simulated cpu, memory and battery gauges
type Power struct {
	CPU     int
	Memory  int
	Battery int
	Angle   float64
	Pulse   int
	rand    *rand.Rand
}

// NewPower creates gauges with initial random readings
func NewPower(r *rand.Rand) *Power {
	p := &Power{rand: r, Battery: 60 + r.IntN(41)}
	p.Sample()
	return p
}

// Sample draws new cpu and memory readings and drains the battery
func (p *Power) Sample() {
	p.CPU = p.rand.IntN(100)
	p.Memory = p.rand.IntN(100)
	p.Battery--
	if p.Battery < 20 {
		p.Battery = 100
	}
}

// Rotate advances the rings by 0.3 degrees
func (p *Power) Rotate() {
	p.Angle = math.Mod(p.Angle+0.3, 360)
}

// Beat advances the pulse counter
func (p *Power) Beat() {
	p.Pulse = (p.Pulse + 1) % 100
}

// Opacity is the glow intensity between 0.4 and 1.0
func (p *Power) Opacity() float64 {
	return 0.7 + math.Sin(float64(p.Pulse)*0.063)*0.3
}

func (p *Power) Timers() []Timer {
	return []Timer{
		{ID: "power.sample", Every: 10 * time.Second, Fire: func(time.Time) { p.Sample() }},
		{ID: "power.rotate", Every: 50 * time.Millisecond, Fire: func(time.Time) { p.Rotate() }},
		{ID: "power.pulse", Every: 30 * time.Millisecond, Fire: func(time.Time) { p.Beat() }},
	}
}

func (p *Power) View(pal mode.Palette, emergency bool) string {
	label := lipgloss.NewStyle().Foreground(pal.Light).Width(4)
	empty := lipgloss.NewStyle().Foreground(pal.Muted)

	memColor := pal.GradientStart
	powerColor := pal.Accent
	if p.Opacity() < 0.7 {
		memColor = pal.GradientEnd
	}

	rows := []string{
		gauge(label.Render("CPU"), p.CPU, CPUCircumference, lipgloss.Color(UsageColor(p.CPU)), empty),
		gauge(label.Render("MEM"), p.Memory, MemoryCircumference, memColor, empty),
		gauge(label.Render("PWR"), p.Battery, PowerCircumference, powerColor, empty),
	}

	return panel(pal, emergency, "POWER", strings.Join(rows, "\n"))
}

func gauge(label string, percentage int, circumference float64, color lipgloss.Color, empty lipgloss.Style) string {
	filled := int(math.Round(StrokeDash(percentage, circumference) / circumference * gaugeWidth))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		empty.Render(strings.Repeat("░", gaugeWidth-filled))
	return fmt.Sprintf("%s %s %3d%%", label, bar, percentage)
}
