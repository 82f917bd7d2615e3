package mode

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors every widget draws with
type Palette struct {
	Primary       lipgloss.Color
	Light         lipgloss.Color
	GradientStart lipgloss.Color
	GradientEnd   lipgloss.Color
	Glow          lipgloss.Color
	Background    lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Warning       lipgloss.Color
	Critical      lipgloss.Color
}

var (
	normalPalette = Palette{
		Primary:       lipgloss.Color("#00f2ff"),
		Light:         lipgloss.Color("#80e5ff"),
		GradientStart: lipgloss.Color("#00ffff"),
		GradientEnd:   lipgloss.Color("#0066cc"),
		Glow:          lipgloss.Color("#00ffff"),
		Background:    lipgloss.Color("#001428"),
		Accent:        lipgloss.Color("#a64dff"),
		Muted:         lipgloss.Color("#172b3a"),
		Warning:       lipgloss.Color("#ffcc00"),
		Critical:      lipgloss.Color("#ff4d4d"),
	}

	emergencyPalette = Palette{
		Primary:       lipgloss.Color("#ff4d4d"),
		Light:         lipgloss.Color("#ff9999"),
		GradientStart: lipgloss.Color("#ff0000"),
		GradientEnd:   lipgloss.Color("#cc0000"),
		Glow:          lipgloss.Color("#ff4b4b"),
		Background:    lipgloss.Color("#280000"),
		Accent:        lipgloss.Color("#ff4b4b"),
		Muted:         lipgloss.Color("#3a1717"),
		Warning:       lipgloss.Color("#ffcc00"),
		Critical:      lipgloss.Color("#ff0000"),
	}
)

// PaletteFor looks up the theme of a mode
func PaletteFor(s State) Palette {
	if s == Emergency {
		return emergencyPalette
	}
	return normalPalette
}
