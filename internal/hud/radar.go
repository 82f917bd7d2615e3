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

// Radar placement constants, in the 200x200 scope coordinate space
const (
	BlipCount       = 5
	BlipMinDistance = 15.0
	BlipMaxTries    = 20
	RadarCenter     = 100.0
)

var blipLabels = []string{"Civilian", "Civilian", "Police", "Civilian"}

// Blip is one contact on the radar
type Blip struct {
	ID       int
	Angle    float64
	Distance float64
	Label    string
	Pulse    float64
}

// Position returns the blip's point in scope coordinates
func (b Blip) Position() (x, y float64) {
	rad := b.Angle * math.Pi / 180
	return RadarCenter + b.Distance*math.Cos(rad), RadarCenter + b.Distance*math.Sin(rad)
}

// GenerateBlips places up to five blips at least BlipMinDistance apart.
// A blip that cannot be placed in BlipMaxTries attempts is skipped.
func GenerateBlips(r *rand.Rand) []Blip {
	blips := make([]Blip, 0, BlipCount)

	for i := 0; i < BlipCount; i++ {
		for tries := 0; tries < BlipMaxTries; tries++ {
			candidate := Blip{
				ID:       i,
				Angle:    r.Float64() * 360,
				Distance: 30 + r.Float64()*60,
				Pulse:    r.Float64() * math.Pi * 2,
				Label:    blipLabels[r.IntN(len(blipLabels))],
			}

			if !tooClose(candidate, blips) {
				blips = append(blips, candidate)
				break
			}
		}
	}

	return blips
}

func tooClose(b Blip, placed []Blip) bool {
	x, y := b.Position()
	for _, other := range placed {
		x2, y2 := other.Position()
		if math.Hypot(x-x2, y-y2) < BlipMinDistance {
			return true
		}
	}
	return false
}

// Radar sweeps over a set of simulated contacts
type Radar struct {
	Sweep float64
	Blips []Blip
	rand  *rand.Rand
}

// NewRadar creates a radar with a fresh set of blips
func NewRadar(r *rand.Rand) *Radar {
	return &Radar{Blips: GenerateBlips(r), rand: r}
}

// Advance moves the sweep by 1.5 degrees
func (r *Radar) Advance() {
	r.Sweep = math.Mod(r.Sweep+1.5, 360)
}

// Refresh replaces all blips
func (r *Radar) Refresh() {
	r.Blips = GenerateBlips(r.rand)
}

func (r *Radar) Timers() []Timer {
	return []Timer{
		{ID: "radar.sweep", Every: 30 * time.Millisecond, Fire: func(time.Time) { r.Advance() }},
		{ID: "radar.blips", Every: 50 * time.Second, Fire: func(time.Time) { r.Refresh() }},
	}
}

const (
	scopeCols = 23
	scopeRows = 11
)

func (r *Radar) View(p mode.Palette, emergency bool) string {
	grid := make([][]string, scopeRows)
	for row := range grid {
		grid[row] = make([]string, scopeCols)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	dim := lipgloss.NewStyle().Foreground(p.Muted)
	sweep := lipgloss.NewStyle().Foreground(p.Glow)
	civilian := lipgloss.NewStyle().Foreground(p.Light)
	police := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	// Range ring
	for a := 0.0; a < 360; a += 6 {
		col, row := toCell(a, 90)
		grid[row][col] = dim.Render("·")
	}

	// Sweep arm
	for d := 0.0; d <= 90; d += 8 {
		col, row := toCell(r.Sweep, d)
		grid[row][col] = sweep.Render("•")
	}

	for _, b := range r.Blips {
		col, row := toCell(b.Angle, b.Distance)
		if b.Label == "Police" {
			grid[row][col] = police.Render("▲")
		} else {
			grid[row][col] = civilian.Render("●")
		}
	}

	cx, cy := toCell(0, 0)
	grid[cy][cx] = sweep.Render("+")

	var sb strings.Builder
	for i, row := range grid {
		sb.WriteString(strings.Join(row, ""))
		if i < len(grid)-1 {
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "\n%s", dim.Render(fmt.Sprintf("SWEEP %03.0f°  CONTACTS %d", r.Sweep, len(r.Blips))))

	return panel(p, emergency, "RADAR", sb.String())
}

// toCell maps polar scope coordinates to a character cell
func toCell(angle, distance float64) (col, row int) {
	rad := angle * math.Pi / 180
	x := RadarCenter + distance*math.Cos(rad)
	y := RadarCenter + distance*math.Sin(rad)
	col = int(math.Round(x / 200 * float64(scopeCols-1)))
	row = int(math.Round(y / 200 * float64(scopeRows-1)))
	return clampInt(col, 0, scopeCols-1), clampInt(row, 0, scopeRows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
