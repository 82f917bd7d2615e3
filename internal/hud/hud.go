// Package hud holds the decorative heads-up display widgets.
//
// Widgets are plain state advanced by timers. They read the emergency flag only
// when rendering, and all randomness comes from an injected source so tests can
// seed it.
package hud

import (
	"math/rand/v2"
	"time"

	"github.com/yourusername/friday/internal/mode"
)

// Timer advances a widget every Every
type Timer struct {
	ID    string
	Every time.Duration
	Fire  func(now time.Time)
}

// Widget is a decorative panel
type Widget interface {
	Timers() []Timer
	View(p mode.Palette, emergency bool) string
}

// NewRand returns a seeded source; seed 0 picks one from the clock
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
