package mode

import (
	"sync"

	"github.com/yourusername/friday/internal/commands"
)

// State is the presentation mode of one UI session
type State int

const (
	Normal State = iota
	Emergency
)

func (s State) String() string {
	if s == Emergency {
		return "emergency"
	}
	return "normal"
}

// Store holds the emergency flag for a single session.
// The zero value is ready to use and starts in Normal.
type Store struct {
	mu        sync.RWMutex
	emergency bool
	listeners []func(State)
}

// NewStore creates a store in the Normal state
func NewStore() *Store {
	return &Store{}
}

// Emergency reports whether emergency mode is active
func (s *Store) Emergency() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emergency
}

// State returns the current mode
func (s *Store) State() State {
	if s.Emergency() {
		return Emergency
	}
	return Normal
}

// Set assigns the flag and reports whether it changed
func (s *Store) Set(emergency bool) bool {
	s.mu.Lock()
	changed := s.emergency != emergency
	s.emergency = emergency
	listeners := append([]func(State){}, s.listeners...)
	s.mu.Unlock()

	if changed {
		state := Normal
		if emergency {
			state = Emergency
		}
		for _, fn := range listeners {
			fn(state)
		}
	}
	return changed
}

// Apply writes the result's EmergencyColors verbatim when present.
// Results without an opinion on the mode leave the store untouched.
func (s *Store) Apply(res commands.Result) bool {
	if res.EmergencyColors == nil {
		return false
	}
	return s.Set(*res.EmergencyColors)
}

// Reset returns the store to Normal
func (s *Store) Reset() {
	s.Set(false)
}

// OnChange registers fn to be called after every transition
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Palette returns the theme for the current mode
func (s *Store) Palette() Palette {
	return PaletteFor(s.State())
}
