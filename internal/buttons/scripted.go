// Package buttons provides string-selection input collaborators: a scripted
// source for tests and simulation, and a stdin reader for interactive use.
package buttons

import (
	"sync"

	"github.com/fretsense/fretsense/internal/session"
)

// Scripted is a button source driven programmatically.
type Scripted struct {
	mu     sync.Mutex
	events []session.ButtonEvent
	held   map[int]bool
}

// NewScripted creates an empty scripted source with nothing held.
func NewScripted() *Scripted {
	return &Scripted{held: make(map[int]bool)}
}

// Press records a press edge and marks the button held.
func (s *Scripted) Press(stringNumber int) {
	s.mu.Lock()
	s.events = append(s.events, session.ButtonEvent{String: stringNumber, Pressed: true})
	s.held[stringNumber] = true
	s.mu.Unlock()
}

// Release records a release edge and clears the held state.
func (s *Scripted) Release(stringNumber int) {
	s.mu.Lock()
	s.events = append(s.events, session.ButtonEvent{String: stringNumber, Pressed: false})
	s.held[stringNumber] = false
	s.mu.Unlock()
}

// PollEvent pops the oldest pending event.
func (s *Scripted) PollEvent() (session.ButtonEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return session.ButtonEvent{}, false
	}
	event := s.events[0]
	s.events = s.events[1:]
	return event, true
}

// IsHeld reports the level state of a button.
func (s *Scripted) IsHeld(stringNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[stringNumber]
}
