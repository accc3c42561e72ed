package buttons

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/fretsense/fretsense/internal/session"
)

// holdTimeout is how long a key may go without repeating before the button
// counts as released. Terminal key repeat keeps a held key well under this.
const holdTimeout = 750 * time.Millisecond

// Stdin reads string selections from an input stream, one key per line.
// Keys 1-6 press the matching string button; because a terminal has no
// release events, a press is held as long as the key keeps repeating and
// released after holdTimeout of silence (or immediately on any other key).
type Stdin struct {
	mu      sync.Mutex
	events  []session.ButtonEvent
	held    int
	release func(f func())
}

// NewStdin creates a reader and starts consuming r in the background.
func NewStdin(r io.Reader) *Stdin {
	s := &Stdin{release: debounce.New(holdTimeout)}
	go s.read(r)
	return s
}

func (s *Stdin) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			s.releaseHeld()
			continue
		}
		key := line[0]
		if key >= '1' && key <= '6' {
			s.press(int(key - '0'))
		} else {
			s.releaseHeld()
		}
	}
	s.releaseHeld()
}

func (s *Stdin) press(stringNumber int) {
	s.mu.Lock()
	if s.held != stringNumber {
		if s.held != 0 {
			s.events = append(s.events, session.ButtonEvent{String: s.held, Pressed: false})
		}
		s.events = append(s.events, session.ButtonEvent{String: stringNumber, Pressed: true})
		s.held = stringNumber
	}
	s.mu.Unlock()

	// Every repeat pushes the auto release further out.
	s.release(s.releaseHeld)
}

func (s *Stdin) releaseHeld() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held == 0 {
		return
	}
	s.events = append(s.events, session.ButtonEvent{String: s.held, Pressed: false})
	s.held = 0
}

// PollEvent pops the oldest pending event.
func (s *Stdin) PollEvent() (session.ButtonEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return session.ButtonEvent{}, false
	}
	event := s.events[0]
	s.events = s.events[1:]
	return event, true
}

// IsHeld reports whether the given string button is currently held.
func (s *Stdin) IsHeld(stringNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held == stringNumber && stringNumber != 0
}
