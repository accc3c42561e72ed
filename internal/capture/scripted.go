package capture

import "sync"

// Scripted replays a fixed sequence of detected frequencies, one per pull.
// After the sequence is exhausted it keeps returning the final value.
// Used by the simulator and by tests.
type Scripted struct {
	mu     sync.Mutex
	values []float64
	index  int
}

// NewScripted creates a scripted source. An empty sequence reports 0 Hz.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

// Push appends more values to the script.
func (s *Scripted) Push(values ...float64) {
	s.mu.Lock()
	s.values = append(s.values, values...)
	s.mu.Unlock()
}

// DetectedFrequency returns the next scripted value.
func (s *Scripted) DetectedFrequency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	value := s.values[s.index]
	if s.index < len(s.values)-1 {
		s.index++
	}
	return value
}
