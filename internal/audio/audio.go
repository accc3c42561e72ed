// Package audio provides playback collaborators for the session engine.
// Every backend is fire and forget: calls return immediately and the engine
// tracks completion by elapsed time.
package audio

import (
	"fmt"

	"github.com/fretsense/fretsense/internal/config"
	"github.com/fretsense/fretsense/internal/session"
)

// Output is a playback backend. Close releases any device handles.
type Output interface {
	session.Audio
	Close() error
}

// NewOutput creates the backend selected by the configuration.
func NewOutput(cfg config.AudioConfig) (Output, error) {
	switch cfg.Backend {
	case config.AudioBackendConsole, "":
		return NewConsole(), nil
	case config.AudioBackendSynth:
		return NewSynth()
	case config.AudioBackendMIDI:
		return NewMIDI(cfg.MIDIOutPort)
	default:
		return nil, fmt.Errorf("unknown audio backend: %s", cfg.Backend)
	}
}
