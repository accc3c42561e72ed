package audio

import (
	"log"
	"sync/atomic"
)

// Console is a playback backend that logs instead of producing sound.
// Used by the simulator and anywhere no audio hardware is available.
type Console struct {
	amplifierOn atomic.Bool
}

// NewConsole creates a logging backend.
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) PlayTone(freqHz float64, durationMs int64) {
	if !c.amplifierOn.Load() {
		return
	}
	log.Printf("audio: tone %.2f Hz for %d ms", freqHz, durationMs)
}

func (c *Console) PlayBeep(freqHz float64, durationMs int64) {
	if !c.amplifierOn.Load() {
		return
	}
	log.Printf("audio: beep %.2f Hz for %d ms", freqHz, durationMs)
}

func (c *Console) StopAll() {
	log.Printf("audio: stop all")
}

func (c *Console) SetAmplifierEnabled(enabled bool) {
	c.amplifierOn.Store(enabled)
	log.Printf("audio: amplifier enabled=%v", enabled)
}

func (c *Console) EmitWarningCue() {
	log.Printf("audio: warning cue (play louder or closer to the microphone)")
}

func (c *Console) Close() error {
	return nil
}
