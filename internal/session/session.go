// Package session sequences a tuning session: string selection, reference
// tone, listening, beep feedback, and error recovery. The engine is driven
// cooperatively by one Update call per host loop tick and owns no goroutines
// or timers of its own.
package session

import "github.com/fretsense/fretsense/internal/cadence"

// State identifies where the engine is in the tuning sequence.
type State string

const (
	StateIdle              State = "idle"
	StatePlayingReference  State = "playing_reference"
	StateWaitingReadyBeep  State = "waiting_ready_beep"
	StateListening         State = "listening"
	StateProvidingFeedback State = "providing_feedback"
	StateErrorRecovery     State = "error_recovery"
)

// Mode selects whether a session starts by playing the target tone.
type Mode string

const (
	// ModePlayTone plays the target string's reference tone before listening.
	ModePlayTone Mode = "play_tone"
	// ModeListenOnly skips the reference tone.
	ModeListenOnly Mode = "listen_only"
)

// ButtonEvent is an edge-triggered press or release of a string button.
type ButtonEvent struct {
	String  int
	Pressed bool
}

// Buttons is the string-selection input collaborator.
type Buttons interface {
	// PollEvent returns the next pending event, if any. Non-blocking.
	PollEvent() (ButtonEvent, bool)
	// IsHeld reports the level state of a string button, used for the
	// cancel check on every poll.
	IsHeld(stringNumber int) bool
}

// FrequencySource supplies one detected fundamental frequency per pull.
// 0 means no usable signal. Non-blocking.
type FrequencySource interface {
	DetectedFrequency() float64
}

// Audio is the playback collaborator. All calls are fire and forget:
// completion is tracked by elapsed time, never by callback.
type Audio interface {
	PlayTone(freqHz float64, durationMs int64)
	PlayBeep(freqHz float64, durationMs int64)
	StopAll()
	SetAmplifierEnabled(enabled bool)
	EmitWarningCue()
}

// ModeSwitch reports the position of the physical mode switch. It is read
// once per session entry and not again mid-session.
type ModeSwitch interface {
	Mode() Mode
}

// ModeSwitchFunc adapts a function to the ModeSwitch interface.
type ModeSwitchFunc func() Mode

// Mode calls f.
func (f ModeSwitchFunc) Mode() Mode { return f() }

// Params holds the engine tunables. Zero values select the defaults.
// VerboseCues adds the string identifier beeps on selection and a direction
// cue whenever the needed peg direction changes.
type Params struct {
	ToleranceCents  float64
	ReferenceToneMs int64
	ReadyBeepMs     int64
	ListenTimeoutMs int64
	MaxWeakSignals  int
	RecoveryDelayMs int64
	BeepFrequencyHz float64
	ReadyBeepHz     float64
	Tiers           []cadence.Tier
	AnnounceInTune  bool
	VerboseCues     bool
}

// DefaultParams mirrors the device's shipped timing.
func DefaultParams() Params {
	return Params{
		ToleranceCents:  2.0,
		ReferenceToneMs: 1000,
		ReadyBeepMs:     200,
		ListenTimeoutMs: 5000,
		MaxWeakSignals:  10,
		RecoveryDelayMs: 2000,
		BeepFrequencyHz: 800,
		ReadyBeepHz:     1000,
		AnnounceInTune:  true,
	}
}

// withDefaults fills in zero fields so a partially specified Params is usable.
func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.ToleranceCents <= 0 {
		p.ToleranceCents = def.ToleranceCents
	}
	if p.ReferenceToneMs <= 0 {
		p.ReferenceToneMs = def.ReferenceToneMs
	}
	if p.ReadyBeepMs <= 0 {
		p.ReadyBeepMs = def.ReadyBeepMs
	}
	if p.ListenTimeoutMs <= 0 {
		p.ListenTimeoutMs = def.ListenTimeoutMs
	}
	if p.MaxWeakSignals <= 0 {
		p.MaxWeakSignals = def.MaxWeakSignals
	}
	if p.RecoveryDelayMs <= 0 {
		p.RecoveryDelayMs = def.RecoveryDelayMs
	}
	if p.BeepFrequencyHz <= 0 {
		p.BeepFrequencyHz = def.BeepFrequencyHz
	}
	if p.ReadyBeepHz <= 0 {
		p.ReadyBeepHz = def.ReadyBeepHz
	}
	return p
}
