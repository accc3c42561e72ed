package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

const (
	midiChannel      = 0
	midiToneVelocity = 100
	midiBeepVelocity = 120

	// CC 7 is channel volume; used as the amplifier gate.
	ccChannelVolume = 7
	// CC 123 is all notes off.
	ccAllNotesOff = 123
)

// MIDI plays tones and beeps as notes on a MIDI output port, for rigs where
// the speaker is a hardware or software synthesizer.
type MIDI struct {
	portName string

	mu   sync.Mutex
	send func(midi.Message) error
}

// NewMIDI opens the named output port. The name is matched exactly against
// the available ports, the way the device configuration stores them.
func NewMIDI(portName string) (*MIDI, error) {
	if portName == "" {
		return nil, fmt.Errorf("midi backend requires an output port name")
	}

	port := findOutPort(portName)
	if port == nil {
		return nil, fmt.Errorf("output port not found: %s", portName)
	}

	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}

	return &MIDI{portName: portName, send: send}, nil
}

func findOutPort(name string) drivers.Out {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out
		}
	}
	return nil
}

// nearestMIDINote converts a frequency to the closest MIDI note number.
func nearestMIDINote(freqHz float64) uint8 {
	note := math.Round(69 + 12*math.Log2(freqHz/440))
	if note < 0 {
		note = 0
	}
	if note > 127 {
		note = 127
	}
	return uint8(note)
}

func (m *MIDI) PlayTone(freqHz float64, durationMs int64) {
	m.playNote(freqHz, durationMs, midiToneVelocity)
}

func (m *MIDI) PlayBeep(freqHz float64, durationMs int64) {
	m.playNote(freqHz, durationMs, midiBeepVelocity)
}

// playNote sends NoteOn immediately and schedules the NoteOff; the engine
// never waits on playback.
func (m *MIDI) playNote(freqHz float64, durationMs int64, velocity uint8) {
	if freqHz <= 0 || durationMs <= 0 {
		return
	}
	key := nearestMIDINote(freqHz)

	m.mu.Lock()
	err := m.send(midi.NoteOn(midiChannel, key, velocity))
	m.mu.Unlock()
	if err != nil {
		return
	}

	time.AfterFunc(time.Duration(durationMs)*time.Millisecond, func() {
		m.mu.Lock()
		m.send(midi.NoteOff(midiChannel, key))
		m.mu.Unlock()
	})
}

func (m *MIDI) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.send(midi.ControlChange(midiChannel, ccAllNotesOff, 0))
}

// SetAmplifierEnabled gates output through the channel volume controller.
func (m *MIDI) SetAmplifierEnabled(enabled bool) {
	volume := uint8(0)
	if enabled {
		volume = 127
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.send(midi.ControlChange(midiChannel, ccChannelVolume, volume))
}

// EmitWarningCue plays a short low cluster that reads as a buzz.
func (m *MIDI) EmitWarningCue() {
	m.playNote(185, 150, midiBeepVelocity)
	m.playNote(196, 150, midiBeepVelocity)
}

func (m *MIDI) Close() error {
	m.StopAll()
	midi.CloseDriver()
	return nil
}
