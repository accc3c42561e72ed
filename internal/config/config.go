// Package config loads and saves the tuner configuration as JSON under the
// platform config directory. Missing files yield defaults rather than errors.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fretsense/fretsense/internal/cadence"
	"github.com/fretsense/fretsense/internal/session"
)

// AudioBackend selects how tones and beeps are produced.
type AudioBackend string

const (
	// AudioBackendConsole logs playback instead of producing sound.
	AudioBackendConsole AudioBackend = "console"
	// AudioBackendSynth synthesizes sine tones on the default output device.
	AudioBackendSynth AudioBackend = "synth"
	// AudioBackendMIDI sends notes to a MIDI output port.
	AudioBackendMIDI AudioBackend = "midi"
)

// EngineConfig holds the decision-engine tunables.
type EngineConfig struct {
	ToleranceCents  float64        `json:"tolerance_cents"`
	ReferenceToneMs int64          `json:"reference_tone_ms"`
	ReadyBeepMs     int64          `json:"ready_beep_ms"`
	ListenTimeoutMs int64          `json:"listen_timeout_ms"`
	MaxWeakSignals  int            `json:"max_weak_signals"`
	RecoveryDelayMs int64          `json:"recovery_delay_ms"`
	BeepFrequencyHz float64        `json:"beep_frequency_hz"`
	ReadyBeepHz     float64        `json:"ready_beep_hz"`
	AnnounceInTune  bool           `json:"announce_in_tune"`
	VerboseCues     bool           `json:"verbose_cues"`
	Tiers           []cadence.Tier `json:"tiers,omitempty"`
}

// AudioConfig selects the playback collaborator.
type AudioConfig struct {
	Backend     AudioBackend `json:"backend"`
	MIDIOutPort string       `json:"midi_out_port,omitempty"`
}

// CaptureConfig tunes the microphone frequency detector.
type CaptureConfig struct {
	DeviceName   string  `json:"device_name,omitempty"` // substring match, empty = default input
	MinAmplitude float64 `json:"min_amplitude"`
}

// StatusConfig controls the read-only HTTP status endpoint.
type StatusConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// Config is the root of the configuration file.
type Config struct {
	Engine  EngineConfig  `json:"engine"`
	Audio   AudioConfig   `json:"audio"`
	Capture CaptureConfig `json:"capture"`
	Status  StatusConfig  `json:"status"`
}

// Default returns the configuration the device ships with.
func Default() *Config {
	params := session.DefaultParams()
	return &Config{
		Engine: EngineConfig{
			ToleranceCents:  params.ToleranceCents,
			ReferenceToneMs: params.ReferenceToneMs,
			ReadyBeepMs:     params.ReadyBeepMs,
			ListenTimeoutMs: params.ListenTimeoutMs,
			MaxWeakSignals:  params.MaxWeakSignals,
			RecoveryDelayMs: params.RecoveryDelayMs,
			BeepFrequencyHz: params.BeepFrequencyHz,
			ReadyBeepHz:     params.ReadyBeepHz,
			AnnounceInTune:  params.AnnounceInTune,
		},
		Audio: AudioConfig{
			Backend: AudioBackendConsole,
		},
		Capture: CaptureConfig{
			MinAmplitude: 0.01,
		},
		Status: StatusConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8337",
		},
	}
}

// Params converts the engine section into session parameters.
func (c *Config) Params() session.Params {
	return session.Params{
		ToleranceCents:  c.Engine.ToleranceCents,
		ReferenceToneMs: c.Engine.ReferenceToneMs,
		ReadyBeepMs:     c.Engine.ReadyBeepMs,
		ListenTimeoutMs: c.Engine.ListenTimeoutMs,
		MaxWeakSignals:  c.Engine.MaxWeakSignals,
		RecoveryDelayMs: c.Engine.RecoveryDelayMs,
		BeepFrequencyHz: c.Engine.BeepFrequencyHz,
		ReadyBeepHz:     c.Engine.ReadyBeepHz,
		AnnounceInTune:  c.Engine.AnnounceInTune,
		VerboseCues:     c.Engine.VerboseCues,
		Tiers:           c.Engine.Tiers,
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "fretsense"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
