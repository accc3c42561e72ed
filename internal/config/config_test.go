package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2.0, cfg.Engine.ToleranceCents)
	assert.Equal(t, int64(1000), cfg.Engine.ReferenceToneMs)
	assert.Equal(t, int64(5000), cfg.Engine.ListenTimeoutMs)
	assert.Equal(t, 10, cfg.Engine.MaxWeakSignals)
	assert.Equal(t, AudioBackendConsole, cfg.Audio.Backend)
	assert.Equal(t, 0.01, cfg.Capture.MinAmplitude)
	assert.False(t, cfg.Status.Enabled)
}

func TestParams(t *testing.T) {
	cfg := Default()
	cfg.Engine.ToleranceCents = 5.0
	cfg.Engine.MaxWeakSignals = 3

	params := cfg.Params()
	assert.Equal(t, 5.0, params.ToleranceCents)
	assert.Equal(t, 3, params.MaxWeakSignals)
	assert.Equal(t, cfg.Engine.RecoveryDelayMs, params.RecoveryDelayMs)
}

func TestUnmarshalOverDefaults(t *testing.T) {
	// A partial file keeps defaults for everything it omits.
	raw := `{"engine": {"tolerance_cents": 3.5}, "audio": {"backend": "midi", "midi_out_port": "USB MIDI"}}`

	cfg := Default()
	require.NoError(t, json.Unmarshal([]byte(raw), cfg))

	assert.Equal(t, 3.5, cfg.Engine.ToleranceCents)
	assert.Equal(t, AudioBackendMIDI, cfg.Audio.Backend)
	assert.Equal(t, "USB MIDI", cfg.Audio.MIDIOutPort)
	assert.Equal(t, int64(5000), cfg.Engine.ListenTimeoutMs)
	assert.Equal(t, "127.0.0.1:8337", cfg.Status.Addr)
}
