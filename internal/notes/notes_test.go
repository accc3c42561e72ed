package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyKnownNotes(t *testing.T) {
	tests := []struct {
		name     string
		letter   byte
		octave   int
		sharp    bool
		flat     bool
		expected float64
	}{
		{"low E string", 'E', 2, false, false, 82.41},
		{"A string", 'A', 2, false, false, 110.00},
		{"concert A", 'A', 4, false, false, 440.00},
		{"C sharp 4", 'C', 4, true, false, 277.18},
		{"E flat 3", 'E', 3, false, true, 155.56},
		{"middle C", 'C', 4, false, false, 261.63},
		{"lowercase letter", 'g', 3, false, false, 196.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Frequency(tt.letter, tt.octave, tt.sharp, tt.flat), 0.01)
		})
	}
}

func TestFrequencyInvalidInput(t *testing.T) {
	assert.Zero(t, Frequency('H', 4, false, false))
	assert.Zero(t, Frequency('X', 4, false, false))
	assert.Zero(t, Frequency('A', -1, false, false))
	assert.Zero(t, Frequency('A', 9, false, false))
}

func TestFrequencySharpAndFlatCancel(t *testing.T) {
	// Both accidentals at once are legal input; their offsets cancel.
	plain := Frequency('A', 4, false, false)
	both := Frequency('A', 4, true, true)
	assert.Equal(t, plain, both)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"A4", true},
		{"a4", true},
		{"C#4", true},
		{"Bb2", true},
		{"E2", true},
		{"", false},
		{"A", false},
		{"A#", false},
		{"H4", false},
		{"A44", false},
		{"A#b4", false},
		{"A9", false},
		{"4A", false},
		{"A#4x", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed := Parse(tt.input)
			assert.Equal(t, tt.valid, parsed.Valid)
			if tt.valid {
				assert.Greater(t, parsed.Frequency, 0.0)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	parsed := Parse("C#4")
	assert.True(t, parsed.Valid)
	assert.Equal(t, byte('C'), parsed.Letter)
	assert.Equal(t, 4, parsed.Octave)
	assert.True(t, parsed.Sharp)
	assert.False(t, parsed.Flat)
	assert.InDelta(t, 277.18, parsed.Frequency, 0.01)
	assert.Equal(t, 61, parsed.MIDINumber())
}

func TestMIDINumber(t *testing.T) {
	assert.Equal(t, 69, Parse("A4").MIDINumber())
	assert.Equal(t, 60, Parse("C4").MIDINumber())
	assert.Equal(t, 40, Parse("E2").MIDINumber())
}

func TestNearestName(t *testing.T) {
	assert.Equal(t, "A4", NearestName(440.0))
	assert.Equal(t, "A4", NearestName(444.0))
	assert.Equal(t, "E2", NearestName(82.0))
	assert.Equal(t, "G3", NearestName(196.5))

	// More than 5 Hz from every entry.
	assert.Equal(t, "", NearestName(450.0))
	assert.Equal(t, "", NearestName(60.0))
	assert.Equal(t, "", NearestName(1000.0))

	assert.Equal(t, "", NearestName(0))
	assert.Equal(t, "", NearestName(-10))
}

func TestStringTable(t *testing.T) {
	expected := []struct {
		number    int
		note      string
		frequency float64
	}{
		{1, "E4", 329.63},
		{2, "B3", 246.94},
		{3, "G3", 196.00},
		{4, "D3", 146.83},
		{5, "A2", 110.00},
		{6, "E2", 82.41},
	}

	for _, e := range expected {
		assert.Equal(t, e.frequency, StringFrequency(e.number))
		assert.Equal(t, e.note, StringNote(e.number))
	}

	assert.Zero(t, StringFrequency(0))
	assert.Zero(t, StringFrequency(7))
	assert.Equal(t, "", StringNote(0))
	assert.Equal(t, "", StringNote(7))
}
