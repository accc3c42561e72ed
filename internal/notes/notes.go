// Package notes converts between symbolic note names and frequencies using
// equal temperament with A4 = 440 Hz as the reference pitch.
package notes

import "math"

const (
	// A4Frequency is the concert pitch reference.
	A4Frequency = 440.0
	// A4MIDINumber is the MIDI note number for A4.
	A4MIDINumber = 69
	// SemitonesPerOctave in the equal temperament system.
	SemitonesPerOctave = 12
)

// semitoneFromC maps a natural note letter to its semitone offset from C.
// Returns -1 for anything that is not one of the seven letters.
func semitoneFromC(letter byte) int {
	switch letter {
	case 'C':
		return 0
	case 'D':
		return 2
	case 'E':
		return 4
	case 'F':
		return 5
	case 'G':
		return 7
	case 'A':
		return 9
	case 'B':
		return 11
	default:
		return -1
	}
}

// ParsedNote is the result of parsing a note string like "C#4".
// A zero ParsedNote has Valid == false.
type ParsedNote struct {
	Letter    byte
	Octave    int
	Sharp     bool
	Flat      bool
	Frequency float64
	Valid     bool
}

// MIDINumber returns the MIDI note number for the parsed note.
// Only meaningful when Valid is true.
func (p ParsedNote) MIDINumber() int {
	semitone := semitoneFromC(p.Letter)
	if p.Sharp {
		semitone++
	}
	if p.Flat {
		semitone--
	}
	return (p.Octave+1)*SemitonesPerOctave + semitone
}

// Frequency computes the equal temperament frequency for a note.
// Sharp and flat may both be set; their offsets cancel out.
// Returns 0 for an unknown letter or an octave outside [0, 8].
func Frequency(letter byte, octave int, sharp, flat bool) float64 {
	letter = upper(letter)
	semitone := semitoneFromC(letter)
	if semitone < 0 {
		return 0
	}
	if octave < 0 || octave > 8 {
		return 0
	}
	if sharp {
		semitone++
	}
	if flat {
		semitone--
	}
	midi := (octave+1)*SemitonesPerOctave + semitone
	return A4Frequency * math.Pow(2, float64(midi-A4MIDINumber)/SemitonesPerOctave)
}

// Parse parses a note string of the shape letter, optional '#' or 'b',
// then a single decimal octave digit. Anything else yields an invalid result.
func Parse(note string) ParsedNote {
	var result ParsedNote
	if note == "" {
		return result
	}

	i := 0
	result.Letter = upper(note[i])
	if semitoneFromC(result.Letter) < 0 {
		return result
	}
	i++

	if i < len(note) {
		switch note[i] {
		case '#':
			result.Sharp = true
			i++
		case 'b':
			result.Flat = true
			i++
		}
	}

	// Octave digit is required, and nothing may follow it.
	if i >= len(note) || note[i] < '0' || note[i] > '9' || i != len(note)-1 {
		return result
	}
	result.Octave = int(note[i] - '0')

	result.Frequency = Frequency(result.Letter, result.Octave, result.Sharp, result.Flat)
	if result.Frequency <= 0 {
		return result
	}
	result.Valid = true
	return result
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
