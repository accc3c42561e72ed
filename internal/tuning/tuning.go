// Package tuning turns a detected fundamental frequency into a judgment:
// which string is being played, how far off it is in cents, and which way
// the tuning peg needs to move.
package tuning

import (
	"errors"
	"math"

	"github.com/fretsense/fretsense/internal/notes"
)

// DefaultToleranceCents is the band treated as in tune.
const DefaultToleranceCents = 2.0

// ErrNonPositiveFrequency is returned when a cents offset is requested for a
// frequency that is zero or negative.
var ErrNonPositiveFrequency = errors.New("tuning: frequency must be positive")

// Direction tells the user which way to adjust the string.
type Direction string

const (
	// DirectionUp means the string is flat and must be tightened.
	DirectionUp Direction = "UP"
	// DirectionDown means the string is sharp and must be loosened.
	DirectionDown Direction = "DOWN"
	// DirectionInTune means the offset is within tolerance.
	DirectionInTune Direction = "IN_TUNE"
	// DirectionUnknown means no usable signal was available.
	DirectionUnknown Direction = "UNKNOWN"
)

// Result is one analysis of a detected frequency against a target string.
// It carries no identity: callers consume it and move on.
type Result struct {
	DetectedString    int
	TargetString      int
	CentsOffset       float64
	Direction         Direction
	DetectedFrequency float64
	TargetFrequency   float64
	NoteName          string
	Octave            int
}

// Analyzer applies a configurable in-tune tolerance.
type Analyzer struct {
	toleranceCents float64
}

// NewAnalyzer creates an Analyzer. A tolerance of 0 or less selects
// DefaultToleranceCents.
func NewAnalyzer(toleranceCents float64) *Analyzer {
	if toleranceCents <= 0 {
		toleranceCents = DefaultToleranceCents
	}
	return &Analyzer{toleranceCents: toleranceCents}
}

// Tolerance returns the configured in-tune band in cents.
func (a *Analyzer) Tolerance() float64 {
	return a.toleranceCents
}

// CentsOffset computes the signed offset of detected from target in cents.
// Positive means sharp, negative means flat.
func CentsOffset(detected, target float64) (float64, error) {
	if detected <= 0 || target <= 0 {
		return 0, ErrNonPositiveFrequency
	}
	return 1200 * math.Log2(detected/target), nil
}

// Direction classifies a cents offset. The in-tune band is strict:
// exactly tolerance cents off is already a direction, not in tune.
func (a *Analyzer) Direction(cents float64) Direction {
	if math.Abs(cents) < a.toleranceCents {
		return DirectionInTune
	}
	if cents < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// ForString analyzes a detected frequency against a specific string.
// A string number outside [1, 6] falls back to auto detection instead of
// failing the session.
func (a *Analyzer) ForString(detected float64, stringNumber int) Result {
	target := notes.StringFrequency(stringNumber)
	if target <= 0 {
		return a.Auto(detected)
	}
	if detected <= 0 {
		return unknownResult(stringNumber, target, detected)
	}

	cents, _ := CentsOffset(detected, target)
	result := Result{
		DetectedString:    stringNumber,
		TargetString:      stringNumber,
		CentsOffset:       cents,
		Direction:         a.Direction(cents),
		DetectedFrequency: detected,
		TargetFrequency:   target,
	}
	result.NoteName, result.Octave = splitNote(notes.StringNote(stringNumber))
	return result
}

// Auto analyzes a detected frequency against whichever string is nearest.
// Nearness is measured in cents rather than Hz so the match is perceptually
// uniform across the octave range. A non-positive frequency yields a result
// with DirectionUnknown and a zero offset.
func (a *Analyzer) Auto(detected float64) Result {
	if detected <= 0 {
		return unknownResult(0, 0, detected)
	}

	nearest := 0
	minDistance := math.Inf(1)
	for _, s := range notes.StandardTuning {
		distance := math.Abs(1200 * math.Log2(detected/s.Frequency))
		if distance < minDistance {
			minDistance = distance
			nearest = s.Number
		}
	}

	target := notes.StringFrequency(nearest)
	cents, _ := CentsOffset(detected, target)
	result := Result{
		DetectedString:    nearest,
		TargetString:      nearest,
		CentsOffset:       cents,
		Direction:         a.Direction(cents),
		DetectedFrequency: detected,
		TargetFrequency:   target,
	}
	result.NoteName, result.Octave = splitNote(notes.StringNote(nearest))
	return result
}

func unknownResult(stringNumber int, target, detected float64) Result {
	result := Result{
		DetectedString:    stringNumber,
		TargetString:      stringNumber,
		Direction:         DirectionUnknown,
		DetectedFrequency: detected,
		TargetFrequency:   target,
	}
	if stringNumber >= 1 && stringNumber <= 6 {
		result.NoteName, result.Octave = splitNote(notes.StringNote(stringNumber))
	}
	return result
}

// splitNote splits a canonical name like "E4" into letter part and octave.
func splitNote(note string) (string, int) {
	if len(note) < 2 {
		return note, 0
	}
	last := note[len(note)-1]
	if last < '0' || last > '9' {
		return note, 0
	}
	return note[:len(note)-1], int(last - '0')
}
