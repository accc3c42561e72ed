package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsOffset(t *testing.T) {
	for _, f := range []float64{82.41, 110.0, 196.0, 440.0} {
		cents, err := CentsOffset(f, f)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, cents, 1e-9)
	}

	cents, err := CentsOffset(880.0, 440.0)
	require.NoError(t, err)
	assert.InDelta(t, 1200.0, cents, 1e-9)

	cents, err = CentsOffset(445.0, 440.0)
	require.NoError(t, err)
	assert.InDelta(t, 19.56, cents, 0.1)

	cents, err = CentsOffset(435.0, 440.0)
	require.NoError(t, err)
	assert.InDelta(t, -19.79, cents, 0.1)
}

func TestCentsOffsetRejectsNonPositive(t *testing.T) {
	_, err := CentsOffset(0, 440)
	assert.ErrorIs(t, err, ErrNonPositiveFrequency)
	_, err = CentsOffset(440, 0)
	assert.ErrorIs(t, err, ErrNonPositiveFrequency)
	_, err = CentsOffset(-1, -1)
	assert.ErrorIs(t, err, ErrNonPositiveFrequency)
}

func TestDirection(t *testing.T) {
	a := NewAnalyzer(2.0)

	assert.Equal(t, DirectionInTune, a.Direction(0))
	assert.Equal(t, DirectionInTune, a.Direction(1.9))
	assert.Equal(t, DirectionInTune, a.Direction(-1.9))

	// The in-tune band is strict: exactly tolerance is already a direction.
	assert.Equal(t, DirectionDown, a.Direction(2.0))
	assert.Equal(t, DirectionUp, a.Direction(-2.0))

	assert.Equal(t, DirectionUp, a.Direction(-50))
	assert.Equal(t, DirectionDown, a.Direction(50))
}

func TestForString(t *testing.T) {
	a := NewAnalyzer(2.0)

	tests := []struct {
		name      string
		detected  float64
		direction Direction
	}{
		{"flat", 108.0, DirectionUp},
		{"in tune", 110.0, DirectionInTune},
		{"sharp", 112.0, DirectionDown},
		{"very flat", 105.0, DirectionUp},
		{"very sharp", 115.0, DirectionDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.ForString(tt.detected, 5)
			assert.Equal(t, tt.direction, result.Direction)
			assert.Equal(t, 5, result.TargetString)
			assert.Equal(t, 5, result.DetectedString)
			assert.Equal(t, 110.0, result.TargetFrequency)
			assert.Equal(t, "A", result.NoteName)
			assert.Equal(t, 2, result.Octave)
		})
	}

	result := a.ForString(108.0, 5)
	assert.InDelta(t, -31.77, result.CentsOffset, 0.05)
}

func TestForStringOutOfRangeFallsBackToAuto(t *testing.T) {
	a := NewAnalyzer(2.0)

	for _, stringNumber := range []int{0, 7, -3} {
		result := a.ForString(440.0, stringNumber)
		// 440 Hz is nearest the high E string on the semitone scale.
		assert.Equal(t, 1, result.DetectedString)
		assert.Equal(t, 1, result.TargetString)
	}
}

func TestForStringNoSignal(t *testing.T) {
	a := NewAnalyzer(2.0)
	result := a.ForString(0, 5)
	assert.Equal(t, DirectionUnknown, result.Direction)
	assert.Zero(t, result.CentsOffset)
	assert.Equal(t, 110.0, result.TargetFrequency)
}

func TestAutoDetectsEachString(t *testing.T) {
	a := NewAnalyzer(2.0)

	frequencies := []float64{82.41, 110.00, 146.83, 196.00, 246.94, 329.63}
	for i, freq := range frequencies {
		result := a.Auto(freq)
		assert.Equal(t, 6-i, result.DetectedString, "frequency %.2f", freq)
		assert.Equal(t, result.DetectedString, result.TargetString)
		assert.Equal(t, DirectionInTune, result.Direction)
	}
}

func TestAutoExtremes(t *testing.T) {
	a := NewAnalyzer(2.0)
	assert.Equal(t, 6, a.Auto(50.0).DetectedString)
	assert.Equal(t, 1, a.Auto(1000.0).DetectedString)
}

func TestAutoUsesLogDistance(t *testing.T) {
	a := NewAnalyzer(2.0)

	// 128 Hz sits above the geometric mean of A2 (110) and D3 (146.83) but
	// below the linear midpoint, so only a cents-based match picks D3.
	result := a.Auto(128.0)
	assert.Equal(t, 4, result.DetectedString)
}

func TestAutoNoSignal(t *testing.T) {
	a := NewAnalyzer(2.0)
	result := a.Auto(0)
	assert.Equal(t, DirectionUnknown, result.Direction)
	assert.Zero(t, result.CentsOffset)

	result = a.Auto(-5)
	assert.Equal(t, DirectionUnknown, result.Direction)
}
