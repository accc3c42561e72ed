package cadence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupTiers(t *testing.T) {
	table := NewTable(nil)

	tests := []struct {
		cents    float64
		interval int64
	}{
		{150, 100},
		{100, 100},
		{80, 150},
		{60, 200},
		{45, 300},
		{30, 500},
		{20, 800},
		{10, 1200},
		{5, 1200},
		{4.9, 0},
		{0, 0},
	}

	for _, tt := range tests {
		interval, duration := table.Lookup(tt.cents)
		assert.Equal(t, tt.interval, interval, "cents %.1f", tt.cents)
		if tt.interval > 0 {
			assert.Equal(t, int64(50), duration)
		}
	}
}

func TestLookupUsesMagnitude(t *testing.T) {
	table := NewTable(nil)
	assert.Equal(t, int64(500), table.Interval(-30))
	assert.Equal(t, table.Interval(30), table.Interval(-30))
}

func TestIntervalDecreasesWithMagnitude(t *testing.T) {
	table := NewTable(nil)

	// Faster cadence the further off: strictly decreasing interval across
	// tier bounds, and silence inside the in-tune band.
	bounds := []float64{5, 15, 25, 40, 50, 75, 100}
	previous := int64(1 << 62)
	for _, cents := range bounds {
		interval := table.Interval(cents)
		assert.Less(t, interval, previous, "cents %.0f", cents)
		assert.Greater(t, interval, int64(0))
		previous = interval
	}

	assert.Zero(t, table.Interval(4.99))
}

func TestLookupIsTotal(t *testing.T) {
	table := NewTable(nil)
	for cents := 0.0; cents < 200; cents += 0.25 {
		interval, _ := table.Lookup(cents)
		assert.GreaterOrEqual(t, interval, int64(0))
	}
	interval, _ := table.Lookup(1e300)
	assert.Equal(t, int64(100), interval)
}

func TestShouldBeep(t *testing.T) {
	// No beeping when in tune.
	assert.False(t, ShouldBeep(1000, 0, 0))

	assert.False(t, ShouldBeep(1099, 600, 500))
	assert.True(t, ShouldBeep(1100, 600, 500))
	assert.True(t, ShouldBeep(1500, 600, 500))
}

func TestSmallestInterval(t *testing.T) {
	assert.Equal(t, int64(100), NewTable(nil).SmallestInterval())

	custom := NewTable([]Tier{{50, 250, 40}, {10, 900, 40}})
	assert.Equal(t, int64(250), custom.SmallestInterval())
}
