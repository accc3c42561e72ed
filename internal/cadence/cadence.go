// Package cadence maps a tuning offset magnitude to a beep rate. The further
// a string is from its target, the faster the device beeps; inside the
// smallest band it stops beeping entirely.
package cadence

import "math"

// Tier is one band of the cadence table: offsets at or above MinCents beep
// every IntervalMs for DurationMs.
type Tier struct {
	MinCents   float64 `json:"min_cents"`
	IntervalMs int64   `json:"interval_ms"`
	DurationMs int64   `json:"duration_ms"`
}

// DefaultTiers is evaluated top down; the first satisfied bound wins.
// Below 5 cents the interval is 0, which means in tune and no beep.
var DefaultTiers = []Tier{
	{100, 100, 50},
	{75, 150, 50},
	{50, 200, 50},
	{40, 300, 50},
	{25, 500, 50},
	{15, 800, 50},
	{5, 1200, 50},
}

// Table maps cents magnitudes to beep timing.
type Table struct {
	tiers []Tier
}

// NewTable builds a Table from tiers ordered most extreme first.
// An empty slice selects DefaultTiers.
func NewTable(tiers []Tier) *Table {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	return &Table{tiers: tiers}
}

// Lookup returns the beep interval and duration for a cents offset.
// An interval of 0 signals in tune: no beep.
func (t *Table) Lookup(cents float64) (intervalMs, durationMs int64) {
	magnitude := math.Abs(cents)
	for _, tier := range t.tiers {
		if magnitude >= tier.MinCents {
			return tier.IntervalMs, tier.DurationMs
		}
	}
	return 0, 0
}

// Interval returns only the beep interval for a cents offset.
func (t *Table) Interval(cents float64) int64 {
	interval, _ := t.Lookup(cents)
	return interval
}

// SmallestInterval returns the shortest nonzero interval in the table.
// Hosts should poll at no more than half this period to avoid missed beeps.
func (t *Table) SmallestInterval() int64 {
	smallest := int64(math.MaxInt64)
	for _, tier := range t.tiers {
		if tier.IntervalMs > 0 && tier.IntervalMs < smallest {
			smallest = tier.IntervalMs
		}
	}
	if smallest == math.MaxInt64 {
		return 0
	}
	return smallest
}

// ShouldBeep reports whether a beep is due. It is true exactly when the
// interval is nonzero and at least intervalMs have elapsed since the last
// beep. The caller resets lastBeepMs after firing; this never blocks.
func ShouldBeep(nowMs, lastBeepMs, intervalMs int64) bool {
	if intervalMs <= 0 {
		return false
	}
	return nowMs-lastBeepMs >= intervalMs
}
