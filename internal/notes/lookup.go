package notes

import "math"

// frequencyName pairs a reference frequency with its display name.
type frequencyName struct {
	frequency float64
	name      string
}

// nameTable covers the guitar range at semitone resolution, D2 through C5.
// Flats are used for the accidentals to match the printed string labels.
var nameTable = []frequencyName{
	{73.42, "D2"},
	{77.78, "Eb2"},
	{82.41, "E2"},
	{87.31, "F2"},
	{92.50, "Gb2"},
	{98.00, "G2"},
	{103.83, "Ab2"},
	{110.00, "A2"},
	{116.54, "Bb2"},
	{123.47, "B2"},
	{130.81, "C3"},
	{138.59, "Db3"},
	{146.83, "D3"},
	{155.56, "Eb3"},
	{164.81, "E3"},
	{174.61, "F3"},
	{185.00, "Gb3"},
	{196.00, "G3"},
	{207.65, "Ab3"},
	{220.00, "A3"},
	{233.08, "Bb3"},
	{246.94, "B3"},
	{261.63, "C4"},
	{277.18, "Db4"},
	{293.66, "D4"},
	{311.13, "Eb4"},
	{329.63, "E4"},
	{349.23, "F4"},
	{369.99, "Gb4"},
	{392.00, "G4"},
	{415.30, "Ab4"},
	{440.00, "A4"},
	{466.16, "Bb4"},
	{493.88, "B4"},
	{523.25, "C5"},
}

// nearestNameMaxDiff is the cutoff beyond which a frequency is considered
// too far from any table entry to name.
const nearestNameMaxDiff = 5.0

// NearestName returns the display name of the table entry closest to freq.
// This is a coarse helper for user-facing output: it returns "" when freq is
// not positive or when the closest entry is more than 5 Hz away.
func NearestName(freq float64) string {
	if freq <= 0 {
		return ""
	}
	minDiff := math.Inf(1)
	name := ""
	for _, entry := range nameTable {
		diff := math.Abs(freq - entry.frequency)
		if diff < minDiff {
			minDiff = diff
			name = entry.name
		}
	}
	if minDiff > nearestNameMaxDiff {
		return ""
	}
	return name
}
