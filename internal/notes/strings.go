package notes

// GuitarString describes one string of a standard-tuned six string guitar.
// String 1 is the highest pitched (thinnest) string.
type GuitarString struct {
	Number    int
	Note      string
	Frequency float64
}

// StandardTuning is the fixed string table, ordered string 1 through 6.
var StandardTuning = [6]GuitarString{
	{1, "E4", 329.63},
	{2, "B3", 246.94},
	{3, "G3", 196.00},
	{4, "D3", 146.83},
	{5, "A2", 110.00},
	{6, "E2", 82.41},
}

// StringFrequency returns the reference frequency for a string number,
// or 0 when the number is outside [1, 6].
func StringFrequency(number int) float64 {
	if number < 1 || number > 6 {
		return 0
	}
	return StandardTuning[number-1].Frequency
}

// StringNote returns the canonical note name for a string number,
// or "" when the number is outside [1, 6].
func StringNote(number int) string {
	if number < 1 || number > 6 {
		return ""
	}
	return StandardTuning[number-1].Note
}
