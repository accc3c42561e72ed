package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fretsense/fretsense/internal/notes"
)

func init() {
	rootCmd.AddCommand(noteCmd)
}

var noteCmd = &cobra.Command{
	Use:   "note <name-or-frequency>",
	Short: "Convert between note names and frequencies",
	Long: `Given a note name like E2 or C#4, prints its equal temperament
frequency and MIDI number. Given a frequency in Hz, prints the nearest note
name and the string table entry it would auto-detect as.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if freq, err := strconv.ParseFloat(args[0], 64); err == nil {
			return printFrequency(freq)
		}
		return printNote(args[0])
	},
}

func printNote(name string) error {
	parsed := notes.Parse(name)
	if !parsed.Valid {
		return fmt.Errorf("invalid note %q: expected letter, optional # or b, then octave 0-8", name)
	}
	fmt.Printf("%s = %.2f Hz (MIDI %d)\n", name, parsed.Frequency, parsed.MIDINumber())
	return nil
}

func printFrequency(freq float64) error {
	if freq <= 0 {
		return fmt.Errorf("frequency must be positive, got %v", freq)
	}
	name := notes.NearestName(freq)
	if name == "" {
		fmt.Printf("%.2f Hz is outside the nameable range\n", freq)
		return nil
	}
	fmt.Printf("%.2f Hz is closest to %s\n", freq, name)
	for _, gs := range notes.StandardTuning {
		if gs.Note == name {
			fmt.Printf("string %d (%s, %.2f Hz)\n", gs.Number, gs.Note, gs.Frequency)
		}
	}
	return nil
}
