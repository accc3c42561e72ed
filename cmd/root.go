package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fretsense",
	Short: "Assistive guitar tuner engine",
	Long: `fretsense drives an assistive guitar tuner: pick a string, play it,
and follow the beep cadence until the beeping stops.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
