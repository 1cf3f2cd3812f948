package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	modeTrack     = "track"
	modeWarehouse = "warehouse"
)

var flagMode string

var rootCmd = &cobra.Command{
	Use:   "simulator",
	Short: "Synthetic experiment traffic simulator",
	Long: "Simulates synthetic user journeys against the feature-flag experimentation\n" +
		"platform: generates users, evaluates flags, decides outcome events per\n" +
		"variant, and emits them via SDK tracking or ClickHouse inserts.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", modeTrack,
		fmt.Sprintf("event sink mode: %s or %s", modeTrack, modeWarehouse))
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(continuousCmd)
}

func validateMode(mode string) error {
	if mode != modeTrack && mode != modeWarehouse {
		return fmt.Errorf("invalid mode %q: must be %s or %s", mode, modeTrack, modeWarehouse)
	}
	return nil
}
