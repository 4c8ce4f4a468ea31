package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "switchsite",
	Short: "Backend for the Switch Games marketing site",
	Long: `The Switch Games site backend: public content listings, contact and
job-application intake, live game stats, and a token-gated admin API.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
