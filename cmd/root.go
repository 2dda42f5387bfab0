package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "curseforge-mod-tracker",
	Short: "Track CurseForge mods and notify Discord webhooks about updates",
	Long: `curseforge-mod-tracker watches CurseForge mods for new releases and posts
notifications to Discord webhooks using configurable message templates.`,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
