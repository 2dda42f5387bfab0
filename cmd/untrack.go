package cmd

import (
	"strconv"

	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// untrackCmd represents the untrack command
var untrackCmd = &cobra.Command{
	Use:   "untrack <mod-id>",
	Short: "Stop tracking a mod",
	Long: `Removes a mod from the tracked set along with its webhook assignments.
Past activity entries for the mod are kept, with their mod reference cleared.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			logger.Log.Fatalw("Invalid mod id", zap.String("arg", args[0]))
		}

		_, t, _ := bootstrap(".")
		if err := t.DeleteMod(uint(modID)); err != nil {
			logger.Log.Fatalw("Failed to untrack mod", zap.Error(err))
		}

		logger.Log.Info("Mod removed")
	},
}

func init() {
	rootCmd.AddCommand(untrackCmd)
}
