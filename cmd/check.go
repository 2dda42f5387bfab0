package cmd

import (
	"strconv"

	"curseforge-mod-tracker/logger"
	"curseforge-mod-tracker/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [mod-id]",
	Short: "Check tracked mods for updates and notify assigned webhooks",
	Long: `Polls the CurseForge API for new releases. With a mod id, only that mod
is checked; with --all (or no argument), every tracked mod is checked. Each
detected update is sent to the mod's enabled webhooks.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		noNotify, _ := cmd.Flags().GetBool("no-notify")

		var updates []tracker.ModUpdate
		if len(args) == 1 {
			modID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				logger.Log.Fatalw("Invalid mod id", zap.String("arg", args[0]))
			}
			update, err := t.CheckModUpdate(uint(modID))
			if err != nil {
				logger.Log.Fatalw("Update check failed", zap.Error(err))
			}
			if update != nil {
				updates = append(updates, *update)
			}
		} else {
			var err error
			updates, err = t.CheckAllMods()
			if err != nil {
				logger.Log.Fatalw("Update check failed", zap.Error(err))
			}
		}

		if len(updates) == 0 {
			logger.Log.Info("All tracked mods are up to date.")
			return
		}

		for _, update := range updates {
			logger.Log.Infow("Update detected",
				zap.String("mod", update.Name),
				zap.String("file", update.LatestFileName),
			)
			if noNotify {
				continue
			}
			if err := t.NotifyUpdate(update); err != nil {
				logger.Log.Errorw("Failed to deliver notifications",
					zap.String("mod", update.Name),
					zap.Error(err),
				)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("no-notify", false, "Detect updates without posting to webhooks")
}
