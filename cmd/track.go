package cmd

import (
	"strconv"

	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track <curseforge-mod-id>",
	Short: "Start tracking a CurseForge mod",
	Long: `Fetches the mod's metadata from the CurseForge API and adds it to the
tracked set. Updates are detected by comparing the release date of the mod's
latest file on each check.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		curseforgeID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			logger.Log.Fatalw("Invalid mod id", zap.String("arg", args[0]))
		}

		_, t, _ := bootstrap(".")
		mod, err := t.AddMod(curseforgeID)
		if err != nil {
			logger.Log.Fatalw("Failed to track mod", zap.Error(err))
		}

		logger.Log.Infof("Now tracking %q (%s)", mod.Name, mod.GameName)
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
