package cmd

import (
	"fmt"

	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// activityCmd groups the activity log subcommands
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Inspect the activity log",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent activity, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		_, t, _ := bootstrap(".")

		activities, err := t.Activities(limit)
		if err != nil {
			logger.Log.Fatalw("Failed to list activities", zap.Error(err))
		}

		if len(activities) == 0 {
			fmt.Println("No activity recorded yet.")
			return
		}

		for _, activity := range activities {
			fmt.Printf("%s  %-20s %s\n",
				activity.Timestamp.Format("2006-01-02 15:04:05"),
				activity.Kind,
				activity.Description,
			)
		}
	},
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole activity log",
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		if err := t.ClearActivities(); err != nil {
			logger.Log.Fatalw("Failed to clear activities", zap.Error(err))
		}
		logger.Log.Info("Activity log cleared")
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityClearCmd)

	activityListCmd.Flags().Int("limit", 0, "Maximum entries to show (0 = all retained)")
}
