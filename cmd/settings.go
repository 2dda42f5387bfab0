package cmd

import (
	"fmt"
	"strconv"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settingsCmd groups the settings subcommands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change application settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		apiKey, err := t.APIKey()
		if err != nil {
			logger.Log.Fatalw("Failed to read settings", zap.Error(err))
		}
		interval, err := t.UpdateInterval()
		if err != nil {
			logger.Log.Fatalw("Failed to read settings", zap.Error(err))
		}

		keyDisplay := "(not set)"
		if apiKey != "" {
			keyDisplay = "(set, " + strconv.Itoa(len(apiKey)) + " characters)"
		}

		fmt.Printf("API key:          %s\n", keyDisplay)
		fmt.Printf("Update interval:  %d minutes\n", interval)
		for _, toggle := range []struct {
			label string
			key   string
		}{
			{"Show quick start", db.SettingShowQuickStart},
			{"Minimize to tray", db.SettingMinimizeToTray},
			{"Close to tray", db.SettingCloseToTray},
		} {
			value, err := t.BoolSetting(toggle.key, true)
			if err != nil {
				logger.Log.Fatalw("Failed to read settings", zap.Error(err))
			}
			fmt.Printf("%-17s %t\n", toggle.label+":", value)
		}
	},
}

var settingsSetAPIKeyCmd = &cobra.Command{
	Use:   "set-api-key <key>",
	Short: "Store the CurseForge API key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, t, _ := bootstrap(".")

		if err := t.SetAPIKey(args[0], cfg.UserAgent); err != nil {
			logger.Log.Fatalw("Failed to store API key", zap.Error(err))
		}
		logger.Log.Info("API key saved")
	},
}

var settingsSetIntervalCmd = &cobra.Command{
	Use:   "set-interval <minutes>",
	Short: "Set how often 'watch' polls for updates",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Log.Fatalw("Invalid interval", zap.String("arg", args[0]))
		}

		_, t, _ := bootstrap(".")
		if err := t.SetUpdateInterval(minutes); err != nil {
			logger.Log.Fatalw("Failed to set update interval", zap.Error(err))
		}
		logger.Log.Infof("Update interval set to %d minutes", minutes)
	},
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle <setting> <true|false>",
	Short: "Set one of the boolean settings",
	Long: `Valid settings: show_quick_start, minimize_to_tray, close_to_tray.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		switch key {
		case db.SettingShowQuickStart, db.SettingMinimizeToTray, db.SettingCloseToTray:
		default:
			logger.Log.Fatalw("Unknown setting", zap.String("setting", key))
		}

		value, err := strconv.ParseBool(args[1])
		if err != nil {
			logger.Log.Fatalw("Invalid boolean value", zap.String("arg", args[1]))
		}

		_, t, _ := bootstrap(".")
		if err := t.SetBoolSetting(key, value); err != nil {
			logger.Log.Fatalw("Failed to store setting", zap.Error(err))
		}
		logger.Log.Infof("%s set to %t", key, value)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetAPIKeyCmd)
	settingsCmd.AddCommand(settingsSetIntervalCmd)
	settingsCmd.AddCommand(settingsToggleCmd)
}
