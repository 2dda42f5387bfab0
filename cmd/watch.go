package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"curseforge-mod-tracker/logger"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run periodic update checks until interrupted",
	Long: `Checks all tracked mods on the configured interval (the update_interval
setting, in minutes) and notifies webhooks about every detected update.
Runs until interrupted with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, t, _ := bootstrap(".")

		interval, err := t.UpdateInterval()
		if err != nil {
			logger.Log.Fatalw("Failed to read update interval", zap.Error(err))
		}

		sweep := func() {
			updates, err := t.CheckAllMods()
			if err != nil {
				logger.Log.Errorw("Update sweep failed", zap.Error(err))
				return
			}
			for _, update := range updates {
				if err := t.NotifyUpdate(update); err != nil {
					logger.Log.Errorw("Failed to deliver notifications",
						zap.String("mod", update.Name),
						zap.Error(err),
					)
				}
			}
		}

		c := cron.New()
		if _, err := c.AddFunc(fmt.Sprintf("@every %dm", interval), sweep); err != nil {
			logger.Log.Fatalw("Failed to schedule update checks", zap.Error(err))
		}

		logger.Log.Infof("Checking for updates every %d minutes. Press Ctrl-C to stop.", interval)
		sweep()
		c.Start()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		ctx := c.Stop()
		<-ctx.Done()
		logger.Log.Info("Stopped.")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
