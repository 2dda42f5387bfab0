package cmd

import (
	"curseforge-mod-tracker/config"
	"curseforge-mod-tracker/curseforge"
	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/logger"
	"curseforge-mod-tracker/tracker"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap handles shared initialization logic for commands. The stored API
// key takes precedence over the environment one, and a missing key leaves the
// CurseForge client nil so offline operations still work.
func bootstrap(path string) (config.Config, *tracker.Tracker, *gorm.DB) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalw("Failed to open database", zap.Error(err))
	}
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	apiKey, err := db.GetAPIKey(gdb)
	if err != nil {
		logger.Log.Fatalw("Failed to read stored API key", zap.Error(err))
	}
	if apiKey == "" {
		apiKey = cfg.CurseforgeAPIKey
	}

	var cf *curseforge.Client
	if apiKey != "" {
		cf, err = curseforge.NewClient(apiKey, cfg.UserAgent)
		if err != nil {
			logger.Log.Fatalw("Failed to create CurseForge client", zap.Error(err))
		}
	}

	return cfg, tracker.New(gdb, cf, discord.NewClient(), logger.Log), gdb
}
