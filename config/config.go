package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
// The CurseForge API key normally lives in the settings table; the environment
// value is only used to seed it on first run.
type Config struct {
	DataDir          string `mapstructure:"DATA_DIR"`
	CurseforgeAPIKey string `mapstructure:"CURSEFORGE_API_KEY"`
	UserAgent        string `mapstructure:"USERAGENT"`
	DatabasePath     string `mapstructure:"-"` // Not from env, derived
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vip_err := viper.ReadInConfig()
	if _, ok := vip_err.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vip_err != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vip_err)
	}

	// Bind environment variables automatically.
	// Viper will check for an environment variable matching the key name (e.g., CURSEFORGE_API_KEY)
	viper.AutomaticEnv()

	vip_err = viper.BindEnv("data_dir", "DATA_DIR")
	if vip_err != nil {
		slog.Warn("Unable to bind DATA_DIR env var", "error", vip_err)
	}
	vip_err = viper.BindEnv("curseforge_api_key", "CURSEFORGE_API_KEY")
	if vip_err != nil {
		slog.Warn("Unable to bind CURSEFORGE_API_KEY env var", "error", vip_err)
	}
	vip_err = viper.BindEnv("useragent", "USERAGENT")
	if vip_err != nil {
		slog.Warn("Unable to bind USERAGENT env var", "error", vip_err)
	}

	// Unmarshal the config
	vip_err = viper.Unmarshal(&config)
	if vip_err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vip_err)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	// Derive DatabasePath (place it in the data dir for portability)
	config.DatabasePath = filepath.Join(config.DataDir, "curseforge_tracker.db")

	return config, nil
}

// processConfigDefaults fills in defaults for values that were not provided.
func processConfigDefaults(config *Config) {
	if config.DataDir == "" {
		config.DataDir = "."
		slog.Info("DATA_DIR not set, defaulting to current directory")
	}
	if config.UserAgent == "" {
		config.UserAgent = "curseforge-mod-tracker/dev (unknown-user)"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
}

// validateAndEnsureDirectories makes sure the data directory exists.
func validateAndEnsureDirectories(config *Config) error {
	if _, err := os.Stat(config.DataDir); os.IsNotExist(err) {
		slog.Info("Data directory does not exist, creating it", "path", config.DataDir)
		if err := os.MkdirAll(config.DataDir, 0755); err != nil {
			slog.Error("Failed to create data directory", "path", config.DataDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check data directory", "path", config.DataDir, "error", err)
		return err
	}
	return nil
}
