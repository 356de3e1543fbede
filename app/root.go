// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/orkank/AppConfig/internal/config"
	"github.com/orkank/AppConfig/internal/logger"
)

var (
	configPath string // Path to the configuration directory holding main.toml

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "go-appconfig",
		Short: "AppConfig serves versioned key-value configuration to storefront apps",
		Long: `AppConfig serves versioned key-value configuration to storefront apps.
Values are grouped, gated by a minimum app version and resolved into text, file urls,
json documents, catalog products, categories and cms pages.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Path to the config directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes logging.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
