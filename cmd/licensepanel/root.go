package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rssw.eu/licensepanel/internal/config"
	"rssw.eu/licensepanel/internal/logging"
)

var (
	configPath string
	envPath    string
	demoMode   bool

	demoNoIdentity bool
)

var rootCmd = &cobra.Command{
	Use:           "licensepanel",
	Short:         "Serves the CABL license overview panel for an OpenEdge analysis host.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "path to an optional .env file")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "serve embedded sample host data instead of calling the host")
	rootCmd.PersistentFlags().BoolVar(&demoNoIdentity, "demo-no-identity", false, "with --demo, answer the server identity read as if the rules plugin were not installed")

	rootCmd.AddCommand(serveCmd, routesCmd, renderCmd)
}

// loadConfig reads .env, the config file and the environment, and builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.DemoMode = demoMode
	cfg.DemoNoIdentity = demoNoIdentity

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
