package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ecoindus/site-backend-go/internal/config"
)

var (
	configPath string
	logLevel   string
)

func setupLogger(cfg *config.Config) error {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(parsed)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// loadConfig resolves the configuration once and configures logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := setupLogger(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "EcoIndus Solutions API server",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (trace, debug, info, warn, error); overrides config")

	cmd.AddCommand(
		NewServeCommand(),
		NewMigrateCommand(),
	)

	return cmd
}
