package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ecoindus/site-backend-go/internal/config"
	"github.com/ecoindus/site-backend-go/pkg/client"
)

var (
	configPath string
	logLevel   string
	timeout    time.Duration

	cfg       *config.Config
	apiClient *client.Client
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "\nError: not authorized")
		fmt.Fprintln(os.Stderr, "  - Get a fresh token with 'ecoctl token --admin-key <key>'")
	case errors.Is(err, client.ErrRateLimited):
		fmt.Fprintln(os.Stderr, "\nError: too many requests, try again in a minute")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(os.Stderr, "\nError: not found")
		fmt.Fprintln(os.Stderr, "  - Admin endpoints are disabled when the server has no admin key")
	case errors.Is(err, client.ErrRequestFailed):
		fmt.Fprintf(os.Stderr, "\nError: request to %s failed\n", cfg.BackendURL)
		fmt.Fprintln(os.Stderr, "Is the server running? Check backend_url / BACKEND_URL.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecoctl",
		Short: "ecoctl talks to the EcoIndus Solutions API",
		Long: `ecoctl talks to the EcoIndus Solutions API.

It estimates carbon savings, submits consultation requests and, with an
admin token, lists the stored requests. The backend origin comes from the
config file or BACKEND_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(); err != nil {
				return err
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			apiClient = client.New(cfg.BackendURL)
			logrus.WithField("backend", apiClient.BaseURL()).Debug("client configured")
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout for a command")

	cmd.AddGroup(&cobra.Group{ID: gBasic, Title: "Basic:"})
	cmd.AddGroup(&cobra.Group{ID: gAdmin, Title: "Admin:"})

	cmd.AddCommand(
		NewEstimateCommand(),
		NewConsultCommand(),
		NewTokenCommand(),
		NewConsultationsCommand(),
	)

	return cmd
}

const (
	gBasic = "basic"
	gAdmin = "admin"
)
