// Package main is the entry point for the affiche CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/affiche-studio/affiche/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affiche",
		Short: "Affiche poster catalog server",
		Long:  `Affiche catalogs vintage posters: canonical entity resolution, attribution linking, and background enrichment from public structured-data sources.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(seedCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and environment
// variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	if envFile != "" {
		config.LoadDotEnvFile(envFile)
	} else {
		config.LoadDotEnv()
	}

	cfg, err := config.NewAppConfig()
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
