package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/internal/log"
	"github.com/affiche-studio/affiche/seed"
)

func seedCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply the embedded entity seed batches",
		Long: `Apply the embedded entity seed batches to the database.

Seeding is idempotent: re-running creates no duplicate entities and no
duplicate aliases, so it is safe after every upgrade.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	return cmd
}

func runSeed(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	logger := log.NewLogger(cfg)

	client, err := affiche.New(
		affiche.WithDataDir(cfg.DataDir()),
		affiche.WithDatabaseURL(cfg.DBURL()),
		affiche.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create affiche client: %w", err)
	}
	defer func() { _ = client.Close() }()

	batches, err := seed.Batches()
	if err != nil {
		return err
	}

	reports, err := client.Seeder.ApplyAll(context.Background(), batches)
	if err != nil {
		return err
	}

	for _, r := range reports {
		fmt.Printf("%s: created=%d merged=%d unchanged=%d aliases_added=%d\n",
			r.Version, r.Created, r.Merged, r.Unchanged, r.AliasesAdded)
	}
	return nil
}
