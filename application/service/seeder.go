package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/affiche-studio/affiche/seed"
)

// SeedReport summarizes what one seed batch changed.
type SeedReport struct {
	Version      string
	Created      int
	Merged       int
	Unchanged    int
	AliasesAdded int
}

// Seeder applies curated seed batches through the resolver so that
// re-running a batch never duplicates entities or aliases.
type Seeder struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(resolver *Resolver, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{resolver: resolver, logger: logger}
}

// Apply runs one batch. Entries are applied in order; the first bad
// entry aborts the batch.
func (s *Seeder) Apply(ctx context.Context, batch seed.Batch) (SeedReport, error) {
	report := SeedReport{Version: batch.Version}
	for i, entry := range batch.Entries {
		kind, err := entry.ParsedKind()
		if err != nil {
			return report, fmt.Errorf("batch %s entry %d (%q): %w", batch.Version, i, entry.Name, err)
		}
		res, err := s.resolver.ResolveOrCreate(ctx, kind, entry.Name, entry.Aliases)
		if err != nil {
			return report, fmt.Errorf("batch %s entry %d (%q): %w", batch.Version, i, entry.Name, err)
		}
		switch {
		case res.Created:
			report.Created++
		case res.AliasesAdded > 0:
			report.Merged++
		default:
			report.Unchanged++
		}
		report.AliasesAdded += res.AliasesAdded
	}
	s.logger.Info("seed batch applied",
		"version", batch.Version,
		"created", report.Created,
		"merged", report.Merged,
		"unchanged", report.Unchanged)
	return report, nil
}

// ApplyAll runs every batch in order and returns one report per batch.
func (s *Seeder) ApplyAll(ctx context.Context, batches []seed.Batch) ([]SeedReport, error) {
	reports := make([]SeedReport, 0, len(batches))
	for _, batch := range batches {
		report, err := s.Apply(ctx, batch)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
