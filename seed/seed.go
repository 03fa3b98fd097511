// Package seed ships the curated entity seed data embedded in the
// binary. Batches are versioned YAML files; applying a batch is
// idempotent, so shipping a new version and re-running the seeder is
// the upgrade path.
package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/affiche-studio/affiche/domain/entity"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Entry is one canonical entity with its known variant spellings.
type Entry struct {
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Batch is one versioned seed file.
type Batch struct {
	Version string  `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// ParsedKind validates and returns the entry's kind.
func (e Entry) ParsedKind() (entity.Kind, error) {
	return entity.ParseKind(e.Kind)
}

// Batches loads all embedded seed batches, ordered by file name so
// versions apply oldest first.
func Batches() ([]Batch, error) {
	names, err := fs.Glob(dataFS, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("globbing seed data: %w", err)
	}
	sort.Strings(names)

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		raw, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var batch Batch
		if err := yaml.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if batch.Version == "" {
			return nil, fmt.Errorf("seed batch %s has no version", name)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
