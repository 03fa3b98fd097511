// Package service provides the application services that orchestrate
// entity resolution, attribution, seeding, and background enrichment.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/internal/database"
)

// Resolution is the result of a resolve-or-create call.
type Resolution struct {
	Entity entity.Entity

	// Created reports whether the call created a new canonical entity.
	Created bool

	// AliasesAdded is the number of aliases merged into the entity.
	AliasesAdded int
}

// Resolver matches candidate names against canonical entities and merges
// known aliases. Resolve is a pure query; ResolveOrCreate is the alias
// merge engine used by seeding and attribution.
type Resolver struct {
	entities entity.Store
	logger   *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(entities entity.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{entities: entities, logger: logger}
}

// Resolve finds the canonical entity for a candidate name: exact
// normalized canonical-name match first, alias-set match second. Canonical
// matches always win over alias matches. Returns found=false when neither
// matches; the caller decides whether to create. No side effects.
func (r *Resolver) Resolve(ctx context.Context, kind entity.Kind, candidate string) (entity.Entity, bool, error) {
	key := entity.Normalize(candidate)
	if key == "" {
		return entity.Entity{}, false, fmt.Errorf("%w: empty candidate", entity.ErrInvalidName)
	}

	e, err := r.entities.FindByNameKey(ctx, kind, key)
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return entity.Entity{}, false, err
	}

	e, err = r.entities.FindByAliasKey(ctx, kind, key)
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return entity.Entity{}, false, err
	}

	return entity.Entity{}, false, nil
}

// ResolveOrCreate resolves canonicalName to an existing entity, merging
// the given aliases into it, or creates a new entity carrying them.
//
// When the canonical name itself does not match but one of the aliases
// hits an existing entity (under either role), that entity wins and
// canonicalName joins its alias set; seed data provides known variant
// spellings that may already exist under either role, and renaming an
// established canonical name would churn downstream references.
//
// Safe to invoke repeatedly with the same input: a second run produces
// zero new rows and zero alias duplicates. A racing create that loses the
// uniqueness constraint on (kind, name_key) is recovered by re-resolving.
func (r *Resolver) ResolveOrCreate(ctx context.Context, kind entity.Kind, canonicalName string, aliases []string) (Resolution, error) {
	key := entity.Normalize(canonicalName)
	if key == "" {
		return Resolution{}, fmt.Errorf("%w: empty canonical name", entity.ErrInvalidName)
	}

	res, done, err := r.resolveAndMerge(ctx, kind, canonicalName, aliases)
	if done || err != nil {
		return res, err
	}

	created, err := entity.NewEntity(kind, canonicalName, aliases)
	if err != nil {
		return Resolution{}, err
	}
	saved, err := r.entities.Save(ctx, created)
	if err == nil {
		r.logger.Debug("canonical entity created",
			"kind", kind.String(), "name", canonicalName, "id", saved.ID())
		return Resolution{Entity: saved, Created: true, AliasesAdded: len(saved.Aliases())}, nil
	}

	if !database.IsConflict(err) {
		return Resolution{}, err
	}

	// Another caller created the same entity between our resolve and
	// create. The entity now exists; re-resolve instead of surfacing
	// the conflict.
	r.logger.Debug("create conflict, re-resolving",
		"kind", kind.String(), "name", canonicalName)
	res, done, err = r.resolveAndMerge(ctx, kind, canonicalName, aliases)
	if err != nil {
		return Resolution{}, err
	}
	if !done {
		return Resolution{}, fmt.Errorf("re-resolve after conflict: %q not found", canonicalName)
	}
	return res, nil
}

// resolveAndMerge attempts resolution of canonicalName, then of each
// alias, merging the remaining names into whichever entity matched.
// done=false means nothing matched and the caller should create.
func (r *Resolver) resolveAndMerge(ctx context.Context, kind entity.Kind, canonicalName string, aliases []string) (Resolution, bool, error) {
	target, found, err := r.Resolve(ctx, kind, canonicalName)
	if err != nil {
		return Resolution{}, false, err
	}

	fallbackAdded := 0
	if !found {
		for _, alias := range aliases {
			if entity.Normalize(alias) == "" {
				continue
			}
			candidate, ok, err := r.Resolve(ctx, kind, alias)
			if err != nil {
				return Resolution{}, false, err
			}
			if ok {
				// A variant spelling already belongs to an existing
				// entity; attach the whole group there. Shared short
				// aliases can make this merge wrong, so leave a trail.
				r.logger.Warn("alias fallback merged into existing entity",
					"kind", kind.String(),
					"canonical", canonicalName,
					"alias", alias,
					"entity_id", candidate.ID(),
					"entity_name", candidate.Name())
				target = candidate
				found = true
				break
			}
		}
		if found {
			target, fallbackAdded = target.MergeAliases([]string{canonicalName})
		}
	}

	if !found {
		return Resolution{}, false, nil
	}

	merged, added := target.MergeAliases(aliases)
	added += fallbackAdded
	if added == 0 {
		return Resolution{Entity: merged}, true, nil
	}

	saved, err := r.entities.Save(ctx, merged)
	if err != nil {
		return Resolution{}, false, err
	}
	r.logger.Debug("aliases merged",
		"kind", kind.String(), "entity_id", saved.ID(), "added", added)
	return Resolution{Entity: saved, AliasesAdded: added}, true, nil
}
