package service

import (
	"context"
	"testing"

	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/internal/testdb"
	"github.com/affiche-studio/affiche/seed"
)

func TestSeeder_ApplyTwiceIsStable(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	resolver := NewResolver(persistence.NewEntityStore(db), nil)
	seeder := NewSeeder(resolver, nil)

	batch := seed.Batch{
		Version: "test-1",
		Entries: []seed.Entry{
			{Kind: "artist", Name: "Chéri Hérouard", Aliases: []string{"Cheri Herouard", "Herouard"}},
			{Kind: "printer", Name: "Imprimerie Chaix", Aliases: []string{"Chaix"}},
		},
	}

	first, err := seeder.Apply(ctx, batch)
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if first.Created != 2 || first.AliasesAdded != 3 {
		t.Errorf("first report = %+v", first)
	}

	second, err := seeder.Apply(ctx, batch)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if second.Created != 0 || second.Merged != 0 || second.Unchanged != 2 {
		t.Errorf("second report = %+v, want all unchanged", second)
	}
}

func TestSeeder_BadKindAborts(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	seeder := NewSeeder(NewResolver(persistence.NewEntityStore(db), nil), nil)

	_, err := seeder.Apply(ctx, seed.Batch{
		Version: "test-bad",
		Entries: []seed.Entry{{Kind: "museum", Name: "Louvre"}},
	})
	if err == nil {
		t.Fatal("unknown kind must abort the batch")
	}
}

func TestSeeder_EmbeddedBatches(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	resolver := NewResolver(persistence.NewEntityStore(db), nil)
	seeder := NewSeeder(resolver, nil)

	batches, err := seed.Batches()
	if err != nil {
		t.Fatalf("seed.Batches: %v", err)
	}
	if len(batches) == 0 {
		t.Fatal("no embedded seed batches")
	}

	if _, err := seeder.ApplyAll(ctx, batches); err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}

	// The shipped data must make the known variant spellings resolve.
	e, found, err := resolver.Resolve(ctx, "artist", "cheri herouard")
	if err != nil || !found {
		t.Fatalf("resolve shipped alias: found=%v err=%v", found, err)
	}
	if e.Name() != "Chéri Hérouard" {
		t.Errorf("resolved name = %q", e.Name())
	}
}
