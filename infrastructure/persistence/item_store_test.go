package persistence_test

import (
	"context"
	"testing"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/internal/testdb"
)

func TestItemStore_SaveAndReloadLinks(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewItemStore(testdb.New(t))

	i := item.NewItem("pst-001", "La Diaphane", "https://img.example/diaphane.jpg")
	i = i.WithLink(attribution.FieldArtist, attribution.NewLink(7, 95, attribution.BasisVisibleSignature, "dealer catalog"))
	i = i.WithLink(attribution.FieldPrinter, attribution.NewLink(9, 70, attribution.BasisExternalKnowledge, ""))

	saved, err := store.Save(ctx, i)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID() == 0 {
		t.Fatal("no id assigned")
	}

	reloaded, err := store.FindOne(ctx, item.WithPublicID("pst-001"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	artist := reloaded.Link(attribution.FieldArtist)
	if artist.EntityID() != 7 || artist.Score() != 95 || artist.Basis() != attribution.BasisVisibleSignature {
		t.Errorf("artist link = %+v", artist)
	}
	if got := reloaded.Link(attribution.FieldPublisher); !got.IsZero() {
		t.Errorf("publisher link should be unset, got %+v", got)
	}
}

func TestItemStore_UpdateClearsDroppedLink(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewItemStore(testdb.New(t))

	i := item.NewItem("pst-002", "Folies Bergère", "")
	i = i.WithLink(attribution.FieldArtist, attribution.NewLink(3, 95, attribution.BasisVisibleSignature, ""))
	i = i.WithLink(attribution.FieldPrinter, attribution.NewLink(4, 70, attribution.BasisUnknown, ""))
	saved, err := store.Save(ctx, i)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Dropping a link must null the columns on update, not silently keep
	// the stale row values.
	updated := saved.WithoutField(attribution.FieldPrinter)
	if _, err := store.Save(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := store.FindOne(ctx, storage.WithID(saved.ID()))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Link(attribution.FieldPrinter); !got.IsZero() {
		t.Errorf("printer link survived the update: %+v", got)
	}
	if got := reloaded.Link(attribution.FieldArtist); got.EntityID() != 3 {
		t.Errorf("artist link lost: %+v", got)
	}
}

func TestItemStore_ClearEntity(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewItemStore(testdb.New(t))

	first := item.NewItem("pst-010", "Poster A", "")
	first = first.WithLink(attribution.FieldArtist, attribution.NewLink(11, 95, attribution.BasisVisibleSignature, ""))
	first = first.WithLink(attribution.FieldPrinter, attribution.NewLink(12, 70, attribution.BasisUnknown, ""))
	if _, err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := item.NewItem("pst-011", "Poster B", "")
	second = second.WithLink(attribution.FieldPublisher, attribution.NewLink(11, 40, attribution.BasisExternalKnowledge, ""))
	if _, err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	if err := store.ClearEntity(ctx, 11); err != nil {
		t.Fatalf("clear: %v", err)
	}

	a, _ := store.FindOne(ctx, item.WithPublicID("pst-010"))
	artist := a.Link(attribution.FieldArtist)
	if artist.EntityID() != 0 {
		t.Errorf("artist link still points at entity %d", artist.EntityID())
	}
	if artist.Score() != 95 || artist.Basis() != attribution.BasisVisibleSignature {
		t.Errorf("score or basis lost on clear: %+v", artist)
	}
	if a.Link(attribution.FieldPrinter).EntityID() != 12 {
		t.Error("unrelated link was cleared")
	}

	b, _ := store.FindOne(ctx, item.WithPublicID("pst-011"))
	if b.Link(attribution.FieldPublisher).EntityID() != 0 {
		t.Error("publisher link on second item not cleared")
	}
}
