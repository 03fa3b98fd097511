package service

import (
	"context"
	"errors"
	"testing"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/internal/database"
	"github.com/affiche-studio/affiche/internal/testdb"
)

func TestAdmin_DeleteEntityCascadesToNull(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	entities := persistence.NewEntityStore(db)
	items := persistence.NewItemStore(db)
	queue := NewQueue(persistence.NewTaskStore(db), nil)
	admin := NewAdmin(entities, items, queue, nil)

	e, _ := entity.NewEntity(entity.KindArtist, "Chéri Hérouard", nil)
	saved, err := entities.Save(ctx, e)
	if err != nil {
		t.Fatalf("save entity: %v", err)
	}

	itm := item.NewItem("item-1", "Poster", "").
		WithLink(attribution.FieldArtist, attribution.NewLink(saved.ID(), 95, attribution.BasisVisibleSignature, "sig"))
	if _, err := items.Save(ctx, itm); err != nil {
		t.Fatalf("save item: %v", err)
	}

	if err := admin.DeleteEntity(ctx, saved.ID()); err != nil {
		t.Fatalf("DeleteEntity: %v", err)
	}

	if _, err := entities.FindByNameKey(ctx, entity.KindArtist, "chéri hérouard"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("entity still resolvable after delete: %v", err)
	}

	reloaded, err := items.FindOne(ctx, item.WithPublicID("item-1"))
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	link := reloaded.Link(attribution.FieldArtist)
	if link.EntityID() != 0 {
		t.Errorf("link entity id = %d, want null", link.EntityID())
	}
	if link.Score() != 95 || link.Basis() != attribution.BasisVisibleSignature {
		t.Error("cascade must keep the link's score and basis")
	}
}

func TestAdmin_ClearEnrichmentKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	entities := persistence.NewEntityStore(db)
	admin := NewAdmin(entities, persistence.NewItemStore(db), nil, nil)

	e, _ := entity.NewEntity(entity.KindPrinter, "Imprimerie Chaix", []string{"Chaix"})
	e = e.WithDetails(entity.Details{}.WithLocation("Paris").WithFoundedYear(1845)).WithVerified(true)
	saved, err := entities.Save(ctx, e)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	cleared, err := admin.ClearEnrichment(ctx, saved.ID())
	if err != nil {
		t.Fatalf("ClearEnrichment: %v", err)
	}
	if !cleared.Details().IsEmpty() {
		t.Errorf("details not cleared: %+v", cleared.Details())
	}
	if !cleared.Verified() || cleared.Name() != "Imprimerie Chaix" || !cleared.HasAlias("Chaix") {
		t.Error("clearing enrichment must keep name, aliases, and verified flag")
	}
}

func TestAdmin_ReenrichQueuesTask(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	entities := persistence.NewEntityStore(db)
	queue := NewQueue(persistence.NewTaskStore(db), nil)
	admin := NewAdmin(entities, persistence.NewItemStore(db), queue, nil)

	e, _ := entity.NewEntity(entity.KindArtist, "Jules Chéret", nil)
	saved, _ := entities.Save(ctx, e)

	if err := admin.Reenrich(ctx, saved.ID(), true); err != nil {
		t.Fatalf("Reenrich: %v", err)
	}
	count, _ := queue.Count(ctx)
	if count != 1 {
		t.Errorf("pending tasks = %d, want 1", count)
	}

	if err := admin.Reenrich(ctx, 9999, false); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("missing entity error = %v, want ErrNotFound", err)
	}
}
