package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/affiche-studio/affiche/application/handler"
	"github.com/affiche-studio/affiche/domain/enrich"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/internal/testdb"
)

type stubEnricher struct {
	fields  enrich.Fields
	err     error
	lastURL string
}

func (s *stubEnricher) Enrich(_ context.Context, pageURL string, _ entity.Kind) (enrich.Fields, error) {
	s.lastURL = pageURL
	return s.fields, s.err
}

func (s *stubEnricher) PageURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + title
}

func TestExecute_FillsEmptyFields(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewEntityStore(testdb.New(t))

	e, _ := entity.NewEntity(entity.KindArtist, "Jules Chéret", nil)
	saved, err := store.Save(ctx, e)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	enricher := &stubEnricher{fields: enrich.Fields{
		Nationality:  "French",
		Biography:    "Master of the Belle Époque poster.",
		ReferenceURL: "https://en.wikipedia.org/wiki/Jules_Chéret",
	}}
	h := NewEntity(store, enricher, time.Second, nil)

	if err := h.Execute(ctx, map[string]any{"entity_id": saved.ID()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	reloaded, err := store.FindOne(ctx, storage.WithID(saved.ID()))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	d := reloaded.Details()
	if d.Nationality() != "French" || d.Biography() == "" || d.ReferenceURL() == "" {
		t.Errorf("details not applied: %+v", d)
	}
}

func TestExecute_DoesNotOverwriteWithoutForce(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewEntityStore(testdb.New(t))

	e, _ := entity.NewEntity(entity.KindArtist, "Jules Chéret", nil)
	e = e.WithDetails(entity.Details{}.WithNationality("French"))
	saved, _ := store.Save(ctx, e)

	enricher := &stubEnricher{fields: enrich.Fields{Nationality: "Belgian"}}
	h := NewEntity(store, enricher, time.Second, nil)

	if err := h.Execute(ctx, map[string]any{"entity_id": saved.ID()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	reloaded, _ := store.FindOne(ctx, storage.WithID(saved.ID()))
	if got := reloaded.Details().Nationality(); got != "French" {
		t.Errorf("nationality = %q, enrichment overwrote an existing field", got)
	}

	// With force the proposal wins.
	if err := h.Execute(ctx, map[string]any{"entity_id": saved.ID(), "force": true}); err != nil {
		t.Fatalf("Execute force: %v", err)
	}
	reloaded, _ = store.FindOne(ctx, storage.WithID(saved.ID()))
	if got := reloaded.Details().Nationality(); got != "Belgian" {
		t.Errorf("nationality = %q, force refresh did not apply", got)
	}
}

func TestExecute_UnavailableSourceIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewEntityStore(testdb.New(t))

	e, _ := entity.NewEntity(entity.KindArtist, "Obscure Painter", nil)
	saved, _ := store.Save(ctx, e)

	enricher := &stubEnricher{err: enrich.ErrUnavailable}
	h := NewEntity(store, enricher, time.Second, nil)

	if err := h.Execute(ctx, map[string]any{"entity_id": saved.ID()}); err != nil {
		t.Fatalf("unavailable source must degrade silently, got %v", err)
	}
	reloaded, _ := store.FindOne(ctx, storage.WithID(saved.ID()))
	if !reloaded.Details().IsEmpty() {
		t.Error("entity gained details from an unavailable source")
	}
}

func TestExecute_PrefersRecordedReferenceURL(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewEntityStore(testdb.New(t))

	e, _ := entity.NewEntity(entity.KindArtist, "Jules Chéret", nil)
	e = e.WithDetails(entity.Details{}.WithReferenceURL("https://en.wikipedia.org/wiki/Jules_Cheret_(painter)"))
	saved, _ := store.Save(ctx, e)

	enricher := &stubEnricher{fields: enrich.Fields{Nationality: "French"}}
	h := NewEntity(store, enricher, time.Second, nil)

	if err := h.Execute(ctx, map[string]any{"entity_id": saved.ID()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if enricher.lastURL != "https://en.wikipedia.org/wiki/Jules_Cheret_(painter)" {
		t.Errorf("fetched %q, want the recorded reference URL", enricher.lastURL)
	}
}

func TestExecute_BadPayload(t *testing.T) {
	store := persistence.NewEntityStore(testdb.New(t))
	h := NewEntity(store, &stubEnricher{}, time.Second, nil)

	if err := h.Execute(context.Background(), map[string]any{}); !errors.Is(err, handler.ErrBadPayload) {
		t.Fatalf("missing entity_id: err = %v, want ErrBadPayload", err)
	}
	if err := h.Execute(context.Background(), map[string]any{"entity_id": "seven"}); !errors.Is(err, handler.ErrBadPayload) {
		t.Fatalf("non-numeric entity_id: err = %v, want ErrBadPayload", err)
	}
}
