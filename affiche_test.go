package affiche_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/seed"
)

const printerWikitext = `{{Infobox company
| name = Atelier Moderne
| founded = 1875
| location_city = [[Paris]]
}}
'''Atelier Moderne''' was a lithographic printer.
`

const printerSummary = `{
	"title": "Atelier Moderne",
	"extract": "Atelier Moderne was a Parisian lithographic printer, dissolved in 1942.",
	"thumbnail": {"source": ""}
}`

func newWikiStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/w/index.php", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(printerWikitext))
	})
	mux.HandleFunc("/api/rest_v1/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(printerSummary))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, extra ...affiche.Option) *affiche.Client {
	t.Helper()

	opts := append([]affiche.Option{
		affiche.WithDataDir(t.TempDir()),
		affiche.WithWorkerPollPeriod(10 * time.Millisecond),
		affiche.WithLogger(slog.New(slog.DiscardHandler)),
	}, extra...)

	client, err := affiche.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	wiki := newWikiStub(t)
	client := newTestClient(t, affiche.WithWikipediaBaseURL(wiki.URL))

	// Seed the embedded canonical entities.
	batches, err := seed.Batches()
	if err != nil {
		t.Fatalf("load batches: %v", err)
	}
	if _, err := client.Seeder.ApplyAll(ctx, batches); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A messy candidate resolves to the seeded canonical form.
	resolved, found, err := client.Resolver.Resolve(ctx, entity.KindArtist, "  cheri   herouard ")
	if err != nil || !found {
		t.Fatalf("resolve: found=%v err=%v", found, err)
	}
	if resolved.Name() != "Chéri Hérouard" {
		t.Errorf("resolved to %q", resolved.Name())
	}

	// Catalog an item and apply an analysis result naming a printer the
	// store has never seen.
	itm, err := client.Catalog.CreateItem(ctx, item.NewItem("pst-e2e", "La Vie Parisienne cover", ""))
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	updated, outcomes, err := client.Attribution.Apply(ctx, itm, attribution.AnalysisResult{
		Artist:     "Chéri Hérouard",
		Printer:    "Atelier Moderne",
		ArtistTier: attribution.TierConfirmed,
		Basis:      attribution.BasisVisibleSignature,
		Origin:     attribution.OriginAnalysis,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if failed := outcomes.Failed(); len(failed) != 0 {
		t.Fatalf("failed outcomes: %v", failed)
	}
	if got := updated.Link(attribution.FieldArtist); got.EntityID() != resolved.ID() || got.Score() != 95 {
		t.Errorf("artist link = %+v", got)
	}

	// The freshly created printer is enriched in the background.
	printerID := updated.Link(attribution.FieldPrinter).EntityID()
	deadline := time.Now().Add(5 * time.Second)
	for {
		e, err := client.Catalog.GetEntity(ctx, printerID)
		if err != nil {
			t.Fatalf("get printer: %v", err)
		}
		if !e.Details().IsEmpty() {
			if got := e.Details().FoundedYear(); got != 1875 {
				t.Errorf("founded year = %d, want 1875 from the infobox", got)
			}
			if got := e.Details().ClosedYear(); got != 1942 {
				t.Errorf("closed year = %d, want 1942 from the summary text", got)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("printer was never enriched")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestClient_CloseIsFinal(t *testing.T) {
	client, err := affiche.New(
		affiche.WithDataDir(t.TempDir()),
		affiche.WithLogger(slog.New(slog.DiscardHandler)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := client.Close(); !errors.Is(err, affiche.ErrClientClosed) {
		t.Errorf("second close: err = %v, want ErrClientClosed", err)
	}
}
