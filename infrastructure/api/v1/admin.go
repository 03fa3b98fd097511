package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/infrastructure/api/middleware"
	"github.com/affiche-studio/affiche/infrastructure/api/v1/dto"
	"github.com/affiche-studio/affiche/seed"
)

// AdminRouter handles operator endpoints.
type AdminRouter struct {
	client *affiche.Client
	logger *slog.Logger
}

// NewAdminRouter creates a new AdminRouter.
func NewAdminRouter(client *affiche.Client) *AdminRouter {
	return &AdminRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for admin endpoints.
func (a *AdminRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/seed", a.Seed)
	return router
}

// Seed handles POST /api/v1/admin/seed: applies all embedded seed
// batches. Safe to call repeatedly.
func (a *AdminRouter) Seed(w http.ResponseWriter, req *http.Request) {
	batches, err := seed.Batches()
	if err != nil {
		middleware.WriteError(w, req, err, a.logger)
		return
	}

	reports, err := a.client.Seeder.ApplyAll(req.Context(), batches)
	if err != nil {
		middleware.WriteError(w, req, err, a.logger)
		return
	}

	out := make([]dto.SeedReportData, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.SeedReportData{
			Version:      r.Version,
			Created:      r.Created,
			Merged:       r.Merged,
			Unchanged:    r.Unchanged,
			AliasesAdded: r.AliasesAdded,
		})
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SeedResponse{Reports: out})
}
