package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/infrastructure/api/middleware"
	"github.com/affiche-studio/affiche/infrastructure/api/v1/dto"
)

// ItemsRouter handles inventory item endpoints.
type ItemsRouter struct {
	client *affiche.Client
	logger *slog.Logger
}

// NewItemsRouter creates a new ItemsRouter.
func NewItemsRouter(client *affiche.Client) *ItemsRouter {
	return &ItemsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for item endpoints.
func (i *ItemsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", i.Create)
	router.Get("/{public_id}", i.Get)
	router.Post("/{public_id}/attribution", i.ApplyAttribution)

	return router
}

// Create handles POST /api/v1/items. A missing public_id is generated.
func (i *ItemsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.ItemCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.PublicID == "" {
		body.PublicID = uuid.NewString()
	}
	if body.Title == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	saved, err := i.client.Catalog.CreateItem(req.Context(), item.NewItem(body.PublicID, body.Title, body.ImageURL))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.ItemResponse{Data: dto.ItemToDTO(saved)})
}

// Get handles GET /api/v1/items/{public_id}.
func (i *ItemsRouter) Get(w http.ResponseWriter, req *http.Request) {
	itm, err := i.client.Catalog.GetItem(req.Context(), chi.URLParam(req, "public_id"))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ItemResponse{Data: dto.ItemToDTO(itm)})
}

// ApplyAttribution handles POST /api/v1/items/{public_id}/attribution:
// it resolves the submitted identifications against the canonical
// entity store and rewrites the item's attribution links.
func (i *ItemsRouter) ApplyAttribution(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	itm, err := i.client.Catalog.GetItem(ctx, chi.URLParam(req, "public_id"))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}

	var body dto.AttributionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result := attribution.AnalysisResult{
		Artist:            body.Artist,
		Printer:           body.Printer,
		Publisher:         body.Publisher,
		SourceDescription: body.SourceDescription,
		Origin:            attribution.OriginAnalysis,
	}
	result.ArtistTier = attribution.ParseTier(body.ArtistTier)
	result.Basis = attribution.ParseBasis(body.Basis)
	if body.Origin == string(attribution.OriginResearch) {
		result.Origin = attribution.OriginResearch
	}

	updated, outcomes, err := i.client.Attribution.Apply(ctx, itm, result)
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}

	status := http.StatusOK
	if len(outcomes.Failed()) > 0 {
		status = http.StatusMultiStatus
	}
	middleware.WriteJSON(w, status, dto.AttributionResponse{
		Data:     dto.ItemToDTO(updated),
		Outcomes: dto.OutcomesToDTO(outcomes),
	})
}
