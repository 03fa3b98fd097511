// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/application/service"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/infrastructure/api/middleware"
	"github.com/affiche-studio/affiche/infrastructure/api/v1/dto"
)

// EntitiesRouter handles canonical entity endpoints.
type EntitiesRouter struct {
	client *affiche.Client
	logger *slog.Logger
}

// NewEntitiesRouter creates a new EntitiesRouter.
func NewEntitiesRouter(client *affiche.Client) *EntitiesRouter {
	return &EntitiesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for entity endpoints.
func (e *EntitiesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", e.List)
	router.Get("/{id}", e.Get)
	router.Delete("/{id}", e.Delete)
	router.Put("/{id}/verified", e.SetVerified)
	router.Delete("/{id}/enrichment", e.ClearEnrichment)
	router.Post("/{id}/enrichment", e.Reenrich)

	return router
}

// List handles GET /api/v1/entities. Supports kind, verified, and q
// query filters plus pagination.
func (e *EntitiesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	params := &service.EntityListParams{
		Query:  req.URL.Query().Get("q"),
		Limit:  pagination.Limit(),
		Offset: pagination.Offset(),
	}
	if kindStr := req.URL.Query().Get("kind"); kindStr != "" {
		kind, err := entity.ParseKind(kindStr)
		if err != nil {
			middleware.WriteError(w, req, err, e.logger)
			return
		}
		params.Kind = &kind
	}
	if verStr := req.URL.Query().Get("verified"); verStr != "" {
		verified := verStr == "true"
		params.Verified = &verified
	}

	entities, err := e.client.Catalog.ListEntities(ctx, params)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	total, err := e.client.Catalog.CountEntities(ctx, params)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EntityListResponse{
		Data: dto.EntitiesToDTO(entities),
		Meta: pagination.Meta(total),
	})
}

// Get handles GET /api/v1/entities/{id}.
func (e *EntitiesRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	ent, err := e.client.Catalog.GetEntity(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.EntityResponse{Data: dto.EntityToDTO(ent)})
}

// Delete handles DELETE /api/v1/entities/{id}. Attribution links to the
// entity survive with a null entity reference.
func (e *EntitiesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	if err := e.client.Admin.DeleteEntity(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetVerified handles PUT /api/v1/entities/{id}/verified.
func (e *EntitiesRouter) SetVerified(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	var body struct {
		Verified bool `json:"verified"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ent, err := e.client.Admin.SetVerified(req.Context(), id, body.Verified)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.EntityResponse{Data: dto.EntityToDTO(ent)})
}

// ClearEnrichment handles DELETE /api/v1/entities/{id}/enrichment.
func (e *EntitiesRouter) ClearEnrichment(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	ent, err := e.client.Admin.ClearEnrichment(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.EntityResponse{Data: dto.EntityToDTO(ent)})
}

// Reenrich handles POST /api/v1/entities/{id}/enrichment. With
// ?force=true, already-populated fields are overwritten.
func (e *EntitiesRouter) Reenrich(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	force := req.URL.Query().Get("force") == "true"
	if err := e.client.Admin.Reenrich(req.Context(), id, force); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func pathID(req *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
}
