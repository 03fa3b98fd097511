package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/affiche-studio/affiche"
	apimiddleware "github.com/affiche-studio/affiche/infrastructure/api/middleware"
	v1 "github.com/affiche-studio/affiche/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by an affiche Client.
type APIServer struct {
	client *affiche.Client
	server *Server
	router chi.Router
	logger *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given affiche
// Client. API keys configured on the client write-protect the mutating
// endpoints; read-only endpoints remain open.
func NewAPIServer(client *affiche.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// mountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	entitiesRouter := v1.NewEntitiesRouter(a.client)
	itemsRouter := v1.NewItemsRouter(a.client)
	queueRouter := v1.NewQueueRouter(a.client)
	adminRouter := v1.NewAdminRouter(a.client)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))
	router.Use(apimiddleware.Logging(a.logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))

		// Queue is GET-only and stays open.
		r.Mount("/queue", queueRouter.Routes())

		// Write-protected routes.
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(a.client.APIKeys()))
			r.Mount("/entities", entitiesRouter.Routes())
			r.Mount("/items", itemsRouter.Routes())
			r.Mount("/admin", adminRouter.Routes())
		})
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = server

	a.mountRoutes(server.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the routed API as an http.Handler for tests and
// custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.mountRoutes(a.router)
	}
	return a.router
}
