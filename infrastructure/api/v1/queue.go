package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/application/service"
	"github.com/affiche-studio/affiche/infrastructure/api/middleware"
	"github.com/affiche-studio/affiche/infrastructure/api/v1/dto"
)

// QueueRouter exposes the pending background tasks, read-only.
type QueueRouter struct {
	client *affiche.Client
	logger *slog.Logger
}

// NewQueueRouter creates a new QueueRouter.
func NewQueueRouter(client *affiche.Client) *QueueRouter {
	return &QueueRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for queue endpoints.
func (q *QueueRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", q.List)
	return router
}

// List handles GET /api/v1/queue.
func (q *QueueRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	tasks, err := q.client.Tasks.List(ctx, &service.TaskListParams{
		Limit:  pagination.Limit(),
		Offset: pagination.Offset(),
	})
	if err != nil {
		middleware.WriteError(w, req, err, q.logger)
		return
	}

	total, err := q.client.Tasks.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, q.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TaskListResponse{
		Data:  dto.TasksToDTO(tasks),
		Total: total,
	})
}
