package outputs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/handlers"
	"github.com/steward-io/steward/pkg/routes"
)

// Handler provides HTTP endpoints for output action operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "outputs"),
	}
}

// Routes returns the route group definition for output action endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/outputs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Enqueue},
		},
	}
}

// Find returns a single output action by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Enqueue registers a new output action for a process.
func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var cmd EnqueueCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	a, err := h.sys.Enqueue(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}
