package audit

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/handlers"
	"github.com/steward-io/steward/pkg/routes"
)

// Handler provides read-only HTTP endpoints for the audit trail.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "audit"),
	}
}

// Routes returns the route group definition for audit endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/audit",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/process/{id}", Handler: h.ListByProcess},
		},
	}
}

// ListByProcess returns all audit entries for a process in commit order.
func (h *Handler) ListByProcess(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	entries, err := h.sys.ListByProcess(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
