package processes

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/handlers"
	"github.com/steward-io/steward/pkg/pagination"
	"github.com/steward-io/steward/pkg/routes"
)

// Handler provides read-only HTTP endpoints for process state. Operations
// that advance a process (start, approve, cancel) are owned by the engine.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "processes"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for process read endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/processes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/hitl-queue", Handler: h.HITLQueue},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/documents", Handler: h.Documents},
		},
	}
}

// List returns a paginated list of processes with optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HITLQueue returns processes waiting for human review, optionally scoped
// to a tenant.
func (h *Handler) HITLQueue(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	var tenantID *uuid.UUID
	if t := r.URL.Query().Get("tenant_id"); t != "" {
		id, err := uuid.Parse(t)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		tenantID = &id
	}

	result, err := h.sys.HITLQueue(r.Context(), page, tenantID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single process by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Documents returns the documents belonging to a process.
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	docs, err := h.sys.FindDocuments(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, docs)
}
