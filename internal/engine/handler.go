package engine

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/processes"
	"github.com/steward-io/steward/pkg/handlers"
	"github.com/steward-io/steward/pkg/routes"
)

// Handler provides the operator-facing endpoints that advance processes:
// creation, review approval, and cancellation. Read endpoints live with
// the processes handler.
type Handler struct {
	machine *Machine
	logger  *slog.Logger
}

// NewHandler creates a Handler over the given machine.
func NewHandler(machine *Machine, logger *slog.Logger) *Handler {
	return &Handler{
		machine: machine,
		logger:  logger.With("handler", "engine"),
	}
}

// Routes returns the route group definition for process operations.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/processes",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Start},
			{Method: "POST", Pattern: "/{id}/run", Handler: h.Run},
			{Method: "POST", Pattern: "/{id}/approve", Handler: h.Approve},
			{Method: "POST", Pattern: "/{id}/cancel", Handler: h.Cancel},
		},
	}
}

// Start creates a process and begins advancing it in the background.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var cmd StartCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.machine.Start(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.runDetached(r.Context(), p.ID)
	handlers.RespondJSON(w, http.StatusAccepted, p)
}

// Run resumes driving a process that is not terminal and not awaiting
// review, e.g. after a service restart.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, processes.ErrNotFound)
		return
	}

	if _, err := h.machine.rt.Processes.Find(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.runDetached(r.Context(), id)
	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"id": id.String()})
}

// Approve resolves a pending human review and resumes the process.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, processes.ErrNotFound)
		return
	}

	var cmd ApproveCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.machine.Approve(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Cancel marks a process cancelled.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, processes.ErrNotFound)
		return
	}

	var cmd struct {
		Operator string `json:"operator"`
	}
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.machine.Cancel(r.Context(), id, cmd.Operator)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// runDetached drives a process on its own goroutine, detached from the
// request deadline but still bound to request-scoped values.
func (h *Handler) runDetached(ctx context.Context, id uuid.UUID) {
	run := context.WithoutCancel(ctx)
	go func() {
		if err := h.machine.Run(run, id); err != nil {
			h.logger.Error("process run stopped", "id", id, "error", err)
		}
	}()
}
