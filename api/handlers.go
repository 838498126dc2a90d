/*
handlers.go - HTTP API handlers for the capacity engine

ENDPOINTS:

	Allocations:
	  POST   /api/projects/{projectKey}/allocations             Create
	  GET    /api/projects/{projectKey}/allocations?start=&end= List (overlap filter)
	  PUT    /api/allocations/{id}                               Partial update
	  DELETE /api/allocations/{id}                               Delete

	Resolution:
	  GET /api/projects/{projectKey}/allocations/{accountId}/resolve?start=&end=

	Snapshots:
	  POST /api/projects/{projectKey}/snapshots          Build for a week
	  GET  /api/projects/{projectKey}/snapshots?limit=   List, newest first

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: validation errors, unparseable input
	- 404: allocation not found
	- 500: store failures
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/capacity-engine/capacity"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Allocations *capacity.AllocationService
	Builder     *capacity.SnapshotBuilder
}

// NewHandler creates a handler over the given stores.
func NewHandler(allocations capacity.AllocationStore, snapshots capacity.SnapshotStore) *Handler {
	return &Handler{
		Allocations: capacity.NewAllocationService(allocations),
		Builder:     capacity.NewSnapshotBuilder(allocations, snapshots),
	}
}

// =============================================================================
// ALLOCATION HANDLERS
// =============================================================================

// CreateAllocation creates a new allocation for a project.
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	project := capacity.ProjectKey(chi.URLParam(r, "projectKey"))

	var req CreateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := capacity.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := capacity.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	a, err := h.Allocations.Create(r.Context(), capacity.CreateAllocationInput{
		ProjectKey:  project,
		AccountID:   capacity.AccountID(req.AccountID),
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		StartDate:   start,
		EndDate:     end,
		Percent:     req.AllocationPercent,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAllocationDTO(*a))
}

// ListAllocations returns a project's allocations, optionally restricted to
// those overlapping [start, end].
func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	project := capacity.ProjectKey(chi.URLParam(r, "projectKey"))

	start, ok := parseOptionalDate(w, r, "start")
	if !ok {
		return
	}
	end, ok := parseOptionalDate(w, r, "end")
	if !ok {
		return
	}

	allocs, err := h.Allocations.List(r.Context(), project, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]AllocationDTO, len(allocs))
	for i, a := range allocs {
		dtos[i] = toAllocationDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpdateAllocation applies a partial update to an allocation.
func (h *Handler) UpdateAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	upd := capacity.AllocationUpdate{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Percent:     req.AllocationPercent,
		Notes:       req.Notes,
	}
	if req.StartDate != nil {
		d, err := capacity.ParseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
		upd.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := capacity.ParseDate(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
			return
		}
		upd.EndDate = &d
	}

	a, err := h.Allocations.Update(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAllocationDTO(*a))
}

// DeleteAllocation removes an allocation.
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Allocations.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESOLUTION HANDLER
// =============================================================================

// ResolveAllocation returns the weighted allocation view for one person
// over [start, end].
func (h *Handler) ResolveAllocation(w http.ResponseWriter, r *http.Request) {
	project := capacity.ProjectKey(chi.URLParam(r, "projectKey"))
	account := capacity.AccountID(chi.URLParam(r, "accountId"))

	start, err := capacity.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing start (use YYYY-MM-DD)", err)
		return
	}
	end, err := capacity.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing end (use YYYY-MM-DD)", err)
		return
	}

	res, err := h.Allocations.Resolve(r.Context(), project, account, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResolutionDTO(*res))
}

// =============================================================================
// SNAPSHOT HANDLERS
// =============================================================================

// BuildSnapshot builds and persists a capacity snapshot for the week
// containing the requested date.
func (h *Handler) BuildSnapshot(w http.ResponseWriter, r *http.Request) {
	project := capacity.ProjectKey(chi.URLParam(r, "projectKey"))

	var req BuildSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	day, err := capacity.ParseDate(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid week_start format (use YYYY-MM-DD)", err)
		return
	}

	actual := make(map[capacity.AccountID]float64, len(req.ActualHours))
	for account, hours := range req.ActualHours {
		actual[capacity.AccountID(account)] = hours
	}

	snap, err := h.Builder.Build(r.Context(), project, day, actual)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSnapshotDTO(*snap))
}

// ListSnapshots returns a project's snapshots, newest week first.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	project := capacity.ProjectKey(chi.URLParam(r, "projectKey"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	snaps, err := h.Builder.ListRecent(r.Context(), project, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]SnapshotDTO, len(snaps))
	for i, s := range snaps {
		dtos[i] = toSnapshotDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseOptionalDate(w http.ResponseWriter, r *http.Request, name string) (*capacity.Date, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	d, err := capacity.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" format (use YYYY-MM-DD)", err)
		return nil, false
	}
	return &d, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case capacity.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), err)
	case capacity.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil && err.Error() != message {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}
