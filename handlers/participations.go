// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/party-positions/auth"
	"github.com/danielhkuo/party-positions/cliparse"
	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/models"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
)

type ParticipationHandler struct {
	store   *store.ParticipationStore
	catalog *positions.Catalog
	cfg     cliparse.Config
}

func NewParticipationHandler(st *store.ParticipationStore, catalog *positions.Catalog, cfg cliparse.Config) *ParticipationHandler {
	return &ParticipationHandler{store: st, catalog: catalog, cfg: cfg}
}

// operator authenticates the caller of a write
func (h *ParticipationHandler) operator(r *http.Request) (string, error) {
	id := r.Header.Get(models.HeaderOperatorID)
	key := r.Header.Get(models.HeaderOperatorKey)
	if err := auth.ValidateOperatorKey(id, key, h.cfg.OperatorKeySalt); err != nil {
		return "", err
	}
	return id, nil
}

// readRequest decodes and validates a participation body and resolves its
// office. A bare position_path is accepted when no category is given.
func (h *ParticipationHandler) readRequest(w http.ResponseWriter, r *http.Request) (models.Participation, bool) {
	var req models.ParticipationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return models.Participation{}, false
	}

	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "candidate_name", "candidate_name is required")
		return models.Participation{}, false
	}

	sel := req.Selection
	if req.PositionPath != "" && sel.Category == "" {
		parsed, err := h.catalog.Parse(req.PositionPath)
		if err != nil {
			writeError(w, err, "parse position path")
			return models.Participation{}, false
		}
		sel = parsed
	}

	res, err := h.catalog.Build(sel)
	if err != nil {
		writeError(w, err, "build position path")
		return models.Participation{}, false
	}

	return models.Participation{
		CandidateName:  name,
		ElectionType:   string(sel.ElectionType),
		Level:          string(sel.Level),
		PositionPath:   res.Path,
		Category:       res.Category,
		Subcategory:    res.Subcategory,
		NestedCategory: res.NestedCategory,
		Position:       res.Position,
	}, true
}

// Create handles POST /participations
func (h *ParticipationHandler) Create(w http.ResponseWriter, r *http.Request) {
	operatorID, err := h.operator(r)
	if err != nil {
		writeError(w, err, "authenticate operator")
		return
	}

	p, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	p.CreatedBy = operatorID

	if err := h.store.Create(r.Context(), &p); err != nil {
		writeError(w, err, "create participation")
		return
	}

	slog.Info("participation created",
		"id", p.ID,
		"position_path", p.PositionPath,
		"operator", operatorID,
	)

	middleware.JSONResponse(w, http.StatusCreated, p)
}

// Update handles PUT /participations/{id}
func (h *ParticipationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	operatorID, err := h.operator(r)
	if err != nil {
		writeError(w, err, "authenticate operator")
		return
	}

	p, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	p.ID = id

	if err := h.store.Update(r.Context(), &p); err != nil {
		writeError(w, err, "update participation")
		return
	}

	slog.Info("participation updated",
		"id", p.ID,
		"position_path", p.PositionPath,
		"operator", operatorID,
	)

	middleware.JSONResponse(w, http.StatusOK, p)
}

// Get handles GET /participations/{id}
// The edit state is recovered from the stored path against the current tree.
func (h *ParticipationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "get participation")
		return
	}

	edit, err := editState(h.catalog, p.PositionPath)
	if err != nil {
		writeError(w, err, "restore edit state")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipationDetail{
		Participation: p,
		Edit:          edit,
	})
}

// List handles GET /participations
func (h *ParticipationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.store.List(r.Context(), store.ListFilter{
		ElectionType: q.Get("election_type"),
		Level:        q.Get("level"),
		PathPrefix:   q.Get("position_path_prefix"),
	})
	if err != nil {
		writeError(w, err, "list participations")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListParticipationsResponse{
		Participations: rows,
		Count:          len(rows),
	})
}

// Delete handles DELETE /participations/{id}
func (h *ParticipationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	operatorID, err := h.operator(r)
	if err != nil {
		writeError(w, err, "authenticate operator")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		writeError(w, err, "delete participation")
		return
	}

	slog.Info("participation deleted", "id", id, "operator", operatorID)
	w.WriteHeader(http.StatusNoContent)
}
