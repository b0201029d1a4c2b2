// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/models"
	"github.com/danielhkuo/party-positions/positions"
)

type PositionHandler struct {
	catalog *positions.Catalog
}

func NewPositionHandler(catalog *positions.Catalog) *PositionHandler {
	return &PositionHandler{catalog: catalog}
}

// ListElectionTypes handles GET /election-types
func (h *PositionHandler) ListElectionTypes(w http.ResponseWriter, r *http.Request) {
	resp := models.ElectionTypesResponse{ElectionTypes: []models.ElectionTypeInfo{}}
	for _, et := range h.catalog.ElectionTypes() {
		levels, err := h.catalog.Levels(et)
		if err != nil {
			writeError(w, err, "list election types")
			return
		}
		resp.ElectionTypes = append(resp.ElectionTypes, models.ElectionTypeInfo{
			ElectionType: et,
			Levels:       levels,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetOptions handles GET /positions/{electionType}/{level}/options
// The query string carries the fields chosen so far.
func (h *PositionHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := positions.Selection{
		ElectionType:   positions.ElectionType(r.PathValue("electionType")),
		Level:          positions.Level(r.PathValue("level")),
		Category:       q.Get("category"),
		Subcategory:    q.Get("subcategory"),
		NestedCategory: q.Get("nested_category"),
		Position:       q.Get("position"),
	}

	step, resolved, err := h.catalog.Step(sel)
	if err != nil {
		writeError(w, err, "resolve options")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Selection: resolved,
		Step:      step,
	})
}

// BuildPath handles POST /positions/build
func (h *PositionHandler) BuildPath(w http.ResponseWriter, r *http.Request) {
	var sel positions.Selection
	if err := middleware.ParseJSONBody(r, &sel); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.catalog.Build(sel)
	if err != nil {
		writeError(w, err, "build position path")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// ParsePath handles POST /positions/parse
// An inconsistent path is answered with 200 and inconsistent set.
func (h *PositionHandler) ParsePath(w http.ResponseWriter, r *http.Request) {
	var req models.ParsePathRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PositionPath == "" {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "position_path", "position_path is required")
		return
	}

	resp, err := editState(h.catalog, req.PositionPath)
	if err != nil {
		writeError(w, err, "parse position path")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// editState recovers the form state for a stored path, locked position
// included. A path the tree no longer resolves is handed back raw for
// manual correction.
func editState(catalog *positions.Catalog, path string) (*models.ParsePathResponse, error) {
	sel, err := catalog.Parse(path)
	var pathErr *positions.PathError
	if errors.As(err, &pathErr) {
		slog.Warn("stored position path does not resolve",
			"position_path", path,
			"segment", pathErr.Segment,
			"reason", pathErr.Reason,
		)
		return &models.ParsePathResponse{
			Inconsistent: true,
			RawPath:      path,
			Reason:       pathErr.Reason,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	step, restored, err := catalog.Step(sel)
	if err != nil {
		return nil, err
	}
	return &models.ParsePathResponse{
		Selection:     &restored,
		TerminalField: step.TerminalField,
	}, nil
}
