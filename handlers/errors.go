// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/party-positions/auth"
	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
)

// writeError maps domain errors onto HTTP responses. Anything unrecognized
// is logged and reported as a 500 naming the failed action.
func writeError(w http.ResponseWriter, err error, action string) {
	var (
		selErr  *positions.SelectionError
		pathErr *positions.PathError
	)
	switch {
	case errors.As(err, &pathErr):
		middleware.FieldErrorResponse(w, http.StatusConflict, "position_path", err.Error())
	case errors.As(err, &selErr) && errors.Is(err, positions.ErrIncompletePathSelection):
		middleware.FieldErrorResponse(w, http.StatusUnprocessableEntity, string(selErr.Field), err.Error())
	case errors.As(err, &selErr):
		middleware.FieldErrorResponse(w, http.StatusBadRequest, string(selErr.Field), err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Participation not found")
	case errors.Is(err, auth.ErrInvalidOperatorKey), errors.Is(err, auth.ErrMissingOperator):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
