// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Logger

NewLogger builds the process logger from the -log-format setting:

	logger, err := middleware.NewLogger(os.Stdout, cfg.LogFormat)
	slog.SetDefault(logger)

"auto" picks text on a terminal and JSON otherwise.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms).

# CORS Middleware

Enable cross-origin requests for the registration dashboard origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
	}

A listed origin is echoed back and may use GET, POST, PUT, DELETE and
OPTIONS with headers Content-Type, X-Operator-ID and X-Operator-Key.
Other origins get no CORS headers. Credentials are never allowed; operators
authenticate with headers, not cookies.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.FieldErrorResponse(w, http.StatusBadRequest, "category", "message")

	var req models.ParsePathRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
