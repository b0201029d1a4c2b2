// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/party-positions/cliparse"
	"github.com/danielhkuo/party-positions/handlers"
	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
)

func NewRouter(db *sqlx.DB, catalog *positions.Catalog, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	participations := store.NewParticipationStore(db)
	positionHandler := handlers.NewPositionHandler(catalog)
	participationHandler := handlers.NewParticipationHandler(participations, catalog, cfg)
	reportsHandler := handlers.NewReportsHandler(participations, catalog)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Position form (public, read-only)
	mux.HandleFunc("GET /election-types", middleware.WithLogging(positionHandler.ListElectionTypes))
	mux.HandleFunc("GET /positions/{electionType}/{level}/options", middleware.WithLogging(positionHandler.GetOptions))
	mux.HandleFunc("POST /positions/build", middleware.WithLogging(positionHandler.BuildPath))
	mux.HandleFunc("POST /positions/parse", middleware.WithLogging(positionHandler.ParsePath))

	// Candidate participation (writes need operator credentials)
	mux.HandleFunc("POST /participations", middleware.WithLogging(participationHandler.Create))
	mux.HandleFunc("GET /participations", middleware.WithLogging(participationHandler.List))
	mux.HandleFunc("GET /participations/{id}", middleware.WithLogging(participationHandler.Get))
	mux.HandleFunc("PUT /participations/{id}", middleware.WithLogging(participationHandler.Update))
	mux.HandleFunc("DELETE /participations/{id}", middleware.WithLogging(participationHandler.Delete))

	// Reports
	mux.HandleFunc("GET /reports/positions", middleware.WithLogging(reportsHandler.PositionReport))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("party-positions API v1"))
	})

	return mux
}
