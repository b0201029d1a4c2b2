// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the party-positions API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, catalog, cfg)

# Endpoints

Health:

	GET /health

Position form (public):

	GET  /election-types                             - Election types and their levels
	GET  /positions/{electionType}/{level}/options   - Next choice for a partial selection
	POST /positions/build                            - Selection to position path
	POST /positions/parse                            - Position path to edit state

Participation (writes require X-Operator-ID and X-Operator-Key):

	POST   /participations      - Record a candidacy
	GET    /participations      - List, filtered by election_type, level, position_path_prefix
	GET    /participations/{id} - Candidacy with its edit state
	PUT    /participations/{id} - Move a candidacy to another office
	DELETE /participations/{id} - Withdraw a candidacy

Reports:

	GET /reports/positions?election_type=&level= - Candidates per office

# Handler Initialization

The router builds one participation store and shares it, together with
the position catalog, across the handlers.
*/
package router
