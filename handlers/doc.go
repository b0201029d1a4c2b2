// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the party-positions API.

# Handler Types

  - PositionHandler: election types, form options, path build and parse
  - ParticipationHandler: candidacy create, read, update, list and delete
  - ReportsHandler: candidates per office

Handlers are created via constructor functions:

	positionHandler := handlers.NewPositionHandler(catalog)
	participationHandler := handlers.NewParticipationHandler(st, catalog, cfg)

# Position Form

The form is driven one field at a time. The client sends what it has
chosen so far and gets back the options for the next field:

	GET /positions/PRIMARIES/VILLAGE_CELL/options?category=SIG_COMMITTEE&subcategory=PWD

When the position field offers a single option it comes back already
selected with position_locked set.

# Errors

Domain errors map onto status codes in errors.go:

	invalid selection        → 400, field names the bad input
	incomplete selection     → 422, field names the missing input
	inconsistent path        → 409
	missing participation    → 404
	bad operator credentials → 401

Loading a stored path that the current tree no longer resolves is not an
error: the edit state comes back with inconsistent set and the raw path.
*/
package handlers
