// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the party-positions API server.

party-positions records which office each candidate stands for. Offices
are described by a position tree per election type; the API walks a form
through that tree, turns the selection into a canonical dotted path and
stores the path with the candidacy.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	DATABASE_URL=file:positions.db OPERATOR_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -operator-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - OPERATOR_KEY_SALT (-operator-salt): secret for operator key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - POSITION_TREES_DIR (-trees): directory of tree overrides
  - LOG_FORMAT (-log-format): auto, text or json (default: auto)
  - CORS_ORIGINS (-cors-origins): comma-separated dashboard origins

Operator keys are minted with:

	go run . -operator-salt ... -mint-key registrar-01

# Architecture

  - positions: tree loading, classification, the form resolver, path build and parse
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - store: participation persistence
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - auth: operator key generation and validation
  - db: connection and schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
