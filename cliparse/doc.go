// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port (default 3318)
	-d              Database URL
	-t              Database type: sqlite (default) or postgres
	-operator-salt  Operator key salt
	-trees          Directory of position tree overrides
	-log-format     auto (default), text or json
	-cors-origins   Comma-separated dashboard origins allowed by CORS
	-mint-key       Print the key for an operator id and exit

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	OPERATOR_KEY_SALT  → -operator-salt
	POSITION_TREES_DIR → -trees
	LOG_FORMAT         → -log-format
	CORS_ORIGINS       → -cors-origins

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main before parsing.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided, unless -mint-key is set
  - OPERATOR_KEY_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - LOG_FORMAT must be auto, text or json
*/
package cliparse
