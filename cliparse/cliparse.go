// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	OperatorKeySalt string
	TreesDir        string
	LogFormat       string

	// CORSOrigins lists the dashboard origins allowed to call the API
	// from a browser.
	CORSOrigins []string

	// MintKey, when set, names an operator whose key is printed before
	// exiting. No database is needed in that mode.
	MintKey string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("party-positions", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OperatorKeySalt, "operator-salt", "", "Operator key salt (prefer env)")

	fs.StringVar(&cfg.TreesDir, "trees", "", "Directory of position tree overrides")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (auto, text or json)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated dashboard origins allowed by CORS")
	fs.StringVar(&cfg.MintKey, "mint-key", "", "Print the key for an operator id and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.MintKey == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.OperatorKeySalt == "" {
		cfg.OperatorKeySalt = os.Getenv("OPERATOR_KEY_SALT")
	}
	if cfg.OperatorKeySalt == "" {
		return Config{}, errors.New("OPERATOR_KEY_SALT required")
	}

	if cfg.TreesDir == "" {
		cfg.TreesDir = os.Getenv("POSITION_TREES_DIR")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
		if cfg.LogFormat == "" {
			cfg.LogFormat = "auto"
		}
	}
	switch cfg.LogFormat {
	case "auto", "text", "json":
	default:
		return Config{}, fmt.Errorf("unsupported log format %q (use auto, text or json)", cfg.LogFormat)
	}

	origins := *corsOrigins
	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}
