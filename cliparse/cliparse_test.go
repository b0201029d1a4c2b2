// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("OPERATOR_KEY_SALT", "test-salt")
	t.Setenv("POSITION_TREES_DIR", "/etc/positions")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.TreesDir != "/etc/positions" {
		t.Errorf("expected trees dir from env, got %q", cfg.TreesDir)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-operator-salt", "s1", "-log-format", "text"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("CLI should override env: expected text, got %s", cfg.LogFormat)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-operator-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.LogFormat != "auto" {
		t.Errorf("expected default auto, got %s", cfg.LogFormat)
	}
	if cfg.TreesDir != "" {
		t.Errorf("expected no trees dir, got %q", cfg.TreesDir)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no CORS origins, got %q", cfg.CORSOrigins)
	}
}

func TestParseFlags_MintKeyNeedsNoDatabase(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-mint-key", "registrar-01", "-operator-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MintKey != "registrar-01" {
		t.Errorf("expected mint key operator, got %q", cfg.MintKey)
	}
}

func TestParseFlags_CORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://registry.example.org, http://localhost:5173,")

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-operator-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:5173" {
		t.Errorf("expected two trimmed origins, got %q", cfg.CORSOrigins)
	}

	cfg, err = ParseFlags([]string{"-d", "file:test.db", "-operator-salt", "s1", "-cors-origins", "https://admin.example.org"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://admin.example.org" {
		t.Errorf("CLI should override env, got %q", cfg.CORSOrigins)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing database url", []string{"-operator-salt", "s1"}, nil},
		{"missing salt", []string{"-d", "file:test.db"}, nil},
		{"mint key still needs salt", []string{"-mint-key", "registrar-01"}, nil},
		{"bad database type", []string{"-d", "x", "-operator-salt", "s1", "-t", "mysql"}, nil},
		{"bad log format", []string{"-d", "x", "-operator-salt", "s1", "-log-format", "xml"}, nil},
		{"bad port env", []string{"-d", "x", "-operator-salt", "s1"}, map[string]string{"PORT": "abc"}},
		{"unknown flag", []string{"-admin-salt", "s1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "OPERATOR_KEY_SALT", "POSITION_TREES_DIR", "LOG_FORMAT", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
}
