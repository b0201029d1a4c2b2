// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/party-positions/auth"
	"github.com/danielhkuo/party-positions/cliparse"
	"github.com/danielhkuo/party-positions/db"
	"github.com/danielhkuo/party-positions/models"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
)

// TestOperator is the operator id used by request helpers
const TestOperator = "registrar-01"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; it is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn.DB); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     "file::memory:",
		DatabaseType:    "sqlite",
		OperatorKeySalt: "test-operator-salt",
		LogFormat:       "text",
	}
}

// GetTestCatalog returns the catalog of shipped position trees
func GetTestCatalog(t *testing.T) *positions.Catalog {
	t.Helper()

	c, err := positions.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load position catalog: %v", err)
	}
	return c
}

// OperatorHeaders returns valid operator credentials for TestOperator
func OperatorHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		models.HeaderOperatorID:  TestOperator,
		models.HeaderOperatorKey: auth.GenerateOperatorKey(TestOperator, cfg.OperatorKeySalt),
	}
}

// CreateTestParticipation builds the path for sel and stores a candidacy
func CreateTestParticipation(t *testing.T, conn *sqlx.DB, catalog *positions.Catalog, name string, sel positions.Selection) models.Participation {
	t.Helper()

	res, err := catalog.Build(sel)
	if err != nil {
		t.Fatalf("Failed to build test position path: %v", err)
	}

	p := models.Participation{
		CandidateName:  name,
		ElectionType:   string(sel.ElectionType),
		Level:          string(sel.Level),
		PositionPath:   res.Path,
		Category:       res.Category,
		Subcategory:    res.Subcategory,
		NestedCategory: res.NestedCategory,
		Position:       res.Position,
		CreatedBy:      TestOperator,
	}
	if err := store.NewParticipationStore(conn).Create(t.Context(), &p); err != nil {
		t.Fatalf("Failed to create test participation: %v", err)
	}
	return p
}

// InsertRawParticipation stores a row with an unchecked position path, as
// left behind by an older configuration
func InsertRawParticipation(t *testing.T, conn *sqlx.DB, electionType, level, path string) string {
	t.Helper()

	p := models.Participation{
		CandidateName: "Legacy Candidate",
		ElectionType:  electionType,
		Level:         level,
		PositionPath:  path,
		Category:      "UNKNOWN",
		Position:      "UNKNOWN",
		CreatedBy:     TestOperator,
	}
	if err := store.NewParticipationStore(conn).Create(t.Context(), &p); err != nil {
		t.Fatalf("Failed to create raw participation: %v", err)
	}
	return p.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
