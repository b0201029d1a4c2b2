// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/party-positions/db"
	"github.com/danielhkuo/party-positions/models"
)

func setupStore(t *testing.T) *ParticipationStore {
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

	s := NewParticipationStore(conn)
	clock := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func newParticipation(name, path, category, subcategory, nested, position string) *models.Participation {
	return &models.Participation{
		CandidateName:  name,
		ElectionType:   "PRIMARIES",
		Level:          "VILLAGE_CELL",
		PositionPath:   path,
		Category:       category,
		Subcategory:    subcategory,
		NestedCategory: nested,
		Position:       position,
		CreatedBy:      "registrar-01",
	}
}

func TestParticipationStore_CreateGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	p := newParticipation("Alice", "PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE.YOUTH.CHAIRPERSON", "SIG_COMMITTEE", "YOUTH", "", "CHAIRPERSON")
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Expected id to be assigned")
	}
	if p.CreatedAt.IsZero() || !p.UpdatedAt.Equal(p.CreatedAt) {
		t.Errorf("Expected matching timestamps, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.PositionPath != p.PositionPath || got.Subcategory != "YOUTH" || got.NestedCategory != "" {
		t.Errorf("Unexpected row: %+v", got)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", p.CreatedAt, got.CreatedAt)
	}
}

func TestParticipationStore_GetNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestParticipationStore_Update(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	p := newParticipation("Bob", "PRIMARIES.VILLAGE_CELL.LC1", "LC1", "", "", "LC1")
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	created := p.CreatedAt

	update := newParticipation("Bob Okello", "PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE.PWD.CHAIRPERSON", "SIG_COMMITTEE", "PWD", "", "CHAIRPERSON")
	update.ID = p.ID
	update.CreatedBy = "someone-else"
	if err := s.Update(ctx, update); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if update.CandidateName != "Bob Okello" || update.Position != "CHAIRPERSON" {
		t.Errorf("Unexpected updated row: %+v", update)
	}
	if update.CreatedBy != "registrar-01" {
		t.Errorf("Expected created_by kept, got %s", update.CreatedBy)
	}
	if !update.CreatedAt.Equal(created) || !update.UpdatedAt.After(created) {
		t.Errorf("Unexpected timestamps: created %v updated %v", update.CreatedAt, update.UpdatedAt)
	}

	missing := newParticipation("Carol", "PRIMARIES.VILLAGE_CELL.LC1", "LC1", "", "", "LC1")
	missing.ID = "missing"
	if err := s.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestParticipationStore_List(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	rows := []*models.Participation{
		newParticipation("A", "PRIMARIES.VILLAGE_CELL.LC1", "LC1", "", "", "LC1"),
		newParticipation("B", "PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE.YOUTH.CHAIRPERSON", "SIG_COMMITTEE", "YOUTH", "", "CHAIRPERSON"),
		newParticipation("C", "PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE.WOMEN.SECRETARY", "SIG_COMMITTEE", "WOMEN", "", "SECRETARY"),
	}
	other := newParticipation("D", "INTERNAL_PARTY.DISTRICT.DISTRICT_CHAIRPERSON", "DISTRICT_CHAIRPERSON", "", "", "DISTRICT_CHAIRPERSON")
	other.ElectionType, other.Level = "INTERNAL_PARTY", "DISTRICT"
	rows = append(rows, other)

	for _, p := range rows {
		if err := s.Create(ctx, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"everything", ListFilter{}, []string{"A", "B", "C", "D"}},
		{"by election type", ListFilter{ElectionType: "PRIMARIES"}, []string{"A", "B", "C"}},
		{"by level", ListFilter{Level: "DISTRICT"}, []string{"D"}},
		{"by path prefix", ListFilter{PathPrefix: "PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE."}, []string{"B", "C"}},
		{"underscore is literal", ListFilter{PathPrefix: "PRIMARIES.VILLAGEXCELL"}, []string{}},
		{"combined", ListFilter{ElectionType: "PRIMARIES", PathPrefix: "PRIMARIES.VILLAGE_CELL.LC1"}, []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			names := []string{}
			for _, p := range got {
				names = append(names, p.CandidateName)
			}
			if fmt.Sprint(names) != fmt.Sprint(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, names)
			}
		})
	}
}

func TestParticipationStore_ListNonASCIIPrefix(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, p := range []*models.Participation{
		newParticipation("A", "PRIMARIES.VILLAGE_CELL.KÄMPALA_ÉAST.CHAIR", "KÄMPALA_ÉAST", "", "", "CHAIR"),
		newParticipation("B", "PRIMARIES.VILLAGE_CELL.KÄMPALA_WEST.CHAIR", "KÄMPALA_WEST", "", "", "CHAIR"),
	} {
		if err := s.Create(ctx, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := s.List(ctx, ListFilter{PathPrefix: "PRIMARIES.VILLAGE_CELL.KÄMPALA_É"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].CandidateName != "A" {
		t.Errorf("Expected only A, got %+v", got)
	}
}

func TestParticipationStore_Delete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	p := newParticipation("Eve", "PRIMARIES.VILLAGE_CELL.LC1", "LC1", "", "", "LC1")
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestParticipationStore_DriverErrors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	defer mockDB.Close()

	s := NewParticipationStore(sqlx.NewDb(mockDB, "sqlmock"))
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO candidate_participation")).WillReturnError(dbErr)
	if err := s.Create(ctx, newParticipation("A", "P.L.C", "C", "", "", "C")); !errors.Is(err, dbErr) {
		t.Errorf("Create: expected wrapped driver error, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM candidate_participation")).WillReturnError(dbErr)
	if _, err := s.Get(ctx, "x"); !errors.Is(err, dbErr) || errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected wrapped driver error, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM candidate_participation")).WillReturnError(dbErr)
	if _, err := s.List(ctx, ListFilter{}); !errors.Is(err, dbErr) {
		t.Errorf("List: expected wrapped driver error, got %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM candidate_participation")).
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := s.Delete(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
