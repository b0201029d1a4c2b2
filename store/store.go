// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/party-positions/models"
)

var ErrNotFound = errors.New("participation not found")

// ListFilter narrows List. Empty fields match everything; PathPrefix is a
// plain string prefix of position_path.
type ListFilter struct {
	ElectionType string
	Level        string
	PathPrefix   string
}

// ParticipationStore persists candidate participations. Queries are written
// with ? placeholders and rebound for the connected driver.
type ParticipationStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewParticipationStore(db *sqlx.DB) *ParticipationStore {
	return &ParticipationStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const columns = `id, candidate_name, election_type, level, position_path,
	category, subcategory, nested_category, position, created_by, created_at, updated_at`

// Create assigns an id and timestamps to p and inserts it.
func (s *ParticipationStore) Create(ctx context.Context, p *models.Participation) error {
	p.ID = uuid.NewString()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO candidate_participation (`+columns+`)
		VALUES (:id, :candidate_name, :election_type, :level, :position_path,
			:category, :subcategory, :nested_category, :position, :created_by, :created_at, :updated_at)
	`, p)
	if err != nil {
		return fmt.Errorf("failed to insert participation: %w", err)
	}
	return nil
}

// Update rewrites the candidate and office of an existing participation.
// CreatedBy and CreatedAt are kept; p is refreshed from the stored row.
func (s *ParticipationStore) Update(ctx context.Context, p *models.Participation) error {
	p.UpdatedAt = s.now()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE candidate_participation
		SET candidate_name = ?, election_type = ?, level = ?, position_path = ?,
			category = ?, subcategory = ?, nested_category = ?, position = ?, updated_at = ?
		WHERE id = ?
	`), p.CandidateName, p.ElectionType, p.Level, p.PositionPath,
		p.Category, p.Subcategory, p.NestedCategory, p.Position, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update participation: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

func (s *ParticipationStore) Get(ctx context.Context, id string) (models.Participation, error) {
	var p models.Participation
	err := s.db.GetContext(ctx, &p, s.db.Rebind(`
		SELECT `+columns+`
		FROM candidate_participation
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Participation{}, ErrNotFound
	}
	if err != nil {
		return models.Participation{}, fmt.Errorf("failed to get participation: %w", err)
	}
	return p, nil
}

// List returns matching participations, oldest first.
func (s *ParticipationStore) List(ctx context.Context, f ListFilter) ([]models.Participation, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.ElectionType != "" {
		where = append(where, "election_type = ?")
		args = append(args, f.ElectionType)
	}
	if f.Level != "" {
		where = append(where, "level = ?")
		args = append(args, f.Level)
	}
	if f.PathPrefix != "" {
		// substr instead of LIKE: keys contain '_'. substr counts characters.
		where = append(where, "substr(position_path, 1, ?) = ?")
		args = append(args, utf8.RuneCountInString(f.PathPrefix), f.PathPrefix)
	}

	query := `SELECT ` + columns + ` FROM candidate_participation`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	out := []models.Participation{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return out, nil
}

func (s *ParticipationStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM candidate_participation WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete participation: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
