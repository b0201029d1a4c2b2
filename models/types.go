// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/party-positions/positions"
)

// Header names carried by operator writes
const (
	HeaderOperatorID  = "X-Operator-ID"
	HeaderOperatorKey = "X-Operator-Key"
)

// Request types

type ParsePathRequest struct {
	PositionPath string `json:"position_path"`
}

// ParticipationRequest records a candidacy. The office is given either as a
// selection or, for imports, as a ready-made position_path.
type ParticipationRequest struct {
	CandidateName string `json:"candidate_name"`
	PositionPath  string `json:"position_path,omitempty"`
	positions.Selection
}

// Response types

type ElectionTypeInfo struct {
	ElectionType positions.ElectionType `json:"election_type"`
	Levels       []positions.Level      `json:"levels"`
}

type ElectionTypesResponse struct {
	ElectionTypes []ElectionTypeInfo `json:"election_types"`
}

// OptionsResponse is one step of the position form: what can be chosen next
// and the selection as it stands after auto-selection.
type OptionsResponse struct {
	Selection positions.Selection `json:"selection"`
	Step      positions.Step      `json:"step"`
}

// ParsePathResponse restores an edit form from a stored path. When the path
// no longer resolves, Inconsistent is set and RawPath carries it unchanged.
type ParsePathResponse struct {
	Selection     *positions.Selection `json:"selection,omitempty"`
	TerminalField positions.Field      `json:"terminal_field,omitempty"`
	Inconsistent  bool                 `json:"inconsistent,omitempty"`
	RawPath       string               `json:"raw_path,omitempty"`
	Reason        string               `json:"reason,omitempty"`
}

type ParticipationDetail struct {
	Participation Participation      `json:"participation"`
	Edit          *ParsePathResponse `json:"edit"`
}

type ListParticipationsResponse struct {
	Participations []Participation `json:"participations"`
	Count          int             `json:"count"`
}

// Domain types

// Participation is one candidate standing for one office. PositionPath is
// the source of truth; the other office fields are denormalized from it.
type Participation struct {
	ID             string    `json:"id" db:"id"`
	CandidateName  string    `json:"candidate_name" db:"candidate_name"`
	ElectionType   string    `json:"election_type" db:"election_type"`
	Level          string    `json:"level" db:"level"`
	PositionPath   string    `json:"position_path" db:"position_path"`
	Category       string    `json:"category" db:"category"`
	Subcategory    string    `json:"subcategory,omitempty" db:"subcategory"`
	NestedCategory string    `json:"nested_category,omitempty" db:"nested_category"`
	Position       string    `json:"position" db:"position"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Report types

type PositionCount struct {
	PositionPath    string     `json:"position_path"`
	Position        string     `json:"position"`
	Candidates      int        `json:"candidates"`
	CandidatesText  string     `json:"candidates_text"`
	LastUpdated     *time.Time `json:"last_updated,omitempty"`
	LastUpdatedText string     `json:"last_updated_text,omitempty"`
}

// PositionReport counts candidates per office. Offices with no candidates
// are listed too; Stale holds stored paths the current tree no longer has.
type PositionReport struct {
	ElectionType positions.ElectionType `json:"election_type"`
	Level        positions.Level        `json:"level,omitempty"`
	Total        int                    `json:"total"`
	TotalText    string                 `json:"total_text"`
	Vacant       int                    `json:"vacant"`
	Positions    []PositionCount        `json:"positions"`
	Stale        []PositionCount        `json:"stale"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
