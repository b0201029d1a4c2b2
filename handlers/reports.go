// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/party-positions/middleware"
	"github.com/danielhkuo/party-positions/models"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
)

type ReportsHandler struct {
	store   *store.ParticipationStore
	catalog *positions.Catalog
}

func NewReportsHandler(st *store.ParticipationStore, catalog *positions.Catalog) *ReportsHandler {
	return &ReportsHandler{store: st, catalog: catalog}
}

// PositionReport handles GET /reports/positions?election_type=&level=
func (h *ReportsHandler) PositionReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	et := positions.ElectionType(q.Get("election_type"))
	if et == "" {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "election_type", "election_type is required")
		return
	}
	tree, err := h.catalog.Tree(et)
	if err != nil {
		writeError(w, err, "load position tree")
		return
	}

	level := positions.Level(q.Get("level"))
	if level != "" {
		if _, ok := tree.Level(level); !ok {
			middleware.FieldErrorResponse(w, http.StatusBadRequest, "level", "level is not part of "+string(et))
			return
		}
	}

	rows, err := h.store.List(r.Context(), store.ListFilter{
		ElectionType: string(et),
		Level:        string(level),
	})
	if err != nil {
		writeError(w, err, "load participations")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, buildReport(tree, level, rows))
}

type tally struct {
	count int
	last  time.Time
}

// buildReport lists every office of the tree (or of one level) in tree
// order with its candidate count. Stored paths the tree no longer has are
// reported separately.
func buildReport(tree *positions.Tree, level positions.Level, rows []models.Participation) models.PositionReport {
	byPath := make(map[string]*tally)
	for _, p := range rows {
		t, ok := byPath[p.PositionPath]
		if !ok {
			t = &tally{}
			byPath[p.PositionPath] = t
		}
		t.count++
		if p.UpdatedAt.After(t.last) {
			t.last = p.UpdatedAt
		}
	}

	report := models.PositionReport{
		ElectionType: tree.ElectionType(),
		Level:        level,
		Positions:    []models.PositionCount{},
		Stale:        []models.PositionCount{},
	}

	prefix := string(tree.ElectionType()) + positions.Separator
	tree.Walk(func(l positions.Level, keys []string, n *positions.Node) {
		if !n.IsLeaf() || (level != "" && l != level) {
			return
		}
		path := prefix + string(l) + positions.Separator + strings.Join(keys, positions.Separator)
		c := positionCount(path, byPath[path])
		report.Positions = append(report.Positions, c)
		report.Total += c.Candidates
		if c.Candidates == 0 {
			report.Vacant++
		}
		delete(byPath, path)
	})

	for path, t := range byPath {
		c := positionCount(path, t)
		report.Stale = append(report.Stale, c)
		report.Total += c.Candidates
	}
	sort.Slice(report.Stale, func(i, j int) bool {
		return report.Stale[i].PositionPath < report.Stale[j].PositionPath
	})

	report.TotalText = humanize.Comma(int64(report.Total))
	return report
}

func positionCount(path string, t *tally) models.PositionCount {
	c := models.PositionCount{
		PositionPath: path,
		Position:     path[strings.LastIndex(path, positions.Separator)+1:],
	}
	if t == nil {
		c.CandidatesText = "0"
		return c
	}

	last := t.last
	c.Candidates = t.count
	c.CandidatesText = humanize.Comma(int64(t.count))
	c.LastUpdated = &last
	c.LastUpdatedText = humanize.Time(last)
	return c
}
