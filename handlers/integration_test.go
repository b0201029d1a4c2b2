// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/party-positions/models"
	"github.com/danielhkuo/party-positions/positions"
	"github.com/danielhkuo/party-positions/store"
	"github.com/danielhkuo/party-positions/testutil"
)

// TestFullRegistrationWorkflow tests the complete end-to-end workflow:
// 1. Walk the form options down to a position
// 2. Build the path
// 3. Record the candidacy
// 4. Reload it for editing
// 5. Move it to another office
// 6. Check the report
// 7. Withdraw it
func TestFullRegistrationWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	catalog := testutil.GetTestCatalog(t)
	st := store.NewParticipationStore(conn)

	positionHandler := NewPositionHandler(catalog)
	participationHandler := NewParticipationHandler(st, catalog, cfg)
	reportsHandler := NewReportsHandler(st, catalog)

	// Step 1: Walk the options
	steps := []struct {
		query     string
		wantState positions.State
	}{
		{"", positions.NoCategory},
		{"category=NATIONAL_EXECUTIVE_COMMITTEE", positions.CategorySelected},
		{"category=NATIONAL_EXECUTIVE_COMMITTEE&subcategory=LEAGUES", positions.PositionSelected},
		{"category=NATIONAL_EXECUTIVE_COMMITTEE&subcategory=LEAGUES&nested_category=YOUTH", positions.NestedCategorySelected},
	}
	var sel positions.Selection
	for i, s := range steps {
		w := httptest.NewRecorder()
		positionHandler.GetOptions(w, optionsRequest("INTERNAL_PARTY", "NATIONAL", s.query))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 1.%d - Options failed: %d - %s", i, w.Code, w.Body.String())
		}
		var resp models.OptionsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Step.State != s.wantState {
			t.Fatalf("Step 1.%d - Expected %s, got %s", i, s.wantState, resp.Step.State)
		}
		sel = resp.Selection
	}
	if sel.Position != "" || sel.PositionLocked {
		t.Fatalf("Step 1 - Expected nested choice to clear the locked position, got %+v", sel)
	}
	sel.Position = "SECRETARY"

	// Step 2: Build the path
	w := httptest.NewRecorder()
	positionHandler.BuildPath(w, testutil.MakeRequest("POST", "/positions/build", sel, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Build failed: %d - %s", w.Code, w.Body.String())
	}
	var built positions.Resolved
	testutil.AssertJSON(t, w, &built)
	wantPath := "INTERNAL_PARTY.NATIONAL.NATIONAL_EXECUTIVE_COMMITTEE.LEAGUES.YOUTH.SECRETARY"
	if built.Path != wantPath {
		t.Fatalf("Step 2 - Expected %s, got %s", wantPath, built.Path)
	}

	// Step 3: Record the candidacy
	created := createParticipation(t, participationHandler, models.ParticipationRequest{
		CandidateName: "Moses Ochieng",
		Selection:     sel,
	})
	if created.PositionPath != wantPath {
		t.Fatalf("Step 3 - Expected %s, got %s", wantPath, created.PositionPath)
	}
	t.Logf("Step 3 - Created participation: %s", created.ID)

	// Step 4: Reload for editing
	w = httptest.NewRecorder()
	participationHandler.Get(w, getRequest(created.ID))
	var detail models.ParticipationDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.Edit == nil || detail.Edit.Selection == nil || *detail.Edit.Selection != sel {
		t.Fatalf("Step 4 - Expected edit state %+v, got %+v", sel, detail.Edit)
	}

	// Step 5: Move to the leagues coordinator
	moved := models.ParticipationRequest{
		CandidateName: "Moses Ochieng",
		Selection: positions.Selection{
			ElectionType: positions.InternalParty,
			Level:        positions.LevelNational,
			Category:     "NATIONAL_EXECUTIVE_COMMITTEE",
			Subcategory:  "LEAGUES",
			Position:     "LEAGUES_COORDINATOR",
		},
	}
	w = httptest.NewRecorder()
	participationHandler.Update(w, updateRequest(created.ID, moved, testutil.OperatorHeaders(cfg)))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Update failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Check the report
	w = httptest.NewRecorder()
	reportsHandler.PositionReport(w, testutil.MakeRequest("GET", "/reports/positions?election_type=INTERNAL_PARTY&level=NATIONAL", nil, nil))
	var report models.PositionReport
	testutil.AssertJSON(t, w, &report)
	if report.Total != 1 || len(report.Stale) != 0 {
		t.Fatalf("Step 6 - Unexpected report totals: %+v", report)
	}
	for _, c := range report.Positions {
		want := 0
		if c.PositionPath == "INTERNAL_PARTY.NATIONAL.NATIONAL_EXECUTIVE_COMMITTEE.LEAGUES.LEAGUES_COORDINATOR" {
			want = 1
		}
		if c.Candidates != want {
			t.Errorf("Step 6 - %s: expected %d candidates, got %d", c.PositionPath, want, c.Candidates)
		}
	}

	// Step 7: Withdraw
	req := testutil.MakeRequest("DELETE", "/participations/"+created.ID, nil, testutil.OperatorHeaders(cfg))
	req.SetPathValue("id", created.ID)
	w = httptest.NewRecorder()
	participationHandler.Delete(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 7 - Delete failed: %d - %s", w.Code, w.Body.String())
	}
}
