// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Fetch the rubric
// 2. Three reviewers submit votes for a project
// 3. One reviewer changes their mind and resubmits
// 4. Dashboard summary reflects the latest vote per reviewer
// 5. History view still shows every submission
// 6. Export downloads a spreadsheet-ready CSV
// 7. Clearing the project empties it
func TestFullVotingWorkflow(t *testing.T) {
	rub := testutil.NewTestRubric(t)
	led := testutil.NewTestLedger(t, rub)
	cfg := testutil.GetTestConfig()
	m := testutil.NewTestMetrics()

	votingHandler := NewVotingHandler(led, rub, cfg, m)
	dashboardHandler := NewDashboardHandler(led, rub, cfg, m)

	// Step 1: Fetch the rubric the voting form renders from
	req := httptest.NewRequest("GET", "/rubric", nil)
	w := httptest.NewRecorder()
	votingHandler.GetRubric(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Get rubric failed: %d - %s", w.Code, w.Body.String())
	}

	var rubricResp models.RubricResponse
	json.NewDecoder(w.Body).Decode(&rubricResp)
	if len(rubricResp.Categories) == 0 {
		t.Fatal("Step 1 - Rubric has no categories")
	}
	t.Logf("Step 1 - Rubric loaded: %d categories", len(rubricResp.Categories))

	// Step 2: Three reviewers vote
	// Alice: all max, Bob: all midpoint, Charlie: all low
	votes := []struct {
		voter string
		raw   float64
	}{
		{"Alice", 100},
		{"Bob", 70},
		{"Charlie", 20},
	}

	for _, v := range votes {
		body, _ := json.Marshal(models.SubmitVoteRequest{
			Project: "demo-day",
			Voter:   v.voter,
			Scores:  testutil.AllScores(rub, v.raw),
		})
		req := httptest.NewRequest("POST", "/votes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		votingHandler.Submit(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Vote by %s failed: %d - %s", v.voter, w.Code, w.Body.String())
		}
	}
	t.Logf("Step 2 - %d votes submitted", len(votes))

	// Step 3: Charlie reconsiders and resubmits much higher
	body, _ := json.Marshal(models.SubmitVoteRequest{
		Project: "demo-day",
		Voter:   "Charlie",
		Scores:  testutil.AllScores(rub, 90),
	})
	req = httptest.NewRequest("POST", "/votes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	votingHandler.Submit(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 3 - Resubmission failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 3 - Charlie resubmitted")

	// Step 4: Summary counts 3 reviewers using Charlie's latest vote.
	// Mean of 100, 70, 90 is ~86.67: Recommend.
	req = httptest.NewRequest("GET", "/projects/demo-day/summary", nil)
	req.SetPathValue("project", "demo-day")
	w = httptest.NewRecorder()
	dashboardHandler.ProjectSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Summary failed: %d - %s", w.Code, w.Body.String())
	}

	var summaryResp models.ProjectSummaryResponse
	json.NewDecoder(w.Body).Decode(&summaryResp)

	if summaryResp.Summary.Count != 3 {
		t.Errorf("Step 4 - Expected 3 reviewers, got %d", summaryResp.Summary.Count)
	}
	if math.Abs(summaryResp.Summary.MeanScore-260.0/3) > 1e-9 {
		t.Errorf("Step 4 - Expected mean %.4f, got %v", 260.0/3, summaryResp.Summary.MeanScore)
	}
	if summaryResp.Summary.Classification != models.ClassRecommend {
		t.Errorf("Step 4 - Expected Recommend, got %q", summaryResp.Summary.Classification)
	}
	t.Logf("Step 4 - Summary: %d reviewers, mean %.2f (%s)",
		summaryResp.Summary.Count, summaryResp.Summary.MeanScore, summaryResp.Summary.Classification)

	// Step 5: History keeps all 4 submissions
	req = httptest.NewRequest("GET", "/projects/demo-day/votes?view=history", nil)
	req.SetPathValue("project", "demo-day")
	w = httptest.NewRecorder()
	dashboardHandler.GetVotes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - History failed: %d - %s", w.Code, w.Body.String())
	}

	var votesResp models.VotesResponse
	json.NewDecoder(w.Body).Decode(&votesResp)
	if votesResp.Count != 4 {
		t.Errorf("Step 5 - Expected 4 history entries, got %d", votesResp.Count)
	}
	t.Logf("Step 5 - History holds %d entries", votesResp.Count)

	// Step 6: Export is BOM-prefixed CSV with one row per reviewer
	req = httptest.NewRequest("GET", "/projects/demo-day/export", nil)
	req.SetPathValue("project", "demo-day")
	w = httptest.NewRecorder()
	dashboardHandler.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Export failed: %d - %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Step 6 - Export missing UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 4 { // header + 3 reviewers
		t.Errorf("Step 6 - Expected 4 CSV lines, got %d", len(lines))
	}
	t.Log("Step 6 - Export generated")

	// Step 7: Clear the project
	req = httptest.NewRequest("DELETE", "/projects/demo-day/votes?confirm=true", nil)
	req.SetPathValue("project", "demo-day")
	w = httptest.NewRecorder()
	dashboardHandler.ClearProject(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Clear failed: %d - %s", w.Code, w.Body.String())
	}

	recs, err := led.History("demo-day")
	if err != nil {
		t.Fatalf("Step 7 - Ledger read failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Step 7 - Expected empty project, got %d records", len(recs))
	}

	t.Log("Integration test completed successfully!")
}

// TestMultiProjectIsolation verifies votes never leak across projects
func TestMultiProjectIsolation(t *testing.T) {
	rub := testutil.NewTestRubric(t)
	led := testutil.NewTestLedger(t, rub)
	cfg := testutil.GetTestConfig()
	m := testutil.NewTestMetrics()

	votingHandler := NewVotingHandler(led, rub, cfg, m)
	dashboardHandler := NewDashboardHandler(led, rub, cfg, m)

	// Same reviewer votes differently on two projects
	for _, p := range []struct {
		project string
		raw     float64
	}{
		{"alpha", 100},
		{"beta", 20},
	} {
		body, _ := json.Marshal(models.SubmitVoteRequest{
			Project: p.project,
			Voter:   "Alice",
			Scores:  testutil.AllScores(rub, p.raw),
		})
		req := httptest.NewRequest("POST", "/votes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		votingHandler.Submit(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Vote for %s failed: %d - %s", p.project, w.Code, w.Body.String())
		}
	}

	for _, tt := range []struct {
		project        string
		classification string
	}{
		{"alpha", models.ClassRecommend},
		{"beta", models.ClassReject},
	} {
		req := httptest.NewRequest("GET", "/projects/"+tt.project+"/summary", nil)
		req.SetPathValue("project", tt.project)
		w := httptest.NewRecorder()
		dashboardHandler.ProjectSummary(w, req)

		var resp models.ProjectSummaryResponse
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.Summary.Count != 1 {
			t.Errorf("Project %s: expected 1 reviewer, got %d", tt.project, resp.Summary.Count)
		}
		if resp.Summary.Classification != tt.classification {
			t.Errorf("Project %s: expected %s, got %q", tt.project, tt.classification, resp.Summary.Classification)
		}
	}
}

// TestVotesSurviveRestart verifies a new ledger over the same file sees
// everything a previous instance wrote.
func TestVotesSurviveRestart(t *testing.T) {
	rub := testutil.NewTestRubric(t)
	led := testutil.NewTestLedger(t, rub)
	cfg := testutil.GetTestConfig()
	m := testutil.NewTestMetrics()

	votingHandler := NewVotingHandler(led, rub, cfg, m)

	body, _ := json.Marshal(models.SubmitVoteRequest{
		Project:  "alpha",
		Voter:    "Alice",
		Scores:   testutil.AllScores(rub, 100),
		Feedback: "ship it",
	})
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	votingHandler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Simulate a restart: fresh handler over the same data file.
	reopened := testutil.ReopenLedger(led, rub)
	dashboardHandler := NewDashboardHandler(reopened, rub, cfg, m)

	req = httptest.NewRequest("GET", "/projects/alpha/votes?view=history", nil)
	req.SetPathValue("project", "alpha")
	w = httptest.NewRecorder()
	dashboardHandler.GetVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VotesResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Count != 1 {
		t.Fatalf("Expected 1 vote after reopen, got %d", resp.Count)
	}
	if resp.Votes[0].Feedback != "ship it" {
		t.Errorf("Feedback lost across reopen: %q", resp.Votes[0].Feedback)
	}
}
