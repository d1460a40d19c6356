// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/tallyboard/cliparse"
	"github.com/danielhkuo/tallyboard/ledger"
	"github.com/danielhkuo/tallyboard/metrics"
	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/rubric"
)

// NewTestRubric returns the compiled-in default rubric, validated.
func NewTestRubric(t *testing.T) *rubric.Rubric {
	t.Helper()

	rub := rubric.Default()
	if err := rub.Validate(); err != nil {
		t.Fatalf("default rubric invalid: %v", err)
	}
	return rub
}

// NewTestLedger creates a ledger backed by a fresh file in a temp dir.
// The file does not exist until the first append.
func NewTestLedger(t *testing.T, rub *rubric.Rubric) *ledger.Ledger {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vote_data.csv")
	return ledger.New(path, rub.CriterionNames())
}

// ReopenLedger builds a fresh ledger over an existing ledger's data
// file, simulating a server restart.
func ReopenLedger(led *ledger.Ledger, rub *rubric.Rubric) *ledger.Ledger {
	return ledger.New(led.Path(), rub.CriterionNames())
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4152,
		DataFile:       "vote_data.csv",
		BaseURL:        "http://localhost:4152",
		RefreshSeconds: 3,
	}
}

// NewTestMetrics returns metrics on a private registry so parallel
// tests never collide on registration.
func NewTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// AllScores builds a raw-score map with every rubric criterion at raw.
func AllScores(rub *rubric.Rubric, raw float64) map[string]float64 {
	scores := make(map[string]float64)
	for _, name := range rub.CriterionNames() {
		scores[name] = raw
	}
	return scores
}

// SeedVote appends a record with every criterion scored raw at the
// given time, and returns the record as persisted.
func SeedVote(t *testing.T, led *ledger.Ledger, rub *rubric.Rubric, project, voter string, raw float64, at time.Time) models.VoteRecord {
	t.Helper()

	weighted, total := rub.Score(AllScores(rub, raw))
	rec := models.VoteRecord{
		Project:     project,
		Voter:       voter,
		SubmittedAt: at,
		Scores:      weighted,
		Total:       total,
	}
	if err := led.Append(rec); err != nil {
		t.Fatalf("Failed to seed vote: %v", err)
	}

	rec.SubmittedAt = at.Truncate(time.Second)
	return rec
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
