// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/rubric"
)

func recordAt(rub *rubric.Rubric, voter string, raw float64, at time.Time) models.VoteRecord {
	scores := make(map[string]float64)
	for _, name := range rub.CriterionNames() {
		scores[name] = raw
	}
	weighted, total := rub.Score(scores)
	return models.VoteRecord{
		Project:     "alpha",
		Voter:       voter,
		SubmittedAt: at,
		Scores:      weighted,
		Total:       total,
	}
}

func TestAggregateEmpty(t *testing.T) {
	rub := rubric.Default()

	s := Aggregate(nil, rub)

	if s.Count != 0 {
		t.Errorf("expected count 0, got %d", s.Count)
	}
	if s.Classification != "" {
		t.Errorf("empty summary should have no classification, got %q", s.Classification)
	}
	if len(s.Categories) != len(rub.Categories) {
		t.Fatalf("expected %d categories, got %d", len(rub.Categories), len(s.Categories))
	}
	for _, cat := range s.Categories {
		if cat.Percent != 0 {
			t.Errorf("category %q should be 0%%, got %v", cat.Category, cat.Percent)
		}
	}
}

func TestAggregateAllMax(t *testing.T) {
	rub := rubric.Default()
	now := time.Now()

	recs := []models.VoteRecord{
		recordAt(rub, "Alice", 100, now),
		recordAt(rub, "Bob", 100, now),
	}

	s := Aggregate(recs, rub)

	if s.Count != 2 {
		t.Errorf("expected count 2, got %d", s.Count)
	}
	if math.Abs(s.MeanScore-100) > 1e-9 {
		t.Errorf("expected mean 100, got %v", s.MeanScore)
	}
	if s.Classification != models.ClassRecommend || s.Color != "green" {
		t.Errorf("expected Recommend/green, got %s/%s", s.Classification, s.Color)
	}
	for _, cat := range s.Categories {
		if math.Abs(cat.Percent-100) > 1e-9 {
			t.Errorf("category %q should be at 100%%, got %v", cat.Category, cat.Percent)
		}
	}
}

func TestAggregateHalfScores(t *testing.T) {
	rub := rubric.Default()

	recs := []models.VoteRecord{recordAt(rub, "Alice", 50, time.Now())}
	s := Aggregate(recs, rub)

	if math.Abs(s.MeanScore-50) > 1e-9 {
		t.Errorf("expected mean 50, got %v", s.MeanScore)
	}
	for _, cat := range s.Categories {
		if math.Abs(cat.Percent-50) > 1e-9 {
			t.Errorf("category %q achievement should be 50%%, got %v", cat.Category, cat.Percent)
		}
	}
}

func TestAggregateClassificationCounts(t *testing.T) {
	rub := rubric.Default()
	now := time.Now()

	recs := []models.VoteRecord{
		recordAt(rub, "Alice", 100, now), // 100.0 Recommend
		recordAt(rub, "Bob", 70, now),    // 70.0 Conditional
		recordAt(rub, "Carol", 0, now),   // 0.0 Reject
	}

	s := Aggregate(recs, rub)

	expected := map[string]int{
		models.ClassRecommend:   1,
		models.ClassConditional: 1,
		models.ClassReject:      1,
	}
	for class, n := range expected {
		if s.ClassificationCounts[class] != n {
			t.Errorf("expected %d %s votes, got %d", n, class, s.ClassificationCounts[class])
		}
	}

	// Mean of 100, 70, 0 is ~56.67: the project overall reads Reject.
	if s.Classification != models.ClassReject {
		t.Errorf("expected overall Reject, got %s", s.Classification)
	}
}
