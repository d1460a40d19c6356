// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/rubric"
)

// Aggregate computes dashboard statistics over a record set, normally
// the output of Reduce: voter count, mean total score, classification
// of the mean with its color code, a per-classification tally, and each
// category's achievement percentage (mean achieved points divided by
// the category's maximum weight).
//
// An empty input yields a zero-count summary with every category at 0%,
// which the dashboard renders as its waiting state.
func Aggregate(recs []models.VoteRecord, rub *rubric.Rubric) models.Summary {
	s := models.Summary{
		ClassificationCounts: make(map[string]int),
		Categories:           make([]models.CategoryAchievement, 0, len(rub.Categories)),
	}
	s.Count = len(recs)

	var sum float64
	for _, r := range recs {
		sum += r.Total
		s.ClassificationCounts[rubric.Classify(r.Total)]++
	}
	if s.Count > 0 {
		s.MeanScore = sum / float64(s.Count)
		s.Classification = rubric.Classify(s.MeanScore)
		s.Color = rubric.Color(s.Classification)
	}

	for _, cat := range rub.Categories {
		ach := models.CategoryAchievement{Category: cat.Name, Weight: cat.Weight()}
		if s.Count > 0 && ach.Weight > 0 {
			var achieved float64
			for _, r := range recs {
				for _, cr := range cat.Criteria {
					achieved += r.Scores[cr.Name]
				}
			}
			ach.Percent = achieved / float64(s.Count) / ach.Weight * 100
		}
		s.Categories = append(s.Categories, ach)
	}

	return s
}
