// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rubric

import (
	"errors"
	"fmt"
	"math"

	"github.com/danielhkuo/tallyboard/models"
)

var (
	ErrBadScale           = errors.New("unknown scale variant")
	ErrNoCriteria         = errors.New("rubric has no criteria")
	ErrDuplicateCriterion = errors.New("duplicate criterion name")
	ErrBadWeight          = errors.New("criterion weight must be positive")
	ErrWeightSum          = errors.New("rubric weights must sum to 100")
)

// Classification thresholds. Lower bounds are inclusive.
const (
	RecommendThreshold   = 75.0
	ConditionalThreshold = 60.0
)

// weightSumTolerance absorbs float drift in the weight-sum check.
const weightSumTolerance = 0.01

// Scale is the raw input range a deployment uses. The two variants are
// not interchangeable and must never be mixed within one ledger.
type Scale string

const (
	// ScaleHundred accepts raw scores 0-100 in steps of 5.
	ScaleHundred Scale = "0-100"
	// ScaleFive accepts a 1-5 ordinal raw score.
	ScaleFive Scale = "1-5"
)

func (s Scale) valid() bool {
	return s == ScaleHundred || s == ScaleFive
}

// Min returns the lowest accepted raw score.
func (s Scale) Min() float64 {
	if s == ScaleFive {
		return 1
	}
	return 0
}

// Max returns the highest accepted raw score, which is also the
// normalization divisor.
func (s Scale) Max() float64 {
	if s == ScaleFive {
		return 5
	}
	return 100
}

// Step returns the raw score granularity of the input control.
func (s Scale) Step() float64 {
	if s == ScaleFive {
		return 1
	}
	return 5
}

// DefaultRaw is what the form pre-fills before any interaction.
func (s Scale) DefaultRaw() float64 {
	if s == ScaleFive {
		return 3
	}
	return 70
}

// Clamp forces a raw score into the scale bounds.
func (s Scale) Clamp(raw float64) float64 {
	return math.Min(math.Max(raw, s.Min()), s.Max())
}

// Normalize maps a raw score linearly onto [0,1]. Out-of-range input is
// clamped first; scoring has no failure modes.
func (s Scale) Normalize(raw float64) float64 {
	return s.Clamp(raw) / s.Max()
}

// WeightedScore converts a raw score into the points it contributes to
// the total: normalized(raw) * weight.
func WeightedScore(s Scale, raw, weight float64) float64 {
	return s.Normalize(raw) * weight
}

// Criterion is a single weighted scoring item.
type Criterion struct {
	Name   string  `koanf:"name"`
	Weight float64 `koanf:"weight"`
}

// Category groups criteria; its weight is the sum of its criteria.
type Category struct {
	Name     string      `koanf:"name"`
	Criteria []Criterion `koanf:"criteria"`
}

// Weight returns the category's maximum possible contribution.
func (c Category) Weight() float64 {
	var sum float64
	for _, cr := range c.Criteria {
		sum += cr.Weight
	}
	return sum
}

// Rubric is the fixed hierarchy of weighted criteria a deployment
// scores against. Category weights sum to 100 by construction;
// Validate enforces it.
type Rubric struct {
	Scale      Scale      `koanf:"scale"`
	Categories []Category `koanf:"categories"`
}

// Criteria returns all criteria in rubric order.
func (r *Rubric) Criteria() []Criterion {
	var out []Criterion
	for _, cat := range r.Categories {
		out = append(out, cat.Criteria...)
	}
	return out
}

// CriterionNames returns all criterion names in rubric order. This is
// also the ledger's column order.
func (r *Rubric) CriterionNames() []string {
	var names []string
	for _, cat := range r.Categories {
		for _, cr := range cat.Criteria {
			names = append(names, cr.Name)
		}
	}
	return names
}

// TotalWeight sums every criterion weight.
func (r *Rubric) TotalWeight() float64 {
	var sum float64
	for _, cat := range r.Categories {
		sum += cat.Weight()
	}
	return sum
}

// Validate checks structural soundness and the weight-sum invariant.
func (r *Rubric) Validate() error {
	if !r.Scale.valid() {
		return fmt.Errorf("%w: %q", ErrBadScale, r.Scale)
	}

	seen := make(map[string]bool)
	count := 0
	for _, cat := range r.Categories {
		for _, cr := range cat.Criteria {
			if cr.Name == "" {
				return fmt.Errorf("category %q: criterion with empty name", cat.Name)
			}
			if seen[cr.Name] {
				return fmt.Errorf("%w: %q", ErrDuplicateCriterion, cr.Name)
			}
			seen[cr.Name] = true
			if cr.Weight <= 0 {
				return fmt.Errorf("%w: %q has weight %v", ErrBadWeight, cr.Name, cr.Weight)
			}
			count++
		}
	}
	if count == 0 {
		return ErrNoCriteria
	}

	if total := r.TotalWeight(); math.Abs(total-100) > weightSumTolerance {
		return fmt.Errorf("%w: got %v", ErrWeightSum, total)
	}

	return nil
}

// Score computes the weighted score for each criterion and the total.
// Missing criteria default to the scale's pre-fill value, matching what
// an untouched form submits. Unknown names in raw are ignored; callers
// validate them before scoring.
func (r *Rubric) Score(raw map[string]float64) (map[string]float64, float64) {
	weighted := make(map[string]float64, len(raw))
	var total float64
	for _, cat := range r.Categories {
		for _, cr := range cat.Criteria {
			v, ok := raw[cr.Name]
			if !ok {
				v = r.Scale.DefaultRaw()
			}
			ws := WeightedScore(r.Scale, v, cr.Weight)
			weighted[cr.Name] = ws
			total += ws
		}
	}
	return weighted, total
}

// Classify maps a total score to its recommendation band.
func Classify(total float64) string {
	switch {
	case total >= RecommendThreshold:
		return models.ClassRecommend
	case total >= ConditionalThreshold:
		return models.ClassConditional
	default:
		return models.ClassReject
	}
}

// Color returns the dashboard color code for a classification.
func Color(classification string) string {
	switch classification {
	case models.ClassRecommend:
		return "green"
	case models.ClassConditional:
		return "orange"
	default:
		return "red"
	}
}
