// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rubric implements the weighted scoring engine.

# Scoring

A rubric is a fixed tree of categories and weighted criteria. A raw
score is normalized linearly onto [0,1] and scaled by the criterion
weight:

	weighted, total := rub.Score(map[string]float64{"Security Compliance": 85, ...})

Weights sum to 100 by construction, so totals lie in [0,100]. Validate
asserts the sum (within 0.01) along with name uniqueness.

# Scale Variants

Deployments run one of two raw input ranges, never both:

	ScaleHundred  0-100 in steps of 5, form default 70
	ScaleFive     1-5 ordinal, form default 3

Normalization divides by the scale maximum (raw/100 or raw/5). Raw
scores outside the range are clamped, so scoring has no error paths.

# Classification

Totals map to a recommendation band with inclusive lower bounds:

	total >= 75  Recommend (green)
	total >= 60  Conditional (orange)
	otherwise    Reject (red)

# Configuration

Load layers the compiled-in default rubric, an optional YAML file, and
TALLY_-prefixed environment variables:

	rub, err := rubric.Load(cfg.RubricFile)

A YAML rubric file looks like:

	scale: "0-100"
	categories:
	  - name: Delivery
	    criteria:
	      - name: Ships on time
	        weight: 60
	  - name: Quality
	    criteria:
	      - name: Defect rate
	        weight: 40
*/
package rubric
