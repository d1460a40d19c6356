// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rubric

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for rubric environment overrides, e.g.
// TALLY_SCALE=1-5.
const envPrefix = "TALLY_"

// Default returns the compiled-in rubric: the AI software evaluation
// criteria the service originally shipped with. Weights sum to 100.
func Default() *Rubric {
	return &Rubric{
		Scale: ScaleHundred,
		Categories: []Category{
			{
				Name: "Clinical Excellence & Safety",
				Criteria: []Criterion{
					{Name: "Model Accuracy & Clinical Concordance", Weight: 14.0},
					{Name: "Outlier Detection & Risk Alerts", Weight: 10.5},
					{Name: "Patient Safety Safeguards", Weight: 10.5},
				},
			},
			{
				Name: "System Integration & Security",
				Criteria: []Criterion{
					{Name: "Hospital System Integration", Weight: 8.75},
					{Name: "Security Compliance", Weight: 8.75},
					{Name: "Maintenance & Update Process", Weight: 7.5},
				},
			},
			{
				Name: "Responsible AI & Governance",
				Criteria: []Criterion{
					{Name: "Explainability & Transparency", Weight: 8.75},
					{Name: "Human Oversight", Weight: 8.75},
					{Name: "Model Lifecycle Management", Weight: 7.5},
				},
			},
			{
				Name: "Operational Value & Innovation",
				Criteria: []Criterion{
					{Name: "Cost-Benefit Analysis", Weight: 7.5},
					{Name: "Patient Experience & Education", Weight: 4.5},
					{Name: "ESG & Sustainability", Weight: 3.0},
				},
			},
		},
	}
}

// Load builds the deployment rubric by layering, low to high precedence:
//
//  1. the compiled-in default rubric
//  2. a YAML rubric file, if path is non-empty
//  3. TALLY_-prefixed environment variables (e.g. TALLY_SCALE)
//
// The result is validated before it is returned; a deployment never
// runs with a rubric whose weights do not sum to 100.
func Load(path string) (*Rubric, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load rubric file %s: %w", path, err)
		}
	}

	// Map env keys like TALLY_SCALE -> scale (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load rubric env overrides: %w", err)
	}

	// Unmarshal over a copy of the defaults: a file that only sets the
	// scale keeps the default categories, a full rubric replaces them.
	r := *Default()
	if err := k.UnmarshalWithConf("", &r, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rubric config: %w", err)
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}

	return &r, nil
}
