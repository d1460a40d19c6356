// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("REFRESH_SECONDS", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 4152 {
		t.Errorf("expected default port 4152, got %d", cfg.Port)
	}
	if cfg.DataFile != "vote_data.csv" {
		t.Errorf("expected default data file, got %q", cfg.DataFile)
	}
	if cfg.RubricFile != "" {
		t.Errorf("expected no rubric file by default, got %q", cfg.RubricFile)
	}
	if cfg.BaseURL != "http://localhost:4152" {
		t.Errorf("expected base URL derived from port, got %q", cfg.BaseURL)
	}
	if cfg.RefreshSeconds != 3 {
		t.Errorf("expected default refresh 3, got %d", cfg.RefreshSeconds)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_FILE", "/var/lib/tallyboard/votes.csv")
	t.Setenv("TALLY_RUBRIC", "rubric.yaml")
	t.Setenv("BASE_URL", "https://votes.example.com")
	t.Setenv("REFRESH_SECONDS", "10")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DataFile != "/var/lib/tallyboard/votes.csv" {
		t.Errorf("expected data file from env, got %q", cfg.DataFile)
	}
	if cfg.RubricFile != "rubric.yaml" {
		t.Errorf("expected rubric file from env, got %q", cfg.RubricFile)
	}
	if cfg.BaseURL != "https://votes.example.com" {
		t.Errorf("expected base URL from env, got %q", cfg.BaseURL)
	}
	if cfg.RefreshSeconds != 10 {
		t.Errorf("expected refresh 10, got %d", cfg.RefreshSeconds)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_FILE", "env.csv")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "flag.csv"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DataFile != "flag.csv" {
		t.Errorf("CLI should override env: expected flag.csv, got %q", cfg.DataFile)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REFRESH_SECONDS", "")

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"port out of range", []string{"-p", "70000"}, nil},
		{"negative port", []string{"-p", "-1"}, nil},
		{"bad PORT env", nil, map[string]string{"PORT": "not-a-number"}},
		{"negative refresh rejected", []string{"-refresh", "-2"}, nil},
		{"bad REFRESH_SECONDS env", nil, map[string]string{"REFRESH_SECONDS": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}
