package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port           int
	DataFile       string
	RubricFile     string
	BaseURL        string
	RefreshSeconds int
}

// ParseFlags validates flags and applies env fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tallyboard", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataFile, "d", "", "Ledger data file path")
	fs.StringVar(&cfg.RubricFile, "r", "", "Rubric YAML file (optional, default rubric compiled in)")
	fs.StringVar(&cfg.BaseURL, "u", "", "Public base URL for the voting form (QR links)")
	fs.IntVar(&cfg.RefreshSeconds, "refresh", 0, "Dashboard auto-refresh interval hint, seconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4152 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DataFile == "" {
		cfg.DataFile = os.Getenv("DATA_FILE")
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "vote_data.csv"
	}

	if cfg.RubricFile == "" {
		cfg.RubricFile = os.Getenv("TALLY_RUBRIC")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	if cfg.RefreshSeconds == 0 {
		if s := os.Getenv("REFRESH_SECONDS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid REFRESH_SECONDS env variable")
			}
			cfg.RefreshSeconds = n
		} else {
			cfg.RefreshSeconds = 3 // matches the dashboard's historical poll cadence
		}
	}
	if cfg.RefreshSeconds < 1 {
		return Config{}, errors.New("refresh interval must be at least 1 second")
	}

	return cfg, nil
}
