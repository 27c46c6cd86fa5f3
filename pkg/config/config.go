package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultInput = "Online Retail.xlsx"
	defaultTopN  = 5
)

// AppConfig holds the configuration of the rfm command.
type AppConfig struct {
	Input       string // spreadsheet or csv path
	Sheet       string // xlsx sheet, first sheet when empty
	DSN         string // SQL source, takes precedence over Input
	Table       string
	OutputDir   string // JSON export directory, export disabled when empty
	TopN        int    // customers listed per segment in the report
	LogLevel    string
	Environment string
	Verbose     bool
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables already set.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Input:     os.Getenv("RFM_INPUT"),
		Sheet:     os.Getenv("RFM_SHEET"),
		DSN:       os.Getenv("RFM_DSN"),
		Table:     os.Getenv("RFM_TABLE"),
		OutputDir: os.Getenv("RFM_OUTPUT_DIR"),
		TopN:      defaultTopN,
	}
	if cfg.Input == "" {
		cfg.Input = defaultInput
	}
	if cfg.DSN != "" && cfg.Table == "" {
		return nil, fmt.Errorf("RFM_TABLE is required when RFM_DSN is set")
	}

	if v := os.Getenv("RFM_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RFM_TOP_N %q", v)
		}
		cfg.TopN = n
	}

	if v := os.Getenv("RFM_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RFM_VERBOSE: %w", err)
		}
		cfg.Verbose = b
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}
