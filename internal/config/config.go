package config

import (
	"os"
	"strconv"

	"goexpt/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds result table and comparison settings
type DataConfig struct {
	// ResultsFile is the .csv or .xlsx result table to load
	ResultsFile string
	// KeyColumns is the one-based key column range expression, e.g. "1,3-5"
	KeyColumns string
	// DatasetColumn and RunColumn are zero-based; -1 means the last column
	DatasetColumn int
	RunColumn     int
	// ValueColumn is the zero-based numeric column under comparison
	ValueColumn int
	// Significance is the comparison level in (0,1)
	Significance float64
	// LabelPrefix is stripped from resultset labels when present
	LabelPrefix string
}

// DatabaseConfig holds the optional database result source
type DatabaseConfig struct {
	URL   string
	Query string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("SERVER_PORT", "8080"),
		},
		Data: DataConfig{
			ResultsFile:   os.Getenv("RESULTS_FILE"),
			KeyColumns:    envOr("KEY_COLUMNS", "first"),
			DatasetColumn: -1,
			RunColumn:     -1,
			ValueColumn:   -1,
			Significance:  0.05,
			LabelPrefix:   os.Getenv("LABEL_PREFIX"),
		},
		Database: DatabaseConfig{
			URL:   os.Getenv("DATABASE_URL"),
			Query: os.Getenv("RESULTS_QUERY"),
		},
	}

	var err error
	if cfg.Data.DatasetColumn, err = envInt("DATASET_COLUMN", -1); err != nil {
		return nil, err
	}
	if cfg.Data.RunColumn, err = envInt("RUN_COLUMN", -1); err != nil {
		return nil, err
	}
	if cfg.Data.ValueColumn, err = envInt("VALUE_COLUMN", -1); err != nil {
		return nil, err
	}
	if s := os.Getenv("SIGNIFICANCE"); s != "" {
		level, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("SIGNIFICANCE must be a number: " + s)
		}
		cfg.Data.Significance = level
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Data.Significance <= 0 || c.Data.Significance >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE must be in (0,1)")
	}
	if c.Database.URL != "" && c.Database.Query == "" {
		return errors.ConfigInvalid("RESULTS_QUERY is required when DATABASE_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer: " + v)
	}
	return n, nil
}
