package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Valet struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Proxy          string `yaml:"proxy"`
	} `yaml:"valet"`
	Series struct {
		A SeriesConfig `yaml:"a"`
		B SeriesConfig `yaml:"b"`
	} `yaml:"series"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Snapshot struct {
		Cron       string `yaml:"cron"`
		WindowDays int    `yaml:"window_days"`
	} `yaml:"snapshot"`
}

// SeriesConfig names one Valet series.
type SeriesConfig struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("VALET_BASE_URL"); v != "" {
		cfg.Valet.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Valet.Proxy = v
	}
	if v := os.Getenv("SERIES_A"); v != "" {
		cfg.Series.A.Code = v
	}
	if v := os.Getenv("SERIES_B"); v != "" {
		cfg.Series.B.Code = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Snapshot.Cron = v
	}
	if v := os.Getenv("SNAPSHOT_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Snapshot.WindowDays = n
		}
	}

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Valet.BaseURL == "" {
		cfg.Valet.BaseURL = "https://www.bankofcanada.ca/valet"
	}
	if cfg.Valet.TimeoutSeconds == 0 {
		cfg.Valet.TimeoutSeconds = 30
	}
	if cfg.Series.A.Code == "" {
		cfg.Series.A.Code = "V39079"
	}
	if cfg.Series.A.Label == "" {
		cfg.Series.A.Label = "Overnight Rate"
	}
	if cfg.Series.B.Code == "" {
		cfg.Series.B.Code = "FXUSDCAD"
	}
	if cfg.Series.B.Label == "" {
		cfg.Series.B.Label = "USD/CAD Exchange Rate"
	}
	if cfg.Snapshot.WindowDays == 0 {
		cfg.Snapshot.WindowDays = 90
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Valet.BaseURL == "" {
		return fmt.Errorf("valet.base_url is required")
	}
	if c.Valet.TimeoutSeconds <= 0 {
		return fmt.Errorf("valet.timeout_seconds must be positive")
	}
	if c.Series.A.Code == "" || c.Series.B.Code == "" {
		return fmt.Errorf("both series codes are required")
	}
	if c.Series.A.Code == c.Series.B.Code {
		return fmt.Errorf("series.a and series.b must differ")
	}
	if c.Snapshot.WindowDays <= 0 {
		return fmt.Errorf("snapshot.window_days must be positive")
	}
	return nil
}
