package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Scan struct {
		Exchanges    []string `yaml:"exchanges"`
		PriceCeiling int      `yaml:"price_ceiling"`
	} `yaml:"scan"`
	Trinity struct {
		WindowDays     int `yaml:"window_days"`
		MinAppearances int `yaml:"min_appearances"`
		CooloffDays    int `yaml:"cooloff_days"`
	} `yaml:"trinity"`
	Analysis struct {
		Budget      float64 `yaml:"budget"`
		MaxRiskPct  float64 `yaml:"max_risk_pct"`
		HistoryDays int     `yaml:"history_days"`
	} `yaml:"analysis"`
	Retention struct {
		SnapshotDays int `yaml:"snapshot_days"`
		LedgerDays   int `yaml:"ledger_days"`
	} `yaml:"retention"`
	Storage struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Report struct {
		Dir string `yaml:"dir"`
	} `yaml:"report"`
	Email struct {
		Host     string   `yaml:"host"`
		Port     int      `yaml:"port"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		From     string   `yaml:"from"`
		To       []string `yaml:"to"`
	} `yaml:"email"`
	Schedule struct {
		ScanCron  string `yaml:"scan_cron"`
		PurgeCron string `yaml:"purge_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("TRINITY_DB_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		cfg.Email.From = v
		if cfg.Email.Username == "" {
			cfg.Email.Username = v
		}
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("EMAIL_RECEIVER"); v != "" {
		cfg.Email.To = splitList(v)
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("TRINITY_MIN_APPEARANCES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Trinity.MinAppearances = n
		}
	}
	if v := os.Getenv("TRADING_BUDGET"); v != "" {
		var budget float64
		if _, err := fmt.Sscanf(v, "%f", &budget); err == nil {
			cfg.Analysis.Budget = budget
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Scan.Exchanges) == 0 {
		cfg.Scan.Exchanges = []string{"nasdaq", "nyse"}
	}
	if cfg.Scan.PriceCeiling == 0 {
		cfg.Scan.PriceCeiling = 20
	}
	if cfg.Trinity.WindowDays == 0 {
		cfg.Trinity.WindowDays = 24
	}
	if cfg.Trinity.MinAppearances == 0 {
		cfg.Trinity.MinAppearances = 2
	}
	if cfg.Trinity.CooloffDays == 0 {
		cfg.Trinity.CooloffDays = 30
	}
	if cfg.Analysis.Budget == 0 {
		cfg.Analysis.Budget = 1600
	}
	if cfg.Analysis.MaxRiskPct == 0 {
		cfg.Analysis.MaxRiskPct = 10
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 180
	}
	if cfg.Retention.SnapshotDays == 0 {
		cfg.Retention.SnapshotDays = 60
	}
	if cfg.Retention.LedgerDays == 0 {
		cfg.Retention.LedgerDays = 180
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/trinity.db"
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "reports"
	}
	if cfg.Email.Host == "" {
		cfg.Email.Host = "smtp.gmail.com"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 465
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 16 * * 1-5"
	}
	if cfg.Schedule.PurgeCron == "" {
		cfg.Schedule.PurgeCron = "0 0 3 * * 0"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Scan.PriceCeiling <= 0 {
		return fmt.Errorf("scan.price_ceiling must be positive")
	}
	if c.Trinity.WindowDays <= 0 {
		return fmt.Errorf("trinity.window_days must be positive")
	}
	if c.Trinity.MinAppearances < 1 {
		return fmt.Errorf("trinity.min_appearances must be at least 1")
	}
	if c.Trinity.CooloffDays < 0 {
		return fmt.Errorf("trinity.cooloff_days must not be negative")
	}
	if c.Analysis.Budget <= 0 {
		return fmt.Errorf("analysis.budget must be positive")
	}
	if c.Analysis.MaxRiskPct <= 0 || c.Analysis.MaxRiskPct > 100 {
		return fmt.Errorf("analysis.max_risk_pct must be in (0, 100]")
	}
	return nil
}

// EmailConfigured reports whether enough email settings are present to send reports.
func (c *Config) EmailConfigured() bool {
	return c.Email.From != "" && c.Email.Password != "" && len(c.Email.To) > 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
