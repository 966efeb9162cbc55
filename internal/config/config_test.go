package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"nasdaq", "nyse"}, cfg.Scan.Exchanges)
	assert.Equal(t, 20, cfg.Scan.PriceCeiling)
	assert.Equal(t, 24, cfg.Trinity.WindowDays)
	assert.Equal(t, 2, cfg.Trinity.MinAppearances)
	assert.Equal(t, 30, cfg.Trinity.CooloffDays)
	assert.InDelta(t, 1600.0, cfg.Analysis.Budget, 1e-9)
	assert.InDelta(t, 10.0, cfg.Analysis.MaxRiskPct, 1e-9)
	assert.Equal(t, "data/trinity.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "0 30 16 * * 1-5", cfg.Schedule.ScanCron)
	assert.Equal(t, 465, cfg.Email.Port)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.EmailConfigured())
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
scan:
  exchanges: [amex]
  price_ceiling: 50
trinity:
  window_days: 10
  min_appearances: 3
analysis:
  budget: 5000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"amex"}, cfg.Scan.Exchanges)
	assert.Equal(t, 50, cfg.Scan.PriceCeiling)
	assert.Equal(t, 10, cfg.Trinity.WindowDays)
	assert.Equal(t, 3, cfg.Trinity.MinAppearances)
	assert.InDelta(t, 5000.0, cfg.Analysis.Budget, 1e-9)
	// Untouched sections still get defaults.
	assert.Equal(t, 30, cfg.Trinity.CooloffDays)
	assert.Equal(t, "reports", cfg.Report.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRINITY_DB_PATH", "/tmp/override.db")
	t.Setenv("EMAIL_SENDER", "alerts@example.com")
	t.Setenv("EMAIL_PASSWORD", "hunter2")
	t.Setenv("EMAIL_RECEIVER", "a@example.com, b@example.com")
	t.Setenv("TRADING_BUDGET", "2500")
	t.Setenv("TRINITY_MIN_APPEARANCES", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "alerts@example.com", cfg.Email.From)
	assert.Equal(t, "alerts@example.com", cfg.Email.Username)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.To)
	assert.InDelta(t, 2500.0, cfg.Analysis.Budget, 1e-9)
	assert.Equal(t, 4, cfg.Trinity.MinAppearances)
	assert.True(t, cfg.EmailConfigured())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Analysis.MaxRiskPct = 150
	assert.Error(t, cfg.Validate())

	cfg.Analysis.MaxRiskPct = 10
	cfg.Trinity.MinAppearances = 0
	assert.Error(t, cfg.Validate())
}
