package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"TrinityScanner/internal/analyzer"
	"TrinityScanner/internal/collector"
	"TrinityScanner/internal/config"
	"TrinityScanner/internal/ledger"
	"TrinityScanner/internal/notifier"
	"TrinityScanner/internal/report"
	"TrinityScanner/internal/scan"
	"TrinityScanner/internal/screener"
	"TrinityScanner/internal/store"
	"TrinityScanner/internal/trinity"
)

var cfgPath string

const defaultConfigPath = "configs/config.yaml"

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == defaultConfigPath {
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// buildRunner wires the full scan pipeline. The returned cleanup closes
// the store.
func buildRunner(cfg *config.Config) (*scan.Runner, store.Store, func(), error) {
	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath, log.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}

	feed := screener.NewFinvizFeed(cfg.Scan.Exchanges, cfg.Scan.PriceCeiling, cfg.Proxy, log.Logger)
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	an := analyzer.New(fetcher, cfg.Analysis.HistoryDays, cfg.Analysis.Budget, cfg.Analysis.MaxRiskPct, log.Logger)
	led := ledger.New(st, cfg.Trinity.CooloffDays)
	det := trinity.NewDetector(cfg.Trinity.WindowDays, cfg.Trinity.MinAppearances)
	rep := report.NewWriter(cfg.Report.Dir, log.Logger)

	var n notifier.Notifier = notifier.NoopNotifier{}
	if cfg.EmailConfigured() {
		n = notifier.NewEmailNotifier(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username,
			cfg.Email.Password, cfg.Email.From, cfg.Email.To, log.Logger)
	} else {
		log.Info().Msg("email not configured, alerts disabled")
	}

	runner := scan.NewRunner(feed, st, led, det, an, rep, n, log.Logger)
	return runner, st, cleanup, nil
}
