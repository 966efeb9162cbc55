package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TrinityScanner/internal/analyzer"
	"TrinityScanner/internal/collector"
	"TrinityScanner/internal/entry"
	"TrinityScanner/internal/model"
	"TrinityScanner/internal/report"
	"TrinityScanner/internal/store"
	"TrinityScanner/internal/trinity"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ticker := strings.ToUpper(args[0])

	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath, log.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	price, err := fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		return fmt.Errorf("fetch quote for %s: %w", ticker, err)
	}

	snaps, err := st.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot history: %w", err)
	}
	h := trinity.BuildHistory(snaps)

	now := time.Now()
	det := trinity.NewDetector(cfg.Trinity.WindowDays, cfg.Trinity.MinAppearances)
	win, isTrinity := det.Detect(h, ticker, now)

	// Entry timing only means something for a Trinity candidate.
	assess := entry.Assessment{Status: model.EntryNA}
	if isTrinity {
		assess = entry.Classify(h, ticker, price, now)
	}

	an := analyzer.New(fetcher, cfg.Analysis.HistoryDays, cfg.Analysis.Budget, cfg.Analysis.MaxRiskPct, log.Logger)
	cand, err := an.Compile(ctx, ticker, price, isTrinity, win.Count, assess)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("analysis degraded")
	}

	fmt.Print(report.Detail(cand))
	return nil
}
