package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "trinityscanner"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// A .env file is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Trinity pattern stock scanner",
		Version: version,
		Long: "Scans the daily 52-week high list for tickers that keep reappearing\n" +
			"(the Trinity pattern), rates them on technicals and fundamentals, and\n" +
			"publishes a trading report.",
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "Path to config file")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one full scan now",
		Long: "Fetches today's new highs, updates the snapshot history, flags Trinity\n" +
			"candidates, writes the report files and sends the email summary.",
		RunE: runScan,
	}
	scanCmd.Flags().StringVar(&scanAsOf, "as-of", "", "Evaluate as of this day, YYYY-MM-DD (default today)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Preview without writing snapshots, ledger entries, reports or email")

	analyzeCmd := &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Analyze a single ticker on demand",
		Long:  "Compiles the full technical, fundamental and position analysis for one ticker.",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Preview today's scan on stdout",
		Long:  "Runs the scan pipeline in dry-run mode and prints the summary and report rows without persisting anything.",
		RunE:  runReport,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scanner on its cron schedule",
		Long:  "Starts the scheduler and keeps scanning on the configured cron until interrupted.",
		RunE:  runServe,
	}

	rootCmd.AddCommand(scanCmd, analyzeCmd, reportCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
