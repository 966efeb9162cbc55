package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"TrinityScanner/internal/report"
)

var (
	scanAsOf   string
	scanDryRun bool
)

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	asOf := time.Now()
	if scanAsOf != "" {
		asOf, err = time.Parse("2006-01-02", scanAsOf)
		if err != nil {
			return fmt.Errorf("parse --as-of: %w", err)
		}
	}

	runner, _, cleanup, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	res, err := runner.Run(ctx, asOf, scanDryRun)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Println(report.Summary(res.Run, res.Candidates, res.Suppressed))
	for _, p := range res.Reports {
		fmt.Printf("wrote %s\n", p)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner, _, cleanup, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	res, err := runner.Run(ctx, time.Now(), true)
	if err != nil {
		return fmt.Errorf("report preview failed: %w", err)
	}

	fmt.Println(report.Summary(res.Run, res.Candidates, res.Suppressed))
	if len(res.Candidates) > 0 {
		if err := report.WriteCSV(os.Stdout, res.Candidates); err != nil {
			return fmt.Errorf("render report rows: %w", err)
		}
	}
	return nil
}
