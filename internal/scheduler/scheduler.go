// Package scheduler runs the scan and retention tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TrinityScanner/internal/scan"
	"TrinityScanner/internal/store"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *scan.Runner
	Store  store.Store
	Ctx    context.Context

	SnapshotDays int
	LedgerDays   int

	log zerolog.Logger
}

func NewScheduler(ctx context.Context, runner *scan.Runner, st store.Store, snapshotDays, ledgerDays int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Runner:       runner,
		Store:        st,
		Ctx:          ctx,
		SnapshotDays: snapshotDays,
		LedgerDays:   ledgerDays,
		log:          log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the scan and purge tasks. Specs use the
// six-field cron format with a leading seconds column.
func (s *Scheduler) RegisterAll(scanCron, purgeCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(purgeCron, s.purgeTask); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.log.Info().Msg("running scheduled scan")
	res, err := s.Runner.Run(s.Ctx, time.Now(), false)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled scan failed")
		return
	}
	s.log.Info().Int("fresh", res.Run.Fresh).Int("suppressed", res.Run.Suppressed).Msg("scheduled scan done")
}

// purgeTask trims rows past their retention horizon. Snapshot history
// only needs to cover the rolling window; the ledger must outlive the
// cooloff period.
func (s *Scheduler) purgeTask() {
	now := time.Now()

	removed, err := s.Store.PruneSnapshotsBefore(s.Ctx, now.AddDate(0, 0, -s.SnapshotDays))
	if err != nil {
		s.log.Error().Err(err).Msg("prune snapshots")
	} else {
		s.log.Info().Int64("removed", removed).Msg("snapshots pruned")
	}

	removed, err = s.Store.PruneCandidatesBefore(s.Ctx, now.AddDate(0, 0, -s.LedgerDays))
	if err != nil {
		s.log.Error().Err(err).Msg("prune ledger entries")
	} else {
		s.log.Info().Int64("removed", removed).Msg("ledger entries pruned")
	}
}
