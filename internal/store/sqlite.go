package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"TrinityScanner/internal/model"
)

const dayFormat = "2006-01-02"

// SQLiteStore persists scanner state to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		// Append-only observation log. No uniqueness constraint: repeated
		// sightings of a ticker are collapsed when counting, not on write.
		`CREATE TABLE IF NOT EXISTS snapshots (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker TEXT NOT NULL,
			price  REAL NOT NULL,
			day    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ticker_day ON snapshots(ticker, day)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_day ON snapshots(day)`,

		`CREATE TABLE IF NOT EXISTS candidates (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker     TEXT NOT NULL,
			flagged_on TEXT NOT NULL,
			UNIQUE(ticker, flagged_on)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_flagged ON candidates(flagged_on)`,

		`CREATE TABLE IF NOT EXISTS scan_runs (
			id           TEXT PRIMARY KEY,
			as_of        TEXT NOT NULL,
			started_at   INTEGER NOT NULL,
			finished_at  INTEGER NOT NULL,
			tickers_seen INTEGER NOT NULL,
			candidates   INTEGER NOT NULL,
			fresh        INTEGER NOT NULL,
			suppressed   INTEGER NOT NULL,
			row_errors   INTEGER NOT NULL
		)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) AppendSnapshots(ctx context.Context, snaps []model.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshots (ticker, price, day) VALUES (?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		day := model.Day(snap.Date).Format(dayFormat)
		if _, err := stmt.ExecContext(ctx, snap.Ticker, snap.Price, day); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot %s: %w", snap.Ticker, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshots: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT ticker, price, day FROM snapshots ORDER BY day, id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var day string
		if err := rows.Scan(&snap.Ticker, &snap.Price, &day); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Date, err = time.Parse(dayFormat, day)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot day %q: %w", day, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SQLiteStore) AppendCandidate(ctx context.Context, rec model.CandidateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := model.Day(rec.FlaggedOn).Format(dayFormat)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO candidates (ticker, flagged_on) VALUES (?,?)`,
		rec.Ticker, day,
	)
	if err != nil {
		return fmt.Errorf("insert candidate %s: %w", rec.Ticker, err)
	}
	return nil
}

func (s *SQLiteStore) ListCandidates(ctx context.Context) ([]model.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT ticker, flagged_on FROM candidates ORDER BY flagged_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var recs []model.CandidateRecord
	for rows.Next() {
		var rec model.CandidateRecord
		var day string
		if err := rows.Scan(&rec.Ticker, &day); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		rec.FlaggedOn, err = time.Parse(dayFormat, day)
		if err != nil {
			return nil, fmt.Errorf("parse candidate day %q: %w", day, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run model.ScanRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO scan_runs
		(id, as_of, started_at, finished_at, tickers_seen, candidates, fresh, suppressed, row_errors)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, model.Day(run.AsOf).Format(dayFormat),
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.TickersSeen, run.Candidates, run.Fresh, run.Suppressed, run.RowErrors,
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PruneSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE day < ?`,
		model.Day(cutoff).Format(dayFormat))
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) PruneCandidatesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE flagged_on < ?`,
		model.Day(cutoff).Format(dayFormat))
	if err != nil {
		return 0, fmt.Errorf("prune candidates: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
