package store

import (
	"context"
	"time"

	"TrinityScanner/internal/model"
)

// Store persists snapshot history, the candidate ledger and scan audit rows.
type Store interface {
	// AppendSnapshots writes the day's observations. Rows are stored as
	// given; repeated appearances of a ticker are collapsed by readers.
	AppendSnapshots(ctx context.Context, snaps []model.Snapshot) error
	// ListSnapshots returns the full snapshot history, oldest first.
	ListSnapshots(ctx context.Context) ([]model.Snapshot, error)

	// AppendCandidate records a flagged ticker. Writing the same ticker
	// and day twice is a no-op.
	AppendCandidate(ctx context.Context, rec model.CandidateRecord) error
	// ListCandidates returns the full candidate ledger, oldest first.
	ListCandidates(ctx context.Context) ([]model.CandidateRecord, error)

	// RecordRun stores one pipeline execution summary.
	RecordRun(ctx context.Context, run model.ScanRun) error

	// PruneSnapshotsBefore deletes snapshots older than cutoff and
	// reports how many rows were removed.
	PruneSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// PruneCandidatesBefore deletes ledger rows older than cutoff.
	PruneCandidatesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}
