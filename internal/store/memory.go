package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"TrinityScanner/internal/model"
)

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	mu         sync.Mutex
	snapshots  []model.Snapshot
	candidates []model.CandidateRecord
	runs       []model.ScanRun
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AppendSnapshots(_ context.Context, snaps []model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, snap := range snaps {
		snap.Date = model.Day(snap.Date)
		m.snapshots = append(m.snapshots, snap)
	}
	return nil
}

func (m *MemoryStore) ListSnapshots(_ context.Context) ([]model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Snapshot, len(m.snapshots))
	copy(out, m.snapshots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) AppendCandidate(_ context.Context, rec model.CandidateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.FlaggedOn = model.Day(rec.FlaggedOn)
	for _, have := range m.candidates {
		if have.Ticker == rec.Ticker && have.FlaggedOn.Equal(rec.FlaggedOn) {
			return nil
		}
	}
	m.candidates = append(m.candidates, rec)
	return nil
}

func (m *MemoryStore) ListCandidates(_ context.Context) ([]model.CandidateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CandidateRecord, len(m.candidates))
	copy(out, m.candidates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].FlaggedOn.Before(out[j].FlaggedOn) })
	return out, nil
}

func (m *MemoryStore) RecordRun(_ context.Context, run model.ScanRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *MemoryStore) Runs() []model.ScanRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ScanRun, len(m.runs))
	copy(out, m.runs)
	return out
}

func (m *MemoryStore) PruneSnapshotsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := model.Day(cutoff)
	var kept []model.Snapshot
	var removed int64
	for _, snap := range m.snapshots {
		if snap.Date.Before(day) {
			removed++
			continue
		}
		kept = append(kept, snap)
	}
	m.snapshots = kept
	return removed, nil
}

func (m *MemoryStore) PruneCandidatesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := model.Day(cutoff)
	var kept []model.CandidateRecord
	var removed int64
	for _, rec := range m.candidates {
		if rec.FlaggedOn.Before(day) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.candidates = kept
	return removed, nil
}

func (m *MemoryStore) Close() error { return nil }
