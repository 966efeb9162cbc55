package ledger

import (
	"context"
	"fmt"
	"time"

	"TrinityScanner/internal/model"
	"TrinityScanner/internal/store"
)

// Ledger tracks which tickers were already flagged as candidates so a
// recent signal is not re-alerted until its cooloff has passed.
type Ledger struct {
	store       store.Store
	CooloffDays int
}

func New(s store.Store, cooloffDays int) *Ledger {
	return &Ledger{store: s, CooloffDays: cooloffDays}
}

// Load reads the full ledger into a View. A read failure is returned as
// is: suppression decisions must never run against partial history, or
// a previously flagged ticker could be re-alerted.
func (l *Ledger) Load(ctx context.Context) (*View, error) {
	recs, err := l.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate ledger: %w", err)
	}
	v := &View{
		flags:       make(map[string][]time.Time, len(recs)),
		cooloffDays: l.CooloffDays,
	}
	for _, rec := range recs {
		day := model.Day(rec.FlaggedOn)
		v.flags[rec.Ticker] = append(v.flags[rec.Ticker], day)
	}
	return v, nil
}

// RecordFlagged appends a ledger entry for ticker on the asOf day.
// Recording the same ticker and day again is a no-op.
func (l *Ledger) RecordFlagged(ctx context.Context, ticker string, asOf time.Time) error {
	rec := model.CandidateRecord{Ticker: ticker, FlaggedOn: model.Day(asOf)}
	if err := l.store.AppendCandidate(ctx, rec); err != nil {
		return fmt.Errorf("record flagged %s: %w", ticker, err)
	}
	return nil
}

// IsSuppressed is a one-shot convenience around Load for single lookups.
func (l *Ledger) IsSuppressed(ctx context.Context, ticker string, asOf time.Time) (bool, error) {
	v, err := l.Load(ctx)
	if err != nil {
		return false, err
	}
	return v.Suppressed(ticker, asOf), nil
}

// View is an immutable snapshot of the ledger for one pipeline run.
type View struct {
	flags       map[string][]time.Time
	cooloffDays int
}

// Suppressed reports whether any ledger entry for ticker is still inside
// its cooloff as of the given day. An entry suppresses the half-open
// range [flagged, flagged+cooloff); entries dated after asOf suppress
// too, so a ledger written ahead of the evaluation day stays quiet.
func (v *View) Suppressed(ticker string, asOf time.Time) bool {
	day := model.Day(asOf)
	for _, flagged := range v.flags[ticker] {
		if model.DaysBetween(flagged, day) < v.cooloffDays {
			return true
		}
	}
	return false
}

// FlaggedOn reports whether ticker has a ledger entry exactly on day.
func (v *View) FlaggedOn(ticker string, day time.Time) bool {
	want := model.Day(day)
	for _, flagged := range v.flags[ticker] {
		if flagged.Equal(want) {
			return true
		}
	}
	return false
}
