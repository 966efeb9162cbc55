package entry

import (
	"testing"
	"time"

	"TrinityScanner/internal/model"
	"TrinityScanner/internal/trinity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify_Grades(t *testing.T) {
	tests := []struct {
		name string
		days int
		move float64
		want model.EntryStatus
	}{
		{"stale signal expires regardless of move", 22, 0.05, model.EntryExpired},
		{"big move is extended even when fresh", 10, 0.25, model.EntryExtendedMove},
		{"aged and moved", 15, 0.16, model.EntryLateStage},
		{"mildly aged and moved", 8, 0.11, model.EntryCaution},
		{"fresh and flat", 3, 0.02, model.EntryGood},
		{"boundary: 21 days flat is still good", 21, 0.0, model.EntryGood},
		{"boundary: exactly 20 percent is not extended", 5, 0.20, model.EntryGood},
		{"late stage needs more than 14 days, falls to caution", 14, 0.16, model.EntryCaution},
		{"negative move stays good inside the window", 10, -0.08, model.EntryGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.days, tt.move); got != tt.want {
				t.Errorf("classify(%d, %.2f) = %s, want %s", tt.days, tt.move, got, tt.want)
			}
		})
	}
}

func TestClassify_FromHistory(t *testing.T) {
	h := trinity.BuildHistory([]model.Snapshot{
		{Ticker: "ABCD", Price: 10.0, Date: day("2026-02-20")},
		{Ticker: "ABCD", Price: 10.8, Date: day("2026-02-27")},
	})

	a := Classify(h, "ABCD", 12.5, day("2026-03-02"))
	if a.Status != model.EntryExtendedMove {
		t.Errorf("status = %s, want EXTENDED_MOVE for a 25%% move", a.Status)
	}
	if a.DaysSinceSignal != 10 {
		t.Errorf("days since signal = %d, want 10", a.DaysSinceSignal)
	}
	if a.FirstPrice != 10.0 {
		t.Errorf("first price = %v, want 10.0", a.FirstPrice)
	}
	if !a.FirstSignal.Equal(day("2026-02-20")) {
		t.Errorf("first signal = %s, want 2026-02-20", a.FirstSignal.Format("2006-01-02"))
	}
}

func TestClassify_NoHistory(t *testing.T) {
	h := trinity.BuildHistory(nil)
	a := Classify(h, "NONE", 5.0, day("2026-03-02"))
	if a.Status != model.EntryNoHistory {
		t.Errorf("status = %s, want NO_HISTORY", a.Status)
	}
}

func TestClassify_ZeroFirstPrice(t *testing.T) {
	h := trinity.BuildHistory([]model.Snapshot{
		{Ticker: "ABCD", Price: 0, Date: day("2026-02-20")},
	})
	a := Classify(h, "ABCD", 5.0, day("2026-03-02"))
	if a.Status != model.EntryPriceError {
		t.Errorf("status = %s, want PRICE_ERROR", a.Status)
	}
}

func TestActionable(t *testing.T) {
	actionable := []model.EntryStatus{
		model.EntryGood, model.EntryCaution, model.EntryLateStage,
		model.EntryNoHistory, model.EntryPriceError,
	}
	for _, s := range actionable {
		if !s.Actionable() {
			t.Errorf("%s should stay actionable", s)
		}
	}
	for _, s := range []model.EntryStatus{model.EntryExpired, model.EntryExtendedMove} {
		if s.Actionable() {
			t.Errorf("%s should not be actionable", s)
		}
	}
}
