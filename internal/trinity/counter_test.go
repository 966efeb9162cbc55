package trinity

import (
	"testing"
	"time"

	"TrinityScanner/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func snap(ticker, d string, price float64) model.Snapshot {
	return model.Snapshot{Ticker: ticker, Price: price, Date: day(d)}
}

func TestCountInWindow_SameDayCountsOnce(t *testing.T) {
	h := BuildHistory([]model.Snapshot{
		snap("ABCD", "2026-03-02", 10.0),
		snap("ABCD", "2026-03-02", 10.2),
		snap("ABCD", "2026-03-02", 10.1),
	})
	if got := CountInWindow(h, "ABCD", day("2026-03-02"), 24); got != 1 {
		t.Errorf("expected 1 appearance for repeated same-day rows, got %d", got)
	}
}

func TestCountInWindow_InclusiveBounds(t *testing.T) {
	asOf := day("2026-03-02")
	tests := []struct {
		name string
		on   string
		want int
	}{
		{"appearance today", "2026-03-02", 1},
		{"appearance exactly window_days ago", "2026-02-06", 1}, // 24 days before
		{"appearance one day beyond window", "2026-02-05", 0},
		{"appearance in the future", "2026-03-03", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BuildHistory([]model.Snapshot{snap("ABCD", tt.on, 5)})
			if got := CountInWindow(h, "ABCD", asOf, 24); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountInWindow_EmptyHistory(t *testing.T) {
	h := BuildHistory(nil)
	if got := CountInWindow(h, "NONE", day("2026-03-02"), 24); got != 0 {
		t.Errorf("expected 0 for unknown ticker, got %d", got)
	}
}

func TestCountInWindow_MonotonicUnderAppends(t *testing.T) {
	asOf := day("2026-03-02")
	snaps := []model.Snapshot{snap("ABCD", "2026-02-10", 5)}
	prev := CountInWindow(BuildHistory(snaps), "ABCD", asOf, 24)

	additions := []model.Snapshot{
		snap("ABCD", "2026-02-10", 5.1), // duplicate day
		snap("ABCD", "2026-02-20", 5.5),
		snap("ABCD", "2026-01-01", 4.0), // outside window
		snap("ABCD", "2026-03-02", 6.0),
	}
	for _, add := range additions {
		snaps = append(snaps, add)
		got := CountInWindow(BuildHistory(snaps), "ABCD", asOf, 24)
		if got < prev {
			t.Fatalf("count dropped from %d to %d after appending %s", prev, got, add.Date)
		}
		prev = got
	}
	if prev != 3 {
		t.Errorf("final count = %d, want 3 distinct in-window days", prev)
	}
}

func TestDetect_Threshold(t *testing.T) {
	h := BuildHistory([]model.Snapshot{
		snap("ABCD", "2026-02-20", 5),
		snap("ABCD", "2026-03-02", 6),
	})
	det := NewDetector(24, 2)

	w, ok := det.Detect(h, "ABCD", day("2026-03-02"))
	if !ok {
		t.Fatal("expected two appearances to qualify")
	}
	if w.Count != 2 {
		t.Errorf("count = %d, want 2", w.Count)
	}
	if _, ok := det.Detect(h, "ABCD", day("2026-04-01")); ok {
		t.Error("appearances outside the window should not qualify")
	}
}

func TestWindow_Bounds(t *testing.T) {
	w := Window(BuildHistory(nil), "ABCD", day("2026-03-02"), 24)
	if !w.WindowStart.Equal(day("2026-02-06")) {
		t.Errorf("window start = %s, want 2026-02-06", w.WindowStart.Format("2006-01-02"))
	}
	if !w.WindowEnd.Equal(day("2026-03-02")) {
		t.Errorf("window end = %s, want 2026-03-02", w.WindowEnd.Format("2006-01-02"))
	}
}

func TestPriceNearest_ExactAndTies(t *testing.T) {
	h := BuildHistory([]model.Snapshot{
		snap("ABCD", "2026-03-01", 10),
		snap("ABCD", "2026-03-05", 14),
	})

	if p, ok := h.PriceNearest("ABCD", day("2026-03-05")); !ok || p != 14 {
		t.Errorf("exact day: got (%v, %v), want (14, true)", p, ok)
	}
	// 2026-03-03 is two days from both observations; the earlier wins.
	if p, ok := h.PriceNearest("ABCD", day("2026-03-03")); !ok || p != 10 {
		t.Errorf("tie: got (%v, %v), want (10, true)", p, ok)
	}
	if _, ok := h.PriceNearest("NONE", day("2026-03-03")); ok {
		t.Error("unknown ticker should report no price")
	}
}

func TestBuildHistory_FirstPriceWinsOnDuplicateDay(t *testing.T) {
	h := BuildHistory([]model.Snapshot{
		snap("ABCD", "2026-03-02", 10.0),
		snap("ABCD", "2026-03-02", 99.0),
	})
	if p, _ := h.PriceAt("ABCD", day("2026-03-02")); p != 10.0 {
		t.Errorf("price = %v, want first recorded 10.0", p)
	}
}

func TestFirstDate(t *testing.T) {
	h := BuildHistory([]model.Snapshot{
		snap("ABCD", "2026-03-05", 14),
		snap("ABCD", "2026-03-01", 10),
	})
	first, ok := h.FirstDate("ABCD")
	if !ok || !first.Equal(day("2026-03-01")) {
		t.Errorf("first date = (%s, %v), want (2026-03-01, true)", first.Format("2006-01-02"), ok)
	}
	if _, ok := h.FirstDate("NONE"); ok {
		t.Error("unknown ticker should report no first date")
	}
}
