package trinity

import (
	"sort"
	"time"

	"TrinityScanner/internal/model"
)

// History is a day-indexed view over the raw snapshot log. Repeated
// sightings of a ticker on the same day collapse into one entry; the
// first recorded price for that day wins.
type History struct {
	dates  map[string][]time.Time
	prices map[string]map[time.Time]float64
}

// BuildHistory folds the snapshot log into a History. Input order only
// matters for same-day price conflicts, where the earliest row is kept.
func BuildHistory(snaps []model.Snapshot) *History {
	h := &History{
		dates:  make(map[string][]time.Time),
		prices: make(map[string]map[time.Time]float64),
	}
	for _, snap := range snaps {
		day := model.Day(snap.Date)
		byDay := h.prices[snap.Ticker]
		if byDay == nil {
			byDay = make(map[time.Time]float64)
			h.prices[snap.Ticker] = byDay
		}
		if _, seen := byDay[day]; seen {
			continue
		}
		byDay[day] = snap.Price
		h.dates[snap.Ticker] = append(h.dates[snap.Ticker], day)
	}
	for ticker := range h.dates {
		days := h.dates[ticker]
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	}
	return h
}

// Tickers returns every ticker with at least one observation, sorted.
func (h *History) Tickers() []string {
	out := make([]string, 0, len(h.dates))
	for ticker := range h.dates {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}

// Dates returns the distinct observation days for a ticker, ascending.
func (h *History) Dates(ticker string) []time.Time {
	return h.dates[ticker]
}

// FirstDate returns the earliest observation day for a ticker.
func (h *History) FirstDate(ticker string) (time.Time, bool) {
	days := h.dates[ticker]
	if len(days) == 0 {
		return time.Time{}, false
	}
	return days[0], true
}

// PriceAt returns the recorded price for a ticker on an exact day.
func (h *History) PriceAt(ticker string, day time.Time) (float64, bool) {
	p, ok := h.prices[ticker][model.Day(day)]
	return p, ok
}

// PriceNearest returns the price recorded closest to target. An exact
// match is distance zero; between two equally distant days the earlier
// one is used.
func (h *History) PriceNearest(ticker string, target time.Time) (float64, bool) {
	days := h.dates[ticker]
	if len(days) == 0 {
		return 0, false
	}
	target = model.Day(target)
	best := days[0]
	bestDist := absDays(best, target)
	for _, d := range days[1:] {
		if dist := absDays(d, target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return h.prices[ticker][best], true
}

func absDays(a, b time.Time) int {
	d := model.DaysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}
