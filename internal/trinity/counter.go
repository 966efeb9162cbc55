package trinity

import (
	"time"

	"TrinityScanner/internal/model"
)

// CountInWindow returns how many distinct days the ticker appeared on
// within the trailing window ending at asOf. Both bounds are inclusive:
// an appearance exactly windowDays ago still counts, as does one today.
func CountInWindow(h *History, ticker string, asOf time.Time, windowDays int) int {
	end := model.Day(asOf)
	start := end.AddDate(0, 0, -windowDays)
	n := 0
	for _, d := range h.Dates(ticker) {
		if !d.Before(start) && !d.After(end) {
			n++
		}
	}
	return n
}

// Window describes the count together with the bounds it was taken over.
func Window(h *History, ticker string, asOf time.Time, windowDays int) model.SignalWindow {
	end := model.Day(asOf)
	return model.SignalWindow{
		Ticker:      ticker,
		Count:       CountInWindow(h, ticker, asOf, windowDays),
		WindowStart: end.AddDate(0, 0, -windowDays),
		WindowEnd:   end,
	}
}

// Detector decides whether a ticker's appearance count makes it a
// Trinity candidate.
type Detector struct {
	WindowDays     int
	MinAppearances int
}

func NewDetector(windowDays, minAppearances int) *Detector {
	return &Detector{WindowDays: windowDays, MinAppearances: minAppearances}
}

// Detect reports the window for a ticker and whether it qualifies.
func (d *Detector) Detect(h *History, ticker string, asOf time.Time) (model.SignalWindow, bool) {
	w := Window(h, ticker, asOf, d.WindowDays)
	return w, w.Count >= d.MinAppearances
}
