package model

import "time"

// Snapshot is one observation of a ticker on the 52-week-high list.
// Date is normalized to midnight UTC; the store keeps every row it is
// given and duplicates are collapsed when counting, not when writing.
type Snapshot struct {
	Ticker string
	Price  float64
	Date   time.Time
}

// CandidateRecord marks a ticker flagged as a Trinity candidate on a day.
type CandidateRecord struct {
	Ticker    string
	FlaggedOn time.Time
}

// SignalWindow describes the trailing window a ticker was counted over.
type SignalWindow struct {
	Ticker      string
	Count       int
	WindowStart time.Time
	WindowEnd   time.Time
}

// ScanRun summarizes one pipeline execution for the audit trail.
type ScanRun struct {
	ID          string
	AsOf        time.Time
	StartedAt   time.Time
	FinishedAt  time.Time
	TickersSeen int
	Candidates  int
	Fresh       int
	Suppressed  int
	RowErrors   int
}

// Day truncates t to midnight UTC so that comparisons and window
// arithmetic work on calendar days regardless of the source timezone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b. Negative when
// b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
