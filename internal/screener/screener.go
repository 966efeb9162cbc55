// Package screener discovers the day's 52-week-high tickers from an
// external stock screener.
package screener

import (
	"context"

	"TrinityScanner/internal/model"
)

// RowOutcome records a screener row that could not be parsed. The row is
// skipped and counted; one bad cell never aborts the scan.
type RowOutcome struct {
	Exchange string
	Row      int
	Reason   string
}

// Feed lists the tickers making new 52-week highs right now.
type Feed interface {
	FetchNewHighs(ctx context.Context) ([]model.Quote, []RowOutcome, error)
	Name() string
}
