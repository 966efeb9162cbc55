package collector

import (
	"context"
	"errors"

	"TrinityScanner/internal/model"
)

// ErrNoData reports that the provider had nothing for the ticker. The
// analysis degrades to what it already knows instead of aborting.
var ErrNoData = errors.New("no data for ticker")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.OHLCV, error)
	FetchQuote(ctx context.Context, ticker string) (float64, error)
	FetchFundamentals(ctx context.Context, ticker string) (*model.Fundamentals, error)
	Name() string
}
