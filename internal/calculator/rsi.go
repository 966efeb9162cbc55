package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"

	"TrinityScanner/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 bars; returns the neutral 50.0 when data is
// insufficient or undefined, so a thin history never blocks the rest of
// the analysis.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 50.0, nil
	}
	out := talib.Rsi(extractCloses(bars), period)
	last := out[len(out)-1]
	if isNaN(last) {
		return 50.0, nil
	}
	return last, nil
}
