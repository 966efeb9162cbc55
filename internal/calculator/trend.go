package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"

	"TrinityScanner/internal/model"
)

// CalculateSMA computes the simple moving average of the closes over the
// specified period, taking the most recent value.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	out := talib.Sma(prices, period)
	last := out[len(out)-1]
	if isNaN(last) {
		return 0, errors.New("SMA is undefined")
	}
	return last, nil
}

// CalculateSMA20 returns the 20-day simple moving average from daily bars.
func CalculateSMA20(dailyBars []model.OHLCV) (float64, error) {
	return CalculateSMA(extractCloses(dailyBars), 20)
}

// CalculateSMA50 returns the 50-day simple moving average from daily bars.
func CalculateSMA50(dailyBars []model.OHLCV) (float64, error) {
	return CalculateSMA(extractCloses(dailyBars), 50)
}

// CalculatePriceChange returns the percent change of the close over the
// last lookback bars.
func CalculatePriceChange(dailyBars []model.OHLCV, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(dailyBars) < lookback+1 {
		return 0, errors.New("not enough data for price change")
	}
	base := dailyBars[len(dailyBars)-1-lookback].Close
	if base == 0 {
		return 0, errors.New("base close is zero")
	}
	last := dailyBars[len(dailyBars)-1].Close
	return (last - base) / base * 100, nil
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func isNaN(f float64) bool {
	return f != f
}
