package calculator

import (
	"errors"
	"math"

	"TrinityScanner/internal/model"
)

// CalculateSupportResistance scans the most recent 20 trading days and
// returns the low and high of that range.
func CalculateSupportResistance(dailyBars []model.OHLCV) (support, resistance float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	n := len(dailyBars)
	start := n - 20
	if start < 0 {
		start = 0
	}
	support = math.Inf(1)
	resistance = math.Inf(-1)
	for i := start; i < n; i++ {
		if dailyBars[i].Low < support {
			support = dailyBars[i].Low
		}
		if dailyBars[i].High > resistance {
			resistance = dailyBars[i].High
		}
	}
	return support, resistance, nil
}
