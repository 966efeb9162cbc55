package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"

	"TrinityScanner/internal/model"
)

// A 5-day average running this far above the 20-day average counts as a
// volume surge.
const volumeSurgeRatio = 1.2

// CalculateVolumeSurge compares recent volume to the 20-day baseline.
func CalculateVolumeSurge(dailyBars []model.OHLCV) (ratio float64, surge bool, err error) {
	if len(dailyBars) < 20 {
		return 0, false, errors.New("not enough data for volume baseline")
	}
	volumes := make([]float64, len(dailyBars))
	for i, b := range dailyBars {
		volumes[i] = b.Volume
	}
	short := talib.Sma(volumes, 5)
	long := talib.Sma(volumes, 20)
	base := long[len(long)-1]
	if base == 0 || isNaN(base) {
		return 0, false, errors.New("volume baseline is zero")
	}
	recent := short[len(short)-1]
	if isNaN(recent) {
		return 0, false, errors.New("recent volume is undefined")
	}
	ratio = recent / base
	return ratio, ratio > volumeSurgeRatio, nil
}
