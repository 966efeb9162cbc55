package rating

import "TrinityScanner/internal/model"

// StopFrom places the stop-loss under the nearest support, or at a fixed
// discount from the entry when no support level is known.
func StopFrom(entryPrice, support float64) float64 {
	if support > 0 {
		return support * 0.95
	}
	return entryPrice * 0.92
}

// Size computes how many shares keep the worst-case loss at maxRisk.
// A stop at or above the entry yields a zero position; the stop is still
// reported so the reader can see why.
func Size(entryPrice, stopLoss, maxRisk float64) model.PositionPlan {
	plan := model.PositionPlan{StopLoss: stopLoss}
	riskPerShare := entryPrice - stopLoss
	if riskPerShare <= 0 || maxRisk <= 0 {
		return plan
	}
	plan.Shares = int(maxRisk / riskPerShare)
	plan.Investment = float64(plan.Shares) * entryPrice
	plan.Risk = float64(plan.Shares) * riskPerShare
	return plan
}
