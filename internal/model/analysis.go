package model

// TechnicalSummary aggregates the indicator readings for one candidate.
type TechnicalSummary struct {
	Price             float64
	SMA20             float64
	SMA50             float64
	RSI14             float64
	VolumeSurge       bool
	VolumeRatio       float64
	PriceChange5dPct  float64
	PriceChange20dPct float64
	Support           float64
	Resistance        float64
	AboveSMA20        bool
	AboveSMA50        bool
}

// FundamentalSummary carries the valuation view used by the rating engine.
// ReturnPotentialPct is zero when no analyst target is available.
type FundamentalSummary struct {
	ReturnPotentialPct float64
	AnalystTarget      float64
	PE                 float64
	DebtToEquity       float64
	RevenueGrowthPct   float64
	EarningsGrowthPct  float64
}

// PositionPlan is the suggested sizing for one candidate under the
// configured risk budget. Zero shares means the stop is at or above
// the entry and no position should be taken.
type PositionPlan struct {
	Shares     int
	Investment float64
	Risk       float64
	StopLoss   float64
}
