package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is one parsed row from the new-high screener feed.
type Quote struct {
	Ticker string
	Price  float64
}

// Fundamentals holds the optional valuation fields a data provider may supply.
// Absent fields stay zero; consumers treat zero as "not available".
type Fundamentals struct {
	Name              string
	PE                float64
	PriceToBook       float64
	DebtToEquity      float64
	CurrentRatio      float64
	RevenueGrowthPct  float64
	EarningsGrowthPct float64
	AnalystTarget     float64
	MarketCap         float64
}
