// Package analyzer enriches a Trinity candidate with technical and
// fundamental context and produces the final rated row.
package analyzer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"TrinityScanner/internal/calculator"
	"TrinityScanner/internal/collector"
	"TrinityScanner/internal/entry"
	"TrinityScanner/internal/model"
	"TrinityScanner/internal/rating"
)

// Analyzer orchestrates data fetching and indicator computation for one
// ticker at a time.
type Analyzer struct {
	fetcher     collector.Fetcher
	historyDays int
	budget      float64
	maxRiskPct  float64
	log         zerolog.Logger
}

func New(fetcher collector.Fetcher, historyDays int, budget, maxRiskPct float64, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		fetcher:     fetcher,
		historyDays: historyDays,
		budget:      budget,
		maxRiskPct:  maxRiskPct,
		log:         log.With().Str("component", "analyzer").Logger(),
	}
}

// Compile assembles the full report row for a ticker. Provider failures
// degrade the row instead of discarding it: the rating is computed from
// whatever evidence is available and the row carries a note. The
// returned error reports what was missing; the candidate is always
// usable.
func (a *Analyzer) Compile(ctx context.Context, ticker string, price float64, isTrinity bool, appearances int, assess entry.Assessment) (model.Candidate, error) {
	cand := model.Candidate{
		Ticker:          ticker,
		Price:           price,
		Trinity:         isTrinity,
		Appearances:     appearances,
		EntryStatus:     assess.Status,
		DaysSinceSignal: assess.DaysSinceSignal,
		PriceMovePct:    assess.Move * 100,
	}

	var fetchErr error

	tech, err := a.technical(ctx, ticker, price)
	if err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("market data unavailable, reporting degraded row")
		cand.Note = "market data unavailable"
		fetchErr = fmt.Errorf("technical data for %s: %w", ticker, err)
	} else {
		cand.Technical = tech
	}

	fund, name, err := a.fundamental(ctx, ticker, price)
	if err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("fundamentals unavailable")
		if fetchErr == nil {
			fetchErr = fmt.Errorf("fundamentals for %s: %w", ticker, err)
		}
	} else {
		cand.Fundamental = fund
		cand.Company = name
	}
	if cand.Company == "" {
		cand.Company = ticker
	}

	in := rating.Inputs{Trinity: isTrinity}
	if cand.Technical != nil {
		in.VolumeSurge = cand.Technical.VolumeSurge
		in.AboveBothMAs = cand.Technical.AboveSMA20 && cand.Technical.AboveSMA50
	}
	if cand.Fundamental != nil {
		in.ReturnPotentialPct = cand.Fundamental.ReturnPotentialPct
	}
	cand.Rating, cand.Factors = rating.Evaluate(in)

	if cand.Technical != nil {
		stop := rating.StopFrom(cand.Technical.Price, cand.Technical.Support)
		plan := rating.Size(cand.Technical.Price, stop, a.budget*a.maxRiskPct/100)
		cand.Position = &plan
	}

	cand.RiskLevel = riskLevel(cand.Fundamental, cand.Technical)
	return cand, fetchErr
}

func (a *Analyzer) technical(ctx context.Context, ticker string, quoted float64) (*model.TechnicalSummary, error) {
	bars, err := a.fetcher.FetchDailyBars(ctx, ticker, a.historyDays)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, collector.ErrNoData
	}

	tech := &model.TechnicalSummary{Price: bars[len(bars)-1].Close}
	if tech.Price == 0 {
		tech.Price = quoted
	}

	if sma, err := calculator.CalculateSMA20(bars); err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("SMA20 unavailable")
	} else {
		tech.SMA20 = sma
		tech.AboveSMA20 = tech.Price > sma
	}

	if sma, err := calculator.CalculateSMA50(bars); err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("SMA50 unavailable")
	} else {
		tech.SMA50 = sma
		tech.AboveSMA50 = tech.Price > sma
	}

	if rsi, err := calculator.CalculateRSI(bars, 14); err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("RSI unavailable, defaulting to neutral")
		tech.RSI14 = 50
	} else {
		tech.RSI14 = rsi
	}

	if ratio, surge, err := calculator.CalculateVolumeSurge(bars); err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("volume baseline unavailable")
	} else {
		tech.VolumeRatio = ratio
		tech.VolumeSurge = surge
	}

	if chg, err := calculator.CalculatePriceChange(bars, 5); err == nil {
		tech.PriceChange5dPct = chg
	}
	if chg, err := calculator.CalculatePriceChange(bars, 20); err == nil {
		tech.PriceChange20dPct = chg
	}

	if support, resistance, err := calculator.CalculateSupportResistance(bars); err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("support/resistance unavailable")
	} else {
		tech.Support = support
		tech.Resistance = resistance
	}

	return tech, nil
}

func (a *Analyzer) fundamental(ctx context.Context, ticker string, price float64) (*model.FundamentalSummary, string, error) {
	f, err := a.fetcher.FetchFundamentals(ctx, ticker)
	if err != nil {
		return nil, "", err
	}
	sum := &model.FundamentalSummary{
		AnalystTarget:     f.AnalystTarget,
		PE:                f.PE,
		DebtToEquity:      f.DebtToEquity,
		RevenueGrowthPct:  f.RevenueGrowthPct,
		EarningsGrowthPct: f.EarningsGrowthPct,
	}
	if f.AnalystTarget > 0 && price > 0 {
		sum.ReturnPotentialPct = (f.AnalystTarget - price) / price * 100
	}
	return sum, f.Name, nil
}

// riskLevel buckets a candidate: leverage first, then momentum.
func riskLevel(fund *model.FundamentalSummary, tech *model.TechnicalSummary) model.RiskLevel {
	if fund != nil && fund.DebtToEquity > 1.0 {
		return model.RiskHigh
	}
	if tech != nil {
		if tech.RSI14 > 70 {
			return model.RiskMediumHigh
		}
		if tech.RSI14 < 30 {
			return model.RiskLow
		}
	}
	return model.RiskMedium
}
