// Package entry classifies how much of a Trinity signal's move has
// already happened by the time it is evaluated.
package entry

import (
	"time"

	"TrinityScanner/internal/model"
	"TrinityScanner/internal/trinity"
)

// Signal age and price-move cutoffs. Age beats move: a stale signal is
// expired no matter how flat the price has stayed.
const (
	expiredAfterDays = 21
	extendedMovePct  = 0.20
	lateStageDays    = 14
	lateStagePct     = 0.15
	cautionDays      = 7
	cautionPct       = 0.10
)

// Assessment is the entry-window verdict for one ticker.
// Move is the fractional price change since the first signal.
type Assessment struct {
	Status          model.EntryStatus
	DaysSinceSignal int
	Move            float64
	FirstSignal     time.Time
	FirstPrice      float64
}

// Classify locates the ticker's first signal in history and grades the
// current price against it. A ticker with no history gets NO_HISTORY; a
// zero or missing first price gets PRICE_ERROR. Both leave the caller
// with a reportable row instead of an aborted run.
func Classify(h *trinity.History, ticker string, currentPrice float64, asOf time.Time) Assessment {
	first, ok := h.FirstDate(ticker)
	if !ok {
		return Assessment{Status: model.EntryNoHistory}
	}
	firstPrice, ok := h.PriceNearest(ticker, first)
	if !ok || firstPrice == 0 {
		return Assessment{Status: model.EntryPriceError, FirstSignal: first}
	}

	days := model.DaysBetween(first, asOf)
	move := (currentPrice - firstPrice) / firstPrice
	return Assessment{
		Status:          classify(days, move),
		DaysSinceSignal: days,
		Move:            move,
		FirstSignal:     first,
		FirstPrice:      firstPrice,
	}
}

func classify(days int, move float64) model.EntryStatus {
	switch {
	case days > expiredAfterDays:
		return model.EntryExpired
	case move > extendedMovePct:
		return model.EntryExtendedMove
	case days > lateStageDays && move > lateStagePct:
		return model.EntryLateStage
	case days > cautionDays && move > cautionPct:
		return model.EntryCaution
	default:
		return model.EntryGood
	}
}
