package model

// EntryStatus classifies how far a candidate has run since its first signal.
type EntryStatus string

const (
	EntryGood         EntryStatus = "GOOD_ENTRY"
	EntryCaution      EntryStatus = "CAUTION"
	EntryLateStage    EntryStatus = "LATE_STAGE"
	EntryExtendedMove EntryStatus = "EXTENDED_MOVE"
	EntryExpired      EntryStatus = "EXPIRED"
	EntryNoHistory    EntryStatus = "NO_HISTORY"
	EntryPriceError   EntryStatus = "PRICE_ERROR"
	EntryNA           EntryStatus = "N/A"
)

// Actionable reports whether a Trinity candidate with this status is still
// worth entering. Expired and over-extended signals are excluded.
func (s EntryStatus) Actionable() bool {
	return s != EntryExpired && s != EntryExtendedMove
}

// Rating is the aggregate verdict from the multi-factor evaluation.
type Rating string

const (
	RatingStrongBuy Rating = "STRONG BUY"
	RatingBuy       Rating = "BUY"
	RatingHold      Rating = "HOLD"
	RatingAvoid     Rating = "AVOID"
)

// Priority orders ratings for report sorting, best first.
func (r Rating) Priority() int {
	switch r {
	case RatingStrongBuy:
		return 1
	case RatingBuy:
		return 2
	case RatingHold:
		return 3
	default:
		return 4
	}
}

// RatingFactor records whether one evaluation criterion was met.
type RatingFactor struct {
	Name string
	Met  bool
}

// RiskLevel is a coarse risk bucket derived from leverage and momentum.
type RiskLevel string

const (
	RiskLow        RiskLevel = "Low"
	RiskMedium     RiskLevel = "Medium"
	RiskMediumHigh RiskLevel = "Medium-High"
	RiskHigh       RiskLevel = "High"
)

// Candidate is one fully assessed ticker in a scan report.
// Technical, Fundamental and Position are nil when the deep analysis
// could not run; the row is still reported with what is known.
type Candidate struct {
	Rank            int
	Ticker          string
	Company         string
	Price           float64
	Trinity         bool
	Appearances     int
	EntryStatus     EntryStatus
	DaysSinceSignal int
	PriceMovePct    float64
	Rating          Rating
	Factors         []RatingFactor
	Technical       *TechnicalSummary
	Fundamental     *FundamentalSummary
	Position        *PositionPlan
	RiskLevel       RiskLevel
	Note            string
}
