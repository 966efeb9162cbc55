// Package rating turns the per-ticker evidence into a buy/avoid verdict
// and a position size under the configured risk budget.
package rating

import "TrinityScanner/internal/model"

// Factor names as they appear in reports.
const (
	FactorTrinity = "trinity_pattern"
	FactorUpside  = "return_potential"
	FactorVolume  = "volume_surge"
	FactorTrend   = "above_moving_averages"
)

// A candidate needs at least this much analyst upside for the
// return-potential factor to count.
const returnPotentialBar = 50.0

// Inputs are the four evidence bits feeding the verdict. A factor whose
// upstream data was unavailable arrives as its zero value and simply
// does not count; missing data never fails the evaluation.
type Inputs struct {
	Trinity            bool
	ReturnPotentialPct float64
	VolumeSurge        bool
	AboveBothMAs       bool
}

// Evaluate scores the inputs and returns the verdict with the per-factor
// breakdown in display order.
func Evaluate(in Inputs) (model.Rating, []model.RatingFactor) {
	factors := []model.RatingFactor{
		{Name: FactorTrinity, Met: in.Trinity},
		{Name: FactorUpside, Met: in.ReturnPotentialPct >= returnPotentialBar},
		{Name: FactorVolume, Met: in.VolumeSurge},
		{Name: FactorTrend, Met: in.AboveBothMAs},
	}
	met := 0
	for _, f := range factors {
		if f.Met {
			met++
		}
	}
	return mapRating(met), factors
}

func mapRating(met int) model.Rating {
	switch {
	case met >= 3:
		return model.RatingStrongBuy
	case met == 2:
		return model.RatingBuy
	case met == 1:
		return model.RatingHold
	default:
		return model.RatingAvoid
	}
}
