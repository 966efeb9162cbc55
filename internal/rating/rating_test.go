package rating

import (
	"testing"

	"TrinityScanner/internal/model"
)

func TestEvaluate_VerdictByFactorCount(t *testing.T) {
	// Walk every combination of the four factors; the verdict depends
	// only on how many are met, never on which ones.
	for mask := 0; mask < 16; mask++ {
		in := Inputs{
			Trinity:      mask&1 != 0,
			VolumeSurge:  mask&2 != 0,
			AboveBothMAs: mask&4 != 0,
		}
		if mask&8 != 0 {
			in.ReturnPotentialPct = 72.0
		}
		met := 0
		for b := 0; b < 4; b++ {
			if mask&(1<<b) != 0 {
				met++
			}
		}
		var want model.Rating
		switch {
		case met >= 3:
			want = model.RatingStrongBuy
		case met == 2:
			want = model.RatingBuy
		case met == 1:
			want = model.RatingHold
		default:
			want = model.RatingAvoid
		}

		got, factors := Evaluate(in)
		if got != want {
			t.Errorf("mask %04b: rating = %s, want %s", mask, got, want)
		}
		gotMet := 0
		for _, f := range factors {
			if f.Met {
				gotMet++
			}
		}
		if gotMet != met {
			t.Errorf("mask %04b: %d factors met, want %d", mask, gotMet, met)
		}
	}
}

func TestEvaluate_AllFourIsStrongBuy(t *testing.T) {
	got, factors := Evaluate(Inputs{
		Trinity:            true,
		ReturnPotentialPct: 80,
		VolumeSurge:        true,
		AboveBothMAs:       true,
	})
	if got != model.RatingStrongBuy {
		t.Errorf("rating = %s, want STRONG BUY", got)
	}
	if len(factors) != 4 {
		t.Fatalf("factor breakdown has %d entries, want 4", len(factors))
	}
}

func TestEvaluate_UpsideThreshold(t *testing.T) {
	got, _ := Evaluate(Inputs{ReturnPotentialPct: 50.0})
	if got != model.RatingHold {
		t.Errorf("exactly 50%% upside should count as one factor, got %s", got)
	}
	got, _ = Evaluate(Inputs{ReturnPotentialPct: 49.9})
	if got != model.RatingAvoid {
		t.Errorf("below-bar upside should not count, got %s", got)
	}
}

func TestEvaluate_MissingDataNeverFails(t *testing.T) {
	got, _ := Evaluate(Inputs{})
	if got != model.RatingAvoid {
		t.Errorf("all-absent inputs = %s, want AVOID", got)
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name           string
		entry, stop    float64
		maxRisk        float64
		wantShares     int
		wantInvestment float64
		wantRisk       float64
	}{
		{"stop at entry means no position", 100, 100, 500, 0, 0, 0},
		{"ten points of risk", 100, 90, 500, 50, 5000, 500},
		{"fractional shares round down", 10, 9.3, 100, 142, 1420, 99.4},
		{"stop above entry means no position", 50, 55, 500, 0, 0, 0},
		{"zero budget", 100, 90, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Size(tt.entry, tt.stop, tt.maxRisk)
			if plan.Shares != tt.wantShares {
				t.Errorf("shares = %d, want %d", plan.Shares, tt.wantShares)
			}
			if diff := plan.Investment - tt.wantInvestment; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("investment = %v, want %v", plan.Investment, tt.wantInvestment)
			}
			if diff := plan.Risk - tt.wantRisk; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("risk = %v, want %v", plan.Risk, tt.wantRisk)
			}
			if plan.StopLoss != tt.stop {
				t.Errorf("stop carried through = %v, want %v", plan.StopLoss, tt.stop)
			}
		})
	}
}

func TestStopFrom(t *testing.T) {
	if got := StopFrom(20, 18); got != 18*0.95 {
		t.Errorf("stop with support = %v, want %v", got, 18*0.95)
	}
	if got := StopFrom(20, 0); got != 20*0.92 {
		t.Errorf("stop without support = %v, want %v", got, 20*0.92)
	}
}
