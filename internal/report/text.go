package report

import (
	"fmt"
	"strings"
	"time"

	"TrinityScanner/internal/model"
)

// Subject builds the alert subject line for a scan day.
func Subject(asOf time.Time) string {
	return fmt.Sprintf("📈 Trinity Scan Results - %s", asOf.Format("2006-01-02"))
}

// Summary renders the plain-text body of the daily alert.
func Summary(run model.ScanRun, cands []model.Candidate, suppressed []string) string {
	var b strings.Builder

	if len(cands) == 0 {
		b.WriteString("No new Trinity candidates found today.\n")
	} else {
		tickers := make([]string, len(cands))
		for i, c := range cands {
			tickers[i] = c.Ticker
		}
		b.WriteString(fmt.Sprintf("%d new Trinity candidate(s): %s\n", len(cands), strings.Join(tickers, ", ")))
		b.WriteString("See attached report for the full analysis.\n")
	}

	if len(suppressed) > 0 {
		b.WriteString(fmt.Sprintf("\nRecently alerted tickers skipped: %s\n", strings.Join(suppressed, ", ")))
	}
	b.WriteString(fmt.Sprintf("\nTotal highs scanned: %d\n", run.TickersSeen))
	if run.RowErrors > 0 {
		b.WriteString(fmt.Sprintf("Rows skipped as unreadable: %d\n", run.RowErrors))
	}

	if len(cands) > 0 {
		b.WriteString("\n📊 Analysis summary:\n")
		counts := make(map[model.Rating]int)
		for _, c := range cands {
			counts[c.Rating]++
		}
		for _, r := range []model.Rating{model.RatingStrongBuy, model.RatingBuy, model.RatingHold, model.RatingAvoid} {
			if counts[r] > 0 {
				b.WriteString(fmt.Sprintf("  %s: %d\n", r, counts[r]))
			}
		}

		top := TopPicks(cands)
		if len(top) > 0 {
			b.WriteString(fmt.Sprintf("\n🎯 Top picks (%d):\n", len(top)))
			show := top
			if len(show) > 5 {
				show = show[:5]
			}
			for _, c := range show {
				b.WriteString(fmt.Sprintf("  %d. %s (%s) - %s\n", c.Rank, c.Ticker, c.Company, c.Rating))
				price := c.Price
				if c.Technical != nil && c.Technical.Price > 0 {
					price = c.Technical.Price
				}
				potential := 0.0
				if c.Fundamental != nil {
					potential = c.Fundamental.ReturnPotentialPct
				}
				b.WriteString(fmt.Sprintf("     Price: $%.2f | Potential: %.1f%% | Risk: %s\n", price, potential, c.RiskLevel))
			}
		}
	}

	return b.String()
}

// Detail renders one candidate as a full text block for the on-demand
// single ticker analysis.
func Detail(c model.Candidate) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%s)\n", c.Ticker, c.Company))
	b.WriteString(fmt.Sprintf("  Rating:        %s\n", c.Rating))
	for _, f := range c.Factors {
		b.WriteString(fmt.Sprintf("    %s %s\n", checkMark(f.Met), f.Name))
	}
	b.WriteString(fmt.Sprintf("  Entry status:  %s\n", c.EntryStatus))
	switch c.EntryStatus {
	case model.EntryNoHistory, model.EntryPriceError, model.EntryNA:
	default:
		b.WriteString(fmt.Sprintf("  Signal age:    %d day(s), %.1f%% move\n", c.DaysSinceSignal, c.PriceMovePct))
	}
	b.WriteString(fmt.Sprintf("  Trinity:       %s (%d appearance(s))\n", yesNo(c.Trinity), c.Appearances))
	b.WriteString(fmt.Sprintf("  Risk level:    %s\n", c.RiskLevel))

	if t := c.Technical; t != nil {
		b.WriteString("\n📉 Technical:\n")
		b.WriteString(fmt.Sprintf("  Price:         $%.2f\n", t.Price))
		b.WriteString(fmt.Sprintf("  SMA20 / SMA50: $%.2f / $%.2f\n", t.SMA20, t.SMA50))
		b.WriteString(fmt.Sprintf("  RSI(14):       %.1f\n", t.RSI14))
		b.WriteString(fmt.Sprintf("  Volume surge:  %s (%.2fx)\n", yesNo(t.VolumeSurge), t.VolumeRatio))
		b.WriteString(fmt.Sprintf("  5d / 20d:      %.1f%% / %.1f%%\n", t.PriceChange5dPct, t.PriceChange20dPct))
		b.WriteString(fmt.Sprintf("  Support:       $%.2f | Resistance: $%.2f\n", t.Support, t.Resistance))
	}
	if f := c.Fundamental; f != nil {
		b.WriteString("\n🏦 Fundamental:\n")
		if f.AnalystTarget > 0 {
			b.WriteString(fmt.Sprintf("  Analyst target: $%.2f (%.1f%% upside)\n", f.AnalystTarget, f.ReturnPotentialPct))
		}
		if f.PE > 0 {
			b.WriteString(fmt.Sprintf("  P/E:            %.1f\n", f.PE))
		}
		if f.DebtToEquity > 0 {
			b.WriteString(fmt.Sprintf("  Debt/equity:    %.2f\n", f.DebtToEquity))
		}
		if f.RevenueGrowthPct != 0 {
			b.WriteString(fmt.Sprintf("  Revenue growth: %.1f%%\n", f.RevenueGrowthPct))
		}
	}
	if p := c.Position; p != nil && p.Shares > 0 {
		b.WriteString("\n💰 Position plan:\n")
		b.WriteString(fmt.Sprintf("  Shares:        %d\n", p.Shares))
		b.WriteString(fmt.Sprintf("  Investment:    $%.0f\n", p.Investment))
		b.WriteString(fmt.Sprintf("  Risk:          $%.0f\n", p.Risk))
		b.WriteString(fmt.Sprintf("  Stop loss:     $%.2f\n", p.StopLoss))
	}
	if c.Note != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", c.Note))
	}
	return b.String()
}

func checkMark(met bool) string {
	if met {
		return "✅"
	}
	return "❌"
}
