package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"TrinityScanner/internal/model"
)

var csvHeader = []string{
	"Rank", "Ticker", "Company", "Rating", "Entry_Status", "Days_Since_Signal",
	"Price_Move_Pct", "Current_Price", "Price_Change_5d", "RSI", "Return_Potential",
	"Risk_Level", "Catalyst", "Shares_Recommended", "Investment_Amount", "Risk_Amount",
	"Stop_Loss", "Trinity_Pattern", "New_Highs_Count", "Volume_Surge", "Above_SMA20",
	"Above_SMA50",
}

// WriteCSV renders candidate rows in the order given. Cells whose data
// was unavailable read "N/A" so a degraded row is visible as such.
func WriteCSV(w io.Writer, cands []model.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range cands {
		if err := cw.Write(csvRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(c model.Candidate) []string {
	price := c.Price
	if c.Technical != nil && c.Technical.Price > 0 {
		price = c.Technical.Price
	}

	days, move := "N/A", "N/A"
	switch c.EntryStatus {
	case model.EntryNoHistory, model.EntryPriceError, model.EntryNA:
	default:
		days = strconv.Itoa(c.DaysSinceSignal)
		move = fmt.Sprintf("%.1f%%", c.PriceMovePct)
	}

	change5d, rsi := "N/A", "N/A"
	volumeSurge, aboveSMA20, aboveSMA50 := "No", "No", "No"
	if c.Technical != nil {
		change5d = fmt.Sprintf("%.1f%%", c.Technical.PriceChange5dPct)
		rsi = fmt.Sprintf("%.1f", c.Technical.RSI14)
		volumeSurge = yesNo(c.Technical.VolumeSurge)
		aboveSMA20 = yesNo(c.Technical.AboveSMA20)
		aboveSMA50 = yesNo(c.Technical.AboveSMA50)
	}

	potential := 0.0
	if c.Fundamental != nil {
		potential = c.Fundamental.ReturnPotentialPct
	}

	shares, investment, risk, stop := "N/A", "N/A", "N/A", "N/A"
	if c.Position != nil {
		shares = strconv.Itoa(c.Position.Shares)
		investment = fmt.Sprintf("$%.0f", c.Position.Investment)
		risk = fmt.Sprintf("$%.0f", c.Position.Risk)
		stop = fmt.Sprintf("$%.2f", c.Position.StopLoss)
	}

	return []string{
		strconv.Itoa(c.Rank),
		c.Ticker,
		c.Company,
		string(c.Rating),
		string(c.EntryStatus),
		days,
		move,
		fmt.Sprintf("$%.2f", price),
		change5d,
		rsi,
		fmt.Sprintf("%.1f%%", potential),
		string(c.RiskLevel),
		catalyst(c),
		shares,
		investment,
		risk,
		stop,
		yesNo(c.Trinity),
		strconv.Itoa(c.Appearances),
		volumeSurge,
		aboveSMA20,
		aboveSMA50,
	}
}

// catalyst summarizes why the row is interesting.
func catalyst(c model.Candidate) string {
	var parts []string
	if c.Trinity {
		parts = append(parts, "Trinity pattern confirmed")
	}
	if c.Fundamental != nil && c.Fundamental.ReturnPotentialPct > 50 {
		parts = append(parts, fmt.Sprintf("%.1f%% upside potential", c.Fundamental.ReturnPotentialPct))
	}
	if c.Technical != nil && c.Technical.VolumeSurge {
		parts = append(parts, "Volume surge")
	}
	if c.Fundamental != nil && c.Fundamental.RevenueGrowthPct > 10 {
		parts = append(parts, fmt.Sprintf("%.1f%% revenue growth", c.Fundamental.RevenueGrowthPct))
	}
	if len(parts) == 0 {
		return "Technical breakout"
	}
	return strings.Join(parts, " | ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
