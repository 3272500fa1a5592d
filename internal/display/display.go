// Package display turns records and overview rows into the strings the
// dashboard and chat messages show.
package display

import (
	"github.com/shopspring/decimal"

	"TickerLens/internal/model"
)

// Currency formats v as dollars with two decimals.
func Currency(v float64) string {
	return "$" + Fixed(v, 2)
}

// Fixed formats v with the given number of decimals, rounding half away from zero.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Signed is Fixed with an explicit "+" for zero and positive values.
func Signed(v float64, places int32) string {
	s := Fixed(v, places)
	if v >= 0 {
		return "+" + s
	}
	return s
}

// Change formats a day change as "+2.34 (+0.53%)".
func Change(change, changePercent float64) string {
	return Signed(change, 2) + " (" + Signed(changePercent, 2) + "%)"
}

// Tone maps a verdict to its badge style.
func Tone(v model.Verdict) string {
	switch v {
	case model.VerdictGreen:
		return "success"
	case model.VerdictOrange:
		return "warning"
	case model.VerdictRed:
		return "danger"
	default:
		return "secondary"
	}
}

// VerdictIcon is the icon next to the analyzer verdict badge.
func VerdictIcon(v model.Verdict) string {
	switch v {
	case model.VerdictGreen:
		return "trending-up"
	case model.VerdictRed:
		return "trending-down"
	default:
		return "alert-circle"
	}
}

// RowIcon is the icon on a market overview badge.
func RowIcon(v model.Verdict) string {
	switch v {
	case model.VerdictGreen:
		return "trending-up"
	case model.VerdictRed:
		return "trending-down"
	default:
		return "activity"
	}
}

// Field is a labelled display value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricsPanel returns the eight fields of the technical metrics card.
func MetricsPanel(m model.Metrics) []Field {
	return []Field{
		{"EMA20", Currency(m.EMA20)},
		{"EMA50", Currency(m.EMA50)},
		{"RSI14", Fixed(m.RSI14, 1)},
		{"MFI14", Fixed(m.MFI14, 1)},
		{"MACD", Fixed(m.MACD, 3)},
		{"Signal", Fixed(m.MACDSignal, 3)},
		{"Vol Ratio", VolumeRatio(m) + "x"},
		{"A-D Net", ADNet(m.AccumMinusDist)},
	}
}

// VolumeRatio is today's volume over the 20-day average, one decimal.
func VolumeRatio(m model.Metrics) string {
	if m.AvgVol20 == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(m.VolToday).Div(decimal.NewFromInt(m.AvgVol20)).StringFixed(1)
}

// ADNet shows the accumulation minus distribution count, "+" only when positive.
func ADNet(n int) string {
	s := decimal.NewFromInt(int64(n)).String()
	if n > 0 {
		return "+" + s
	}
	return s
}

// MarketView is a formatted market overview row.
type MarketView struct {
	Symbol  string        `json:"symbol"`
	Verdict model.Verdict `json:"verdict"`
	Price   string        `json:"price"`
	Change  string        `json:"change"`
	Up      bool          `json:"up"`
	Tone    string        `json:"tone"`
	Icon    string        `json:"icon"`
}

// Market formats an overview row.
func Market(row model.MarketRow) MarketView {
	return MarketView{
		Symbol:  row.Symbol,
		Verdict: row.Verdict,
		Price:   Currency(row.Price),
		Change:  Change(row.Change, row.ChangePercent),
		Up:      row.Change >= 0,
		Tone:    Tone(row.Verdict),
		Icon:    RowIcon(row.Verdict),
	}
}

// Markets formats every row.
func Markets(rows []model.MarketRow) []MarketView {
	out := make([]MarketView, len(rows))
	for i, r := range rows {
		out[i] = Market(r)
	}
	return out
}
