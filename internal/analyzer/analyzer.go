package analyzer

import (
	"fmt"
	"unicode/utf16"

	"github.com/shopspring/decimal"

	"TickerLens/internal/model"
)

// Hash sums the UTF-16 code units of ticker. Anagrams collide.
func Hash(ticker string) int {
	h := 0
	for _, u := range utf16.Encode([]rune(ticker)) {
		h += int(u)
	}
	return h
}

// Generate builds the mock analysis for ticker. It does not change case or
// validate input; callers upper-case and reject blank tickers first.
func Generate(ticker string) model.AnalysisRecord {
	return fromHash(Hash(ticker))
}

func fromHash(h int) model.AnalysisRecord {
	return model.AnalysisRecord{
		Verdict: model.Verdicts[h%len(model.Verdicts)],
		Phase:   model.Phases[h%len(model.Phases)],
		Reasons: reasons(h),
		Metrics: metrics(h),
	}
}

// reasons keeps the first 4..7 of the eight candidates, in order.
func reasons(h int) []string {
	n := 4 + h%4
	return candidateReasons(h)[:n:n]
}

func candidateReasons(h int) []string {
	volMultiple := decimal.NewFromFloat(1.2).Add(decimal.New(int64(h%20), -1))
	return []string{
		"EMA20>EMA50 ↑",
		"MACD > signal ↑",
		fmt.Sprintf("RSI %d ok", 45+h%25),
		fmt.Sprintf("Accum−Dist = +%d", 1+h%5),
		"OBV ↑10d",
		"A/D ↑10d",
		"Donchian breakout",
		fmt.Sprintf("Breakout on %s× vol", volMultiple.StringFixed(1)),
	}
}

func metrics(h int) model.Metrics {
	return model.Metrics{
		EMA20:          145.67 + float64(h%50),
		EMA50:          142.33 + float64(h%40),
		RSI14:          float64(45 + h%35),
		MACD:           float64(h%10) / 10,
		MACDSignal:     float64(h%8) / 10,
		AvgVol20:       int64(1000000 + h%500000),
		VolToday:       int64(1200000 + h%800000),
		Upper20:        150.25 + float64(h%30),
		Lower20:        135.75 + float64(h%20),
		Resistance50:   148.90 + float64(h%25),
		OBVSlope10:     int64(-500000 + h%1000000),
		ADSlope10:      int64(-100000 + h%200000),
		MFI14:          float64(35 + h%45),
		AccumDays20:    h % 8,
		DistDays20:     h % 6,
		AccumMinusDist: h%8 - h%6,
	}
}
