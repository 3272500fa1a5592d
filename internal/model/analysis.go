package model

// Metrics holds the synthetic indicator values shown next to a verdict.
// Values are closed-form functions of the ticker hash, not of price data.
type Metrics struct {
	EMA20          float64 `json:"ema20"`
	EMA50          float64 `json:"ema50"`
	RSI14          float64 `json:"rsi14"`
	MACD           float64 `json:"macd"`
	MACDSignal     float64 `json:"macdSignal"`
	AvgVol20       int64   `json:"avgVol20"`
	VolToday       int64   `json:"volToday"`
	Upper20        float64 `json:"upper20"`
	Lower20        float64 `json:"lower20"`
	Resistance50   float64 `json:"resistance50"`
	OBVSlope10     int64   `json:"obvSlope10"`
	ADSlope10      int64   `json:"adSlope10"`
	MFI14          float64 `json:"mfi14"`
	AccumDays20    int     `json:"accumDays20"`
	DistDays20     int     `json:"distDays20"`
	AccumMinusDist int     `json:"accumMinusDist"`
}

// MetricNames is the canonical order of metric names.
var MetricNames = []string{
	"ema20", "ema50", "rsi14", "macd", "macdSignal",
	"avgVol20", "volToday", "upper20", "lower20", "resistance50",
	"obvSlope10", "adSlope10", "mfi14",
	"accumDays20", "distDays20", "accumMinusDist",
}

// Map returns the metrics keyed by name.
func (m Metrics) Map() map[string]float64 {
	return map[string]float64{
		"ema20":          m.EMA20,
		"ema50":          m.EMA50,
		"rsi14":          m.RSI14,
		"macd":           m.MACD,
		"macdSignal":     m.MACDSignal,
		"avgVol20":       float64(m.AvgVol20),
		"volToday":       float64(m.VolToday),
		"upper20":        m.Upper20,
		"lower20":        m.Lower20,
		"resistance50":   m.Resistance50,
		"obvSlope10":     float64(m.OBVSlope10),
		"adSlope10":      float64(m.ADSlope10),
		"mfi14":          m.MFI14,
		"accumDays20":    float64(m.AccumDays20),
		"distDays20":     float64(m.DistDays20),
		"accumMinusDist": float64(m.AccumMinusDist),
	}
}

// AnalysisRecord is the output of the mock analyzer. A record is built
// fresh for every call and must not be modified afterwards.
type AnalysisRecord struct {
	Verdict Verdict  `json:"verdict"`
	Phase   Phase    `json:"phase"`
	Reasons []string `json:"reasons"`
	Metrics Metrics  `json:"metrics"`
}
