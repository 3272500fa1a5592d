package analyzer

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"TickerLens/internal/model"
)

func TestHash(t *testing.T) {
	tests := []struct {
		ticker string
		want   int
	}{
		{"", 0},
		{"A", 65},
		{"AAPL", 286},
		{"TSLA", 84 + 83 + 76 + 65},
		{"€", 0x20AC},
		{"𝄞", 0xD834 + 0xDD1E},
	}
	for _, tt := range tests {
		if got := Hash(tt.ticker); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.ticker, got, tt.want)
		}
	}
}

func TestGenerate_AAPL(t *testing.T) {
	rec := Generate("AAPL")
	if rec.Verdict != model.VerdictOrange {
		t.Errorf("verdict = %s, want Orange", rec.Verdict)
	}
	if rec.Phase != model.PhaseBreakoutRetest {
		t.Errorf("phase = %s, want Breakout+Retest", rec.Phase)
	}
	want := []string{
		"EMA20>EMA50 ↑",
		"MACD > signal ↑",
		"RSI 56 ok",
		"Accum−Dist = +2",
		"OBV ↑10d",
		"A/D ↑10d",
	}
	if !reflect.DeepEqual(rec.Reasons, want) {
		t.Errorf("reasons = %q, want %q", rec.Reasons, want)
	}
	if math.Abs(rec.Metrics.EMA20-181.67) > 1e-9 {
		t.Errorf("ema20 = %v, want 181.67", rec.Metrics.EMA20)
	}
	if rec.Metrics.RSI14 != 51 {
		t.Errorf("rsi14 = %v, want 51", rec.Metrics.RSI14)
	}
	if rec.Metrics.AccumDays20 != 6 || rec.Metrics.DistDays20 != 4 || rec.Metrics.AccumMinusDist != 2 {
		t.Errorf("accum/dist = %d/%d/%d, want 6/4/2",
			rec.Metrics.AccumDays20, rec.Metrics.DistDays20, rec.Metrics.AccumMinusDist)
	}
}

func TestGenerate_SingleLetter(t *testing.T) {
	rec := Generate("A")
	if rec.Verdict != model.VerdictRed {
		t.Errorf("verdict = %s, want Red", rec.Verdict)
	}
	if rec.Phase != model.PhaseBreakout {
		t.Errorf("phase = %s, want Breakout", rec.Phase)
	}
	if len(rec.Reasons) != 5 {
		t.Errorf("expected 5 reasons, got %d", len(rec.Reasons))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, ticker := range []string{"AAPL", "GOOGL", "TSLA", "BRK.B", "X"} {
		a, b := Generate(ticker), Generate(ticker)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two calls differ: %+v vs %+v", ticker, a, b)
		}
	}
}

func TestGenerate_CaseBasis(t *testing.T) {
	// The generator never normalizes; callers upper-case first.
	if !reflect.DeepEqual(Generate(strings.ToUpper("msft")), Generate("MSFT")) {
		t.Error("upper-cased input should match the normalized ticker")
	}
	if Hash("msft") == Hash("MSFT") {
		t.Error("lower and upper case should hash differently")
	}
}

func TestGenerate_AnagramsCollide(t *testing.T) {
	if !reflect.DeepEqual(Generate("AB"), Generate("BA")) {
		t.Error("anagram tickers should produce identical records")
	}
}

func TestGenerate_LongestReasonList(t *testing.T) {
	// h = 3 gives 4+3 = 7 reasons; the volume multiple is the 8th candidate and never shown.
	rec := fromHash(3)
	if len(rec.Reasons) != 7 {
		t.Fatalf("expected 7 reasons, got %d", len(rec.Reasons))
	}
	if rec.Reasons[6] != "Donchian breakout" {
		t.Errorf("last reason = %q", rec.Reasons[6])
	}
}

func TestReasons_VolumeMultiple(t *testing.T) {
	tests := []struct {
		h    int
		want string
	}{
		{0, "Breakout on 1.2× vol"},
		{6, "Breakout on 1.8× vol"},
		{19, "Breakout on 3.1× vol"},
		{20, "Breakout on 1.2× vol"},
	}
	for _, tt := range tests {
		got := candidateReasons(tt.h)[7]
		if got != tt.want {
			t.Errorf("h=%d: got %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestFromHash_Ranges(t *testing.T) {
	for h := 0; h < 5000; h++ {
		rec := fromHash(h)
		if !rec.Verdict.Valid() {
			t.Fatalf("h=%d: invalid verdict %q", h, rec.Verdict)
		}
		if !rec.Phase.Valid() {
			t.Fatalf("h=%d: invalid phase %q", h, rec.Phase)
		}
		if n := len(rec.Reasons); n < 4 || n > 7 {
			t.Fatalf("h=%d: reason count %d out of [4,7]", h, n)
		}
	}
}

func TestFromHash_MetricBounds(t *testing.T) {
	bounds := map[string][2]float64{
		"ema20":          {145.67, 194.67},
		"ema50":          {142.33, 181.33},
		"rsi14":          {45, 79},
		"macd":           {0, 0.9},
		"macdSignal":     {0, 0.7},
		"avgVol20":       {1000000, 1499999},
		"volToday":       {1200000, 1999999},
		"upper20":        {150.25, 179.25},
		"lower20":        {135.75, 154.75},
		"resistance50":   {148.90, 172.90},
		"obvSlope10":     {-500000, 499999},
		"adSlope10":      {-100000, 99999},
		"mfi14":          {35, 79},
		"accumDays20":    {0, 7},
		"distDays20":     {0, 5},
		"accumMinusDist": {-5, 7},
	}
	const eps = 1e-9
	// Sweep past the largest modulus so every residue is visited.
	for h := 0; h < 1000050; h += 7 {
		values := fromHash(h).Metrics.Map()
		if len(values) != len(model.MetricNames) {
			t.Fatalf("expected %d metrics, got %d", len(model.MetricNames), len(values))
		}
		for name, b := range bounds {
			v := values[name]
			if v < b[0]-eps || v > b[1]+eps {
				t.Fatalf("h=%d: %s = %v outside [%v, %v]", h, name, v, b[0], b[1])
			}
		}
	}
}
