package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"TickerLens/internal/model"
)

func TestDefault_MatchesDashboardLiterals(t *testing.T) {
	c := Default()
	if len(c.Markets) != 4 {
		t.Fatalf("expected 4 market rows, got %d", len(c.Markets))
	}
	tests := []struct {
		symbol  string
		price   float64
		change  float64
		pct     float64
		verdict model.Verdict
	}{
		{"SPY", 445.67, 2.34, 0.53, model.VerdictGreen},
		{"QQQ", 378.91, 1.87, 0.49, model.VerdictGreen},
		{"IWM", 198.45, -0.76, -0.38, model.VerdictOrange},
		{"VIX", 18.23, -1.45, -7.37, model.VerdictGreen},
	}
	for i, tt := range tests {
		row := c.Markets[i]
		if row.Symbol != tt.symbol || row.Price != tt.price || row.Change != tt.change ||
			row.ChangePercent != tt.pct || row.Verdict != tt.verdict {
			t.Errorf("row %d = %+v, want %+v", i, row, tt)
		}
	}

	if len(c.Phases) != len(model.Phases) {
		t.Fatalf("expected %d phases, got %d", len(model.Phases), len(c.Phases))
	}
	for i, p := range model.Phases {
		if c.Phases[i].Phase != p {
			t.Errorf("phase %d = %s, want %s", i, c.Phases[i].Phase, p)
		}
		if len(c.Phases[i].Characteristics) != 3 {
			t.Errorf("%s: expected 3 characteristics, got %d", p, len(c.Phases[i].Characteristics))
		}
	}
	if e, _ := c.Phase(model.PhaseBreakout); e.Description != "Stock breaking above resistance with volume" {
		t.Errorf("breakout description = %q", e.Description)
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := c.Market("SPY"); !ok {
		t.Error("expected SPY in default catalog")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := "markets:\n  - {symbol: DIA, price: 340.1, change: 0, change_percent: 0, verdict: Red}\nphases: []\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	row, ok := c.Market("DIA")
	if !ok || row.Verdict != model.VerdictRed || row.Price != 340.1 {
		t.Errorf("unexpected row %+v", row)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown verdict", "markets:\n  - {symbol: SPY, verdict: Blue}\n", "unknown verdict"},
		{"missing symbol", "markets:\n  - {verdict: Green}\n", "symbol is required"},
		{"duplicate symbol", "markets:\n  - {symbol: SPY, verdict: Green}\n  - {symbol: SPY, verdict: Red}\n", "duplicate"},
		{"unknown phase", "phases:\n  - {phase: Moon, description: x}\n", "unknown phase"},
		{"missing description", "phases:\n  - {phase: Base}\n", "description is required"},
		{"bad yaml", "markets: [", "parse content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
