package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TickerLens/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog is the static reference content shown beside the analyzer.
type Catalog struct {
	Markets []model.MarketRow       `yaml:"markets"`
	Phases  []model.PhaseGuideEntry `yaml:"phases"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks symbols, verdicts and phase names.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Markets))
	for i, row := range c.Markets {
		if row.Symbol == "" {
			return fmt.Errorf("markets[%d]: symbol is required", i)
		}
		if seen[row.Symbol] {
			return fmt.Errorf("markets[%d]: duplicate symbol %s", i, row.Symbol)
		}
		seen[row.Symbol] = true
		if !row.Verdict.Valid() {
			return fmt.Errorf("markets[%d]: unknown verdict %q", i, row.Verdict)
		}
	}
	for i, p := range c.Phases {
		if !p.Phase.Valid() {
			return fmt.Errorf("phases[%d]: unknown phase %q", i, p.Phase)
		}
		if p.Description == "" {
			return fmt.Errorf("phases[%d]: description is required", i)
		}
	}
	return nil
}

// Market returns the overview row for symbol.
func (c *Catalog) Market(symbol string) (model.MarketRow, bool) {
	for _, row := range c.Markets {
		if row.Symbol == symbol {
			return row, true
		}
	}
	return model.MarketRow{}, false
}

// Phase returns the guide entry for p.
func (c *Catalog) Phase(p model.Phase) (model.PhaseGuideEntry, bool) {
	for _, e := range c.Phases {
		if e.Phase == p {
			return e, true
		}
	}
	return model.PhaseGuideEntry{}, false
}
