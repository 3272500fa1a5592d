package model

// MarketRow is one line of the market overview table.
type MarketRow struct {
	Symbol        string  `yaml:"symbol" json:"symbol"`
	Price         float64 `yaml:"price" json:"price"`
	Change        float64 `yaml:"change" json:"change"`
	ChangePercent float64 `yaml:"change_percent" json:"changePercent"`
	Verdict       Verdict `yaml:"verdict" json:"verdict"`
}

// PhaseGuideEntry describes one trading phase for the educational panel.
type PhaseGuideEntry struct {
	Phase           Phase    `yaml:"phase" json:"phase"`
	Description     string   `yaml:"description" json:"description"`
	Tone            string   `yaml:"tone" json:"tone"`
	Characteristics []string `yaml:"characteristics" json:"characteristics"`
}
