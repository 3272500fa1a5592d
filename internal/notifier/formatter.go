package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TickerLens/internal/display"
	"TickerLens/internal/model"
)

var verdictEmoji = map[model.Verdict]string{
	model.VerdictGreen:  "🟢",
	model.VerdictOrange: "🟠",
	model.VerdictRed:    "🔴",
}

// FormatAnalysis formats one analysis record into a Telegram message.
func FormatAnalysis(ticker string, rec model.AnalysisRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s %s\n", html.EscapeString(ticker), verdictEmoji[rec.Verdict], rec.Verdict))
	b.WriteString(fmt.Sprintf("Phase: %s\n\n", html.EscapeString(string(rec.Phase))))

	b.WriteString("📈 <b>Reasons:</b>\n")
	for _, r := range rec.Reasons {
		b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(r)))
	}

	b.WriteString("\n<b>Metrics:</b>\n")
	for _, f := range display.MetricsPanel(rec.Metrics) {
		b.WriteString(fmt.Sprintf("  %s: %s\n", f.Label, f.Value))
	}
	return b.String()
}

// FormatMarketOverview formats the market rows as a digest.
func FormatMarketOverview(rows []model.MarketRow, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗞 <b>Market Overview</b> | %s\n\n", at.Format("2006-01-02")))
	for _, v := range display.Markets(rows) {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s %s\n", verdictEmoji[v.Verdict], html.EscapeString(v.Symbol), v.Price, v.Change))
	}
	return b.String()
}

// FormatPhaseGuide lists the phases and their characteristics.
func FormatPhaseGuide(phases []model.PhaseGuideEntry) string {
	var b strings.Builder
	b.WriteString("🧭 <b>Phase Guide</b>\n")
	for _, p := range phases {
		b.WriteString(fmt.Sprintf("\n<b>%s</b>: %s\n", html.EscapeString(string(p.Phase)), html.EscapeString(p.Description)))
		for _, c := range p.Characteristics {
			b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(c)))
		}
	}
	return b.String()
}

// HelpText lists the supported bot commands.
func HelpText() string {
	return "Commands:\n" +
		"/analyze TICKER - technical verdict for a ticker\n" +
		"/market - market overview\n" +
		"/phases - phase guide"
}
