package recorder

import (
	"time"

	"TickerLens/internal/model"
)

// Source identifies which surface asked for an analysis.
type Source string

const (
	SourceWeb       Source = "web"
	SourceAPI       Source = "api"
	SourceWebSocket Source = "ws"
	SourceTelegram  Source = "telegram"
)

// Entry is one served analysis in the history log.
type Entry struct {
	ID          int64         `json:"id"`
	Ticker      string        `json:"ticker"`
	Verdict     model.Verdict `json:"verdict"`
	Phase       model.Phase   `json:"phase"`
	ReasonCount int           `json:"reasonCount"`
	Source      Source        `json:"source"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewEntry builds a history entry for a generated record.
func NewEntry(ticker string, rec model.AnalysisRecord, src Source) *Entry {
	return &Entry{
		Ticker:      ticker,
		Verdict:     rec.Verdict,
		Phase:       rec.Phase,
		ReasonCount: len(rec.Reasons),
		Source:      src,
		CreatedAt:   time.Now(),
	}
}

// Recorder persists the analysis history.
type Recorder interface {
	RecordAnalysis(e *Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
	// Prune deletes entries created before the cutoff and reports how many went.
	Prune(before time.Time) (int64, error)
	Close() error
}
