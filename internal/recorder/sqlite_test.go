package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"TickerLens/internal/analyzer"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Now().Add(-time.Hour)

	for i, ticker := range []string{"AAPL", "TSLA", "MSFT"} {
		e := NewEntry(ticker, analyzer.Generate(ticker), SourceAPI)
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := r.RecordAnalysis(e); err != nil {
			t.Fatalf("RecordAnalysis(%s): %v", ticker, err)
		}
		if e.ID == 0 {
			t.Errorf("%s: expected id to be assigned", ticker)
		}
	}

	got, err := r.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Ticker != "MSFT" || got[1].Ticker != "TSLA" {
		t.Errorf("expected newest first, got %s, %s", got[0].Ticker, got[1].Ticker)
	}
	aapl := analyzer.Generate("AAPL")
	all, _ := r.Recent(10)
	last := all[len(all)-1]
	if last.Verdict != aapl.Verdict || last.Phase != aapl.Phase || last.ReasonCount != len(aapl.Reasons) {
		t.Errorf("stored entry %+v does not match record", last)
	}
	if last.Source != SourceAPI {
		t.Errorf("source = %q", last.Source)
	}
}

func TestSQLiteRecorder_Prune(t *testing.T) {
	r := openTestRecorder(t)
	old := NewEntry("OLD", analyzer.Generate("OLD"), SourceWeb)
	old.CreatedAt = time.Now().AddDate(0, 0, -40)
	fresh := NewEntry("NEW", analyzer.Generate("NEW"), SourceWeb)
	for _, e := range []*Entry{old, fresh} {
		if err := r.RecordAnalysis(e); err != nil {
			t.Fatal(err)
		}
	}

	n, err := r.Prune(time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}
	left, _ := r.Recent(10)
	if len(left) != 1 || left[0].Ticker != "NEW" {
		t.Errorf("unexpected remaining entries %+v", left)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordAnalysis(NewEntry("A", analyzer.Generate("A"), SourceWeb)); err != nil {
		t.Error(err)
	}
	got, err := r.Recent(5)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("Recent = %v, %v", got, err)
	}
}
