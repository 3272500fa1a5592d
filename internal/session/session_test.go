package session

import (
	"testing"

	"TickerLens/internal/analyzer"
	"TickerLens/internal/model"
)

func TestTransitions(t *testing.T) {
	rec := analyzer.Generate("AAPL")
	ready := State{Status: StatusReady, Ticker: "AAPL", Record: &rec}

	tests := []struct {
		name   string
		from   State
		event  Event
		status Status
		ticker string
	}{
		{"submit from idle", Idle(), Submit{Ticker: " aapl "}, StatusLoading, "AAPL"},
		{"blank submit", Idle(), Submit{Ticker: "   "}, StatusInvalid, ""},
		{"submit from invalid", State{Status: StatusInvalid, Message: BlankTickerMessage}, Submit{Ticker: "tsla"}, StatusLoading, "TSLA"},
		{"submit from ready", ready, Submit{Ticker: "msft"}, StatusLoading, "MSFT"},
		{"submit while loading is ignored", State{Status: StatusLoading, Ticker: "AAPL"}, Submit{Ticker: "TSLA"}, StatusLoading, "AAPL"},
		{"blank submit while loading is ignored", State{Status: StatusLoading, Ticker: "AAPL"}, Submit{}, StatusLoading, "AAPL"},
		{"success while loading", State{Status: StatusLoading, Ticker: "AAPL"}, Success{Record: rec}, StatusReady, "AAPL"},
		{"success while idle is ignored", Idle(), Success{Record: rec}, StatusIdle, ""},
		{"clear from ready", ready, Clear{}, StatusIdle, ""},
		{"clear from loading", State{Status: StatusLoading, Ticker: "AAPL"}, Clear{}, StatusIdle, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.Transition(tt.event)
			if got.Status != tt.status {
				t.Errorf("status = %s, want %s", got.Status, tt.status)
			}
			if got.Ticker != tt.ticker {
				t.Errorf("ticker = %q, want %q", got.Ticker, tt.ticker)
			}
		})
	}
}

func TestInvalidCarriesMessage(t *testing.T) {
	got := Idle().Transition(Submit{Ticker: ""})
	if got.Message != BlankTickerMessage {
		t.Errorf("message = %q", got.Message)
	}
	if got.Record != nil {
		t.Error("invalid state should not carry a record")
	}
}

func TestReadyHoldsRecord(t *testing.T) {
	loading := Idle().Transition(Submit{Ticker: "a"})
	rec := analyzer.Generate(loading.Ticker)
	ready := loading.Transition(Success{Record: rec})
	if ready.Record == nil {
		t.Fatal("expected record in ready state")
	}
	if ready.Record.Verdict != model.VerdictRed {
		t.Errorf("verdict = %s, want Red", ready.Record.Verdict)
	}
}

func TestTransitionDoesNotMutate(t *testing.T) {
	s := Idle()
	_ = s.Transition(Submit{Ticker: "AAPL"})
	if s.Status != StatusIdle || s.Ticker != "" {
		t.Errorf("receiver changed: %+v", s)
	}
}

func TestReadyRecordIsDetached(t *testing.T) {
	rec := analyzer.Generate("AAPL")
	first := rec.Reasons[0]
	ready := State{Status: StatusLoading, Ticker: "AAPL"}.Transition(Success{Record: rec})

	rec.Reasons[0] = "changed"
	if ready.Record.Reasons[0] != first {
		t.Errorf("ready record shares reasons with caller: %q", ready.Record.Reasons[0])
	}
}
