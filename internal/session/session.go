// Package session models the analyzer panel as an immutable state machine.
package session

import (
	"slices"
	"strings"

	"TickerLens/internal/model"
)

// Status is the coarse state of the analyzer panel.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusInvalid Status = "invalid"
)

// BlankTickerMessage is shown when a submit carries no ticker.
const BlankTickerMessage = "Enter a ticker symbol"

// State is a snapshot of the panel. Transitions return a new State.
type State struct {
	Status  Status                `json:"status"`
	Ticker  string                `json:"ticker,omitempty"`
	Record  *model.AnalysisRecord `json:"record,omitempty"`
	Message string                `json:"message,omitempty"`
}

// Event drives a transition.
type Event interface {
	apply(s State) State
}

// Submit asks for an analysis of Ticker.
type Submit struct{ Ticker string }

// Success delivers the generated record for the pending ticker.
type Success struct{ Record model.AnalysisRecord }

// Clear resets the panel.
type Clear struct{}

// Idle is the initial state.
func Idle() State { return State{Status: StatusIdle} }

// Transition applies ev to s.
func (s State) Transition(ev Event) State {
	return ev.apply(s)
}

// Busy reports whether a submit is in flight.
func (s State) Busy() bool { return s.Status == StatusLoading }

// NormalizeTicker trims and upper-cases raw user input.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (e Submit) apply(s State) State {
	if s.Busy() {
		return s
	}
	ticker := NormalizeTicker(e.Ticker)
	if ticker == "" {
		return State{Status: StatusInvalid, Message: BlankTickerMessage}
	}
	return State{Status: StatusLoading, Ticker: ticker}
}

func (e Success) apply(s State) State {
	if !s.Busy() {
		return s
	}
	rec := e.Record
	rec.Reasons = slices.Clone(rec.Reasons)
	return State{Status: StatusReady, Ticker: s.Ticker, Record: &rec}
}

func (Clear) apply(State) State { return Idle() }
