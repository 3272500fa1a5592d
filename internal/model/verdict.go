package model

// Verdict is the coarse rating assigned to a ticker.
type Verdict string

const (
	VerdictGreen  Verdict = "Green"
	VerdictOrange Verdict = "Orange"
	VerdictRed    Verdict = "Red"
)

// Verdicts lists every verdict in generator index order.
var Verdicts = []Verdict{VerdictGreen, VerdictOrange, VerdictRed}

// Valid reports whether v is one of the known verdicts.
func (v Verdict) Valid() bool {
	for _, known := range Verdicts {
		if v == known {
			return true
		}
	}
	return false
}

// Phase labels a stage of a hypothetical price pattern.
type Phase string

const (
	PhaseBase           Phase = "Base"
	PhaseBreakout       Phase = "Breakout"
	PhaseBreakoutRetest Phase = "Breakout+Retest"
	PhasePostBreakout   Phase = "Post-Breakout"
)

// Phases lists every phase in generator index order.
var Phases = []Phase{PhaseBase, PhaseBreakout, PhaseBreakoutRetest, PhasePostBreakout}

func (p Phase) Valid() bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}
