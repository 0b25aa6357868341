package game

import "errors"

// ErrBudgetExhausted is returned by Successor once the per-frame budget of
// transition calls has been used up. It is an expected signal: searches stop
// and fall back to the best result found so far.
var ErrBudgetExhausted = errors.New("successor budget exhausted")

// State should be immutable - operations on State always return a new copy
type State interface {
	// LegalActions is empty only for terminal states
	LegalActions() []Action
	// AllActions returns the full action alphabet, legal or not
	AllActions() []Action
	IsWin() bool
	IsLose() bool
	Score() float64
	// Successor spends one unit of the shared budget
	Successor(Action) (State, error)
}

// Evaluate scores a state.
type Evaluate func(State) float64

// EvaluateRelative scores a state relative to the root of a search.
type EvaluateRelative func(root State, state State) float64

func IsTerminal(s State) bool {
	return s.IsWin() || s.IsLose()
}
