// Package gametest provides deterministic game states for testing agents.
package gametest

import "pacman/game"

// Call records one Successor invocation.
type Call struct {
	Path      []game.Action
	Action    game.Action
	Exhausted bool
}

// Trace is shared by every state derived from one root.
type Trace struct {
	Calls []Call
}

// Failures counts calls that hit the exhausted budget.
func (t *Trace) Failures() int {
	n := 0
	for _, c := range t.Calls {
		if c.Exhausted {
			n++
		}
	}
	return n
}

// State is a stub whose score and outcome are pure functions of the path of
// actions that produced it.
type State struct {
	budget  *game.Budget
	trace   *Trace
	path    []game.Action
	legal   []game.Action
	score   func(path []game.Action) float64
	outcome func(path []game.Action) (win, lose bool)
}

type Option func(s *State)

// WithLegal sets the legal actions of every non-terminal state.
func WithLegal(actions ...game.Action) Option {
	return func(s *State) {
		s.legal = actions
	}
}

func WithScore(score func(path []game.Action) float64) Option {
	return func(s *State) {
		s.score = score
	}
}

func WithOutcome(outcome func(path []game.Action) (win, lose bool)) Option {
	return func(s *State) {
		s.outcome = outcome
	}
}

// New returns a root state with a budget of limit successor calls.
func New(limit int, options ...Option) *State {
	s := &State{
		budget:  game.NewBudget(limit),
		trace:   &Trace{},
		legal:   game.AllActions(),
		score:   func([]game.Action) float64 { return 0 },
		outcome: func([]game.Action) (bool, bool) { return false, false },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// ScoreBy scores a path by summing per-action rewards.
func ScoreBy(rewards map[game.Action]float64) func([]game.Action) float64 {
	return func(path []game.Action) float64 {
		total := 0.0
		for _, a := range path {
			total += rewards[a]
		}
		return total
	}
}

// DepthLimit ends the game with a win once a path reaches depth.
func DepthLimit(depth int) func([]game.Action) (bool, bool) {
	return func(path []game.Action) (bool, bool) {
		return len(path) >= depth, false
	}
}

func (s *State) Budget() *game.Budget { return s.budget }
func (s *State) Trace() *Trace        { return s.trace }
func (s *State) Path() []game.Action  { return s.path }

func (s *State) LegalActions() []game.Action {
	if game.IsTerminal(s) {
		return nil
	}
	legal := make([]game.Action, len(s.legal))
	copy(legal, s.legal)
	return legal
}

func (s *State) AllActions() []game.Action {
	return game.AllActions()
}

func (s *State) IsWin() bool {
	win, _ := s.outcome(s.path)
	return win
}

func (s *State) IsLose() bool {
	win, lose := s.outcome(s.path)
	return lose && !win
}

func (s *State) Score() float64 {
	return s.score(s.path)
}

func (s *State) Successor(action game.Action) (game.State, error) {
	if err := s.budget.Spend(); err != nil {
		s.trace.Calls = append(s.trace.Calls, Call{Path: s.path, Action: action, Exhausted: true})
		return nil, err
	}
	s.trace.Calls = append(s.trace.Calls, Call{Path: s.path, Action: action})

	path := make([]game.Action, len(s.path)+1)
	copy(path, s.path)
	path[len(s.path)] = action

	next := *s
	next.path = path
	return &next, nil
}
