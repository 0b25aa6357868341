// Package arena is a small grid pursuit game used to exercise the agents.
package arena

import (
	"errors"
	"fmt"
	"slices"

	"pacman/game"
)

// Scoring
const (
	StepCost    = -1.0
	FoodValue   = 10.0
	WinBonus    = 500.0
	LosePenalty = -500.0
)

// ghostOrder fixes how ghosts break ties between equally good moves.
var ghostOrder = []game.Action{game.North, game.South, game.East, game.West}

// State is an immutable snapshot of a game. All states derived from one game
// share its budget.
type State struct {
	layout    *Layout
	budget    *game.Budget
	pacman    Pos
	ghosts    []Pos
	food      []bool
	remaining int
	score     float64
	win       bool
	lose      bool
	steps     int
}

// NewGame returns the initial state of layout.
func NewGame(layout *Layout, budget *game.Budget) *State {
	s := &State{
		layout: layout,
		budget: budget,
		pacman: layout.pacman,
		ghosts: slices.Clone(layout.ghosts),
		food:   make([]bool, layout.Width*layout.Height),
	}
	for _, p := range layout.food {
		s.food[layout.index(p)] = true
	}
	s.remaining = len(layout.food)
	return s
}

func (s *State) Budget() *game.Budget { return s.budget }
func (s *State) Layout() *Layout      { return s.layout }
func (s *State) Pacman() Pos          { return s.pacman }
func (s *State) Ghosts() []Pos        { return slices.Clone(s.ghosts) }
func (s *State) FoodLeft() int        { return s.remaining }
func (s *State) Steps() int           { return s.steps }

func (s *State) IsWin() bool    { return s.win }
func (s *State) IsLose() bool   { return s.lose }
func (s *State) Score() float64 { return s.score }

func (s *State) AllActions() []game.Action {
	return game.AllActions()
}

func (s *State) LegalActions() []game.Action {
	if s.win || s.lose {
		return nil
	}
	legal := make([]game.Action, 0, 5)
	for _, a := range game.AllActions() {
		if a == game.Stop || !s.layout.IsWall(move(s.pacman, a)) {
			legal = append(legal, a)
		}
	}
	return legal
}

// Successor spends one unit of the budget. A move into a wall leaves pacman
// where it is, so plans built from the full alphabet can still be replayed.
func (s *State) Successor(action game.Action) (game.State, error) {
	if err := s.budget.Spend(); err != nil {
		return nil, err
	}
	if s.win || s.lose {
		return nil, errors.New("game is over")
	}
	if s.layout.IsWall(move(s.pacman, action)) {
		action = game.Stop
	}
	return s.step(action), nil
}

// Advance plays one real game step without touching the budget.
func (s *State) Advance(action game.Action) (*State, error) {
	if !slices.Contains(s.LegalActions(), action) {
		return nil, fmt.Errorf("illegal action %s at (%d, %d)", action, s.pacman.X, s.pacman.Y)
	}
	return s.step(action), nil
}

func (s *State) step(action game.Action) *State {
	next := &State{
		layout:    s.layout,
		budget:    s.budget,
		pacman:    move(s.pacman, action),
		ghosts:    slices.Clone(s.ghosts),
		food:      s.food,
		remaining: s.remaining,
		score:     s.score + StepCost,
		steps:     s.steps + 1,
	}

	if i := s.layout.index(next.pacman); next.food[i] {
		next.food = slices.Clone(s.food)
		next.food[i] = false
		next.remaining--
		next.score += FoodValue
		if next.remaining == 0 {
			next.score += WinBonus
			next.win = true
			return next
		}
	}

	if next.caught() {
		return next
	}
	for i, g := range next.ghosts {
		next.ghosts[i] = next.chase(g)
	}
	next.caught()
	return next
}

func (s *State) caught() bool {
	for _, g := range s.ghosts {
		if g == s.pacman {
			s.score += LosePenalty
			s.lose = true
			return true
		}
	}
	return false
}

// chase moves a ghost one step closer to pacman, if any move gets closer.
func (s *State) chase(ghost Pos) Pos {
	best := ghost
	bestDistance := ghost.distance(s.pacman)
	for _, a := range ghostOrder {
		p := move(ghost, a)
		if s.layout.IsWall(p) {
			continue
		}
		if d := p.distance(s.pacman); d < bestDistance {
			best, bestDistance = p, d
		}
	}
	return best
}

func move(p Pos, a game.Action) Pos {
	dx, dy := a.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}
