package agent

import (
	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/searcher"
)

// Agent picks one action per frame. The host calls RegisterInitialState once
// per game before the first GetAction.
type Agent interface {
	RegisterInitialState(state game.State)
	GetAction(state game.State) game.Action
}

// Reporter is implemented by agents that collect search metrics.
type Reporter interface {
	LastSearch() metrics.SearchMetric
}

type searchAgent struct {
	searcher searcher.Searcher
}

// NewSearchAgent returns an agent that plays the move found by s. Search
// metrics are reported when s implements Reporter.
func NewSearchAgent(s searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) RegisterInitialState(game.State) {}

func (a searchAgent) GetAction(state game.State) game.Action {
	return a.searcher.FindNextMove(state)
}

func (a searchAgent) LastSearch() metrics.SearchMetric {
	if r, ok := a.searcher.(Reporter); ok {
		return r.LastSearch()
	}
	return metrics.SearchMetric{}
}
