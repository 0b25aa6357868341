package searcher

import "pacman/game"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const MaxCutoff = 5 // Random actions simulated per rollout

type Searcher interface {
	FindNextMove(state game.State) game.Action
}
