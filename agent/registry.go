package agent

import (
	"fmt"

	"pacman/experiments/metrics"
	"pacman/planner"
	"pacman/searcher"
	"pacman/utils"
)

// Agent kinds accepted by New.
const (
	KindRandom         = "random"
	KindRandomSequence = "random-sequence"
	KindGreedy         = "greedy"
	KindHillClimber    = "hill-climber"
	KindGenetic        = "genetic"
	KindMCTS           = "mcts"
)

var Kinds = []string{KindRandom, KindRandomSequence, KindGreedy, KindHillClimber, KindGenetic, KindMCTS}

// Settings configure an agent built by New. Zero values select defaults.
type Settings struct {
	Seed        uint64
	Cutoff      int     // MCTS rollout depth
	Exploration float64 // MCTS c^2
	Metrics     metrics.Collector
}

func New(kind string, settings Settings) (Agent, error) {
	rng := utils.NewRand(settings.Seed)

	switch kind {
	case KindRandom:
		return NewRandom(rng), nil
	case KindRandomSequence:
		return NewRandomSequence(rng), nil
	case KindGreedy:
		return NewGreedy(rng, nil), nil
	case KindHillClimber:
		return planner.NewHillClimber(
			planner.WithRand(rng),
			planner.WithMetrics(settings.Metrics),
		), nil
	case KindGenetic:
		return planner.NewGenetic(
			planner.WithRand(rng),
			planner.WithMetrics(settings.Metrics),
		), nil
	case KindMCTS:
		return NewSearchAgent(searcher.NewMCTS(
			searcher.WithRand(rng),
			searcher.WithCutoff(settings.Cutoff),
			searcher.WithExploration(settings.Exploration),
			searcher.WithMetrics(settings.Metrics),
		)), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}
