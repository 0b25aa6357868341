package planner

import (
	"errors"

	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// HillClimber repeatedly mutates one plan and keeps the best plan seen. Each
// probe mutates the last probed plan, not the best one.
type HillClimber struct {
	options
	plan Chromosome
	last metrics.SearchMetric
}

func NewHillClimber(opts ...Option) *HillClimber {
	return &HillClimber{
		options: newOptions(opts),
		plan:    NewChromosome(PlanLength),
	}
}

func (h *HillClimber) RegisterInitialState(game.State) {
	h.plan = NewChromosome(PlanLength)
}

// Plan returns a copy of the plan buffer.
func (h *HillClimber) Plan() Chromosome {
	return h.plan.Clone()
}

func (h *HillClimber) GetAction(state game.State) game.Action {
	h.metrics.Start()
	possible := state.AllActions()
	h.plan.randomize(h.rng, possible)
	if game.IsTerminal(state) { // Nothing to replay
		return h.plan[0]
	}

	maxScore := minScore
	best := h.plan.Clone()
	for {
		score, err := replay(state, h.plan, h.evaluate)
		h.metrics.AddEpisode()
		if score > maxScore {
			maxScore = score
			best = h.plan.Clone()
		}
		if err != nil {
			if !errors.Is(err, game.ErrBudgetExhausted) {
				log.Warn().Err(err).Msg("successor failed, stopping hill climbing")
			}
			break
		}
		h.mutate(possible)
	}

	h.last = h.metrics.Complete()
	log.Debug().
		Int("probes", h.last.Episodes).
		Float64("best_score", maxScore).
		Str("action", string(best[0])).
		Msg("hill climbing complete")
	return best[0]
}

func (h *HillClimber) LastSearch() metrics.SearchMetric {
	return h.last
}

func (h *HillClimber) mutate(possible []game.Action) {
	for i := range h.plan {
		if h.rng.Intn(10) < FlipRate {
			h.plan[i] = possible[h.rng.Intn(len(possible))]
		}
	}
}
