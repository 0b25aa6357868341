package agent

import (
	"errors"

	"pacman/game"
	"pacman/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const SequenceLength = 10

// Random plays a uniformly random legal action.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (a *Random) RegisterInitialState(game.State) {}

func (a *Random) GetAction(state game.State) game.Action {
	return randomLegal(a.rng, state)
}

func randomLegal(rng *rand.Rand, state game.State) game.Action {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return game.Stop
	}
	return utils.Choice(rng, legal)
}

// RandomSequence draws a random plan every frame and replays it, but always
// plays the first action of the plan.
type RandomSequence struct {
	rng  *rand.Rand
	plan []game.Action
}

func NewRandomSequence(rng *rand.Rand) *RandomSequence {
	a := &RandomSequence{rng: rng}
	a.RegisterInitialState(nil)
	return a
}

func (a *RandomSequence) RegisterInitialState(game.State) {
	a.plan = make([]game.Action, SequenceLength)
	for i := range a.plan {
		a.plan[i] = game.Stop
	}
}

// Plan returns a copy of the plan buffer.
func (a *RandomSequence) Plan() []game.Action {
	plan := make([]game.Action, len(a.plan))
	copy(plan, a.plan)
	return plan
}

func (a *RandomSequence) GetAction(state game.State) game.Action {
	possible := state.AllActions()
	for i := range a.plan {
		a.plan[i] = utils.Choice(a.rng, possible)
	}

	current := state
	for _, action := range a.plan {
		if game.IsTerminal(current) {
			break
		}
		next, err := current.Successor(action)
		if err != nil {
			break
		}
		current = next
	}
	return a.plan[0]
}

// Greedy plays the action whose successor scores best, breaking ties at random.
type Greedy struct {
	rng      *rand.Rand
	evaluate game.Evaluate
}

func NewGreedy(rng *rand.Rand, evaluate game.Evaluate) *Greedy {
	if evaluate == nil {
		evaluate = game.ScoreEvaluation
	}
	return &Greedy{rng: rng, evaluate: evaluate}
}

func (a *Greedy) RegisterInitialState(game.State) {}

func (a *Greedy) GetAction(state game.State) game.Action {
	var best []game.Action
	bestScore := 0.0
	for _, action := range state.LegalActions() {
		next, err := state.Successor(action)
		if err != nil {
			if !errors.Is(err, game.ErrBudgetExhausted) {
				log.Warn().Err(err).Str("action", string(action)).Msg("successor failed")
			}
			continue
		}
		score := a.evaluate(next)
		switch {
		case len(best) == 0 || score > bestScore:
			best = []game.Action{action}
			bestScore = score
		case score == bestScore:
			best = append(best, action)
		}
	}

	if len(best) == 0 { // No successor could be scored
		return randomLegal(a.rng, state)
	}
	return utils.Choice(a.rng, best)
}
