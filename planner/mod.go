// Package planner searches fixed-length action sequences against the
// successor budget: a hill climber and a genetic algorithm.
package planner

import (
	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/utils"

	"golang.org/x/exp/rand"
)

const (
	PlanLength     = 5
	PopulationSize = 8
	CrossoverRate  = 7 // out of 10
	MutationRate   = 1 // out of 10
	FlipRate       = 5 // out of 10, per hill-climbing slot
)

// minScore is the score of a plan that was never evaluated.
const minScore = -2147483648.0

// Chromosome is a planned sequence of actions.
type Chromosome []game.Action

// NewChromosome returns a plan of the given length filled with Stop.
func NewChromosome(length int) Chromosome {
	c := make(Chromosome, length)
	for i := range c {
		c[i] = game.Stop
	}
	return c
}

func (c Chromosome) Clone() Chromosome {
	clone := make(Chromosome, len(c))
	copy(clone, c)
	return clone
}

// randomize overwrites every gene with a uniformly random action.
func (c Chromosome) randomize(rng *rand.Rand, possible []game.Action) {
	for i := range c {
		c[i] = utils.Choice(rng, possible)
	}
}

type Option func(o *options)

type options struct {
	evaluate game.Evaluate
	rng      *rand.Rand
	metrics  metrics.Collector
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(o *options) {
		if evaluate != nil {
			o.evaluate = evaluate
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

func newOptions(opts []Option) options {
	o := options{ // Default values
		evaluate: game.ScoreEvaluation,
		rng:      utils.NewRand(0),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
