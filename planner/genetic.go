package planner

import (
	"cmp"
	"errors"

	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Fitness is the score of the chromosome at Index in a population.
type Fitness struct {
	Index int
	Score float64
}

// Genetic evolves a population of plans without elitism, using rank
// selection, uniform crossover and single-gene mutation.
type Genetic struct {
	options
	population []Chromosome
	last       metrics.SearchMetric
}

func NewGenetic(opts ...Option) *Genetic {
	g := &Genetic{options: newOptions(opts)}
	g.RegisterInitialState(nil)
	return g
}

func (g *Genetic) RegisterInitialState(game.State) {
	g.population = make([]Chromosome, PopulationSize)
	for i := range g.population {
		g.population[i] = NewChromosome(PlanLength)
	}
}

// Population returns a copy of the current population.
func (g *Genetic) Population() []Chromosome {
	population := make([]Chromosome, len(g.population))
	for i, c := range g.population {
		population[i] = c.Clone()
	}
	return population
}

func (g *Genetic) GetAction(state game.State) game.Action {
	g.metrics.Start()
	possible := state.AllActions()
	for _, c := range g.population {
		c.randomize(g.rng, possible)
	}
	if game.IsTerminal(state) { // Nothing to replay
		return g.population[0][0]
	}

	// The last fully evaluated generation and its ranking
	var ranked []Chromosome
	var ranking []Fitness
	for {
		fitness, err := g.rank(state, g.population)
		if err != nil {
			if !errors.Is(err, game.ErrBudgetExhausted) {
				log.Warn().Err(err).Msg("successor failed, stopping evolution")
			}
			break
		}
		ranked, ranking = g.population, fitness
		g.metrics.AddEpisode()

		g.population = g.breed(ranked, ranking, possible)
	}

	g.last = g.metrics.Complete()
	if len(ranking) == 0 { // Budget ran out during the first generation
		return g.population[0][0]
	}

	survivor := ranking[len(ranking)-1]
	log.Debug().
		Int("generations", g.last.Episodes).
		Float64("best_score", survivor.Score).
		Str("action", string(ranked[survivor.Index][0])).
		Msg("evolution complete")
	return ranked[survivor.Index][0]
}

func (g *Genetic) LastSearch() metrics.SearchMetric {
	return g.last
}

// rank replays every chromosome and sorts them by ascending score. It fails as
// soon as any replay hits the budget.
func (g *Genetic) rank(state game.State, population []Chromosome) ([]Fitness, error) {
	ranking := make([]Fitness, len(population))
	for i, c := range population {
		score, err := replay(state, c, g.evaluate)
		if err != nil {
			return nil, err
		}
		ranking[i] = Fitness{Index: i, Score: score}
	}
	slices.SortStableFunc(ranking, func(a, b Fitness) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return ranking, nil
}

// breed returns the next generation, the same size as population.
func (g *Genetic) breed(population []Chromosome, ranking []Fitness, possible []game.Action) []Chromosome {
	next := make([]Chromosome, 0, len(population)+1)
	for len(next) < len(population) {
		a := population[g.selectIndex(ranking)]
		b := population[g.selectIndex(ranking)]
		next = append(next, g.reproduce(a, b)...)
	}
	next = next[:len(population)]

	for _, c := range next {
		if g.rng.Intn(10) < MutationRate {
			c[g.rng.Intn(len(c))] = possible[g.rng.Intn(len(possible))]
		}
	}
	return next
}

// selectIndex draws a population index by rank: the entry at rank i (ascending
// by score) has weight i+1.
func (g *Genetic) selectIndex(ranking []Fitness) int {
	n := len(ranking)
	value := g.rng.Intn(n * (n + 1) / 2)
	sum := 0
	for i, f := range ranking {
		sum += i + 1
		if value < sum {
			return f.Index
		}
	}
	return ranking[n-1].Index
}

// reproduce returns two children, either by uniform crossover or as clones of
// the parents.
func (g *Genetic) reproduce(a, b Chromosome) []Chromosome {
	if g.rng.Intn(10) >= CrossoverRate {
		return []Chromosome{a.Clone(), b.Clone()}
	}

	children := make([]Chromosome, 2)
	for i := range children {
		child := make(Chromosome, len(a))
		for j := range child {
			if g.rng.Intn(2) < 1 {
				child[j] = a[j]
			} else {
				child[j] = b[j]
			}
		}
		children[i] = child
	}
	return children
}
