package planner

import (
	"sort"
	"testing"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/game/gametest"
	"pacman/utils"

	"github.com/stretchr/testify/require"
)

func TestGeneticRegisterInitialState(t *testing.T) {
	g := NewGenetic(WithRand(utils.NewRand(1)))
	g.GetAction(gametest.New(50))

	g.RegisterInitialState(nil)
	g.RegisterInitialState(nil)

	population := g.Population()
	require.Len(t, population, PopulationSize)
	for _, c := range population {
		require.Equal(t, NewChromosome(PlanLength), c, "Every chromosome should be reset to all Stop")
	}
}

func TestGeneticRank(t *testing.T) {
	t.Run("sorting by ascending score", func(t *testing.T) {
		g := NewGenetic(WithRand(utils.NewRand(3)))
		state := gametest.New(1000,
			gametest.WithScore(gametest.ScoreBy(map[game.Action]float64{game.East: 1, game.West: -1})))
		population := make([]Chromosome, PopulationSize)
		for i := range population {
			population[i] = NewChromosome(PlanLength)
			population[i].randomize(g.rng, game.AllActions())
		}

		ranking, err := g.rank(state, population)

		require.NoError(t, err)
		require.Len(t, ranking, PopulationSize)
		require.True(t, sort.SliceIsSorted(ranking, func(i, j int) bool {
			return ranking[i].Score < ranking[j].Score
		}), "Ranking should be ascending")
		indices := map[int]bool{}
		for _, f := range ranking {
			indices[f.Index] = true
		}
		require.Len(t, indices, PopulationSize, "Every chromosome should be ranked once")
	})

	t.Run("failing the whole generation on exhaustion", func(t *testing.T) {
		g := NewGenetic(WithRand(utils.NewRand(3)))
		state := gametest.New(PlanLength*3 + 2)

		ranking, err := g.rank(state, g.Population())

		require.ErrorIs(t, err, game.ErrBudgetExhausted)
		require.Nil(t, ranking)
	})
}

func TestGeneticSelectIndex(t *testing.T) {
	g := NewGenetic(WithRand(utils.NewRand(11)))
	ranking := make([]Fitness, PopulationSize)
	for i := range ranking {
		// Population index differs from rank to check the mapping
		ranking[i] = Fitness{Index: PopulationSize - 1 - i, Score: float64(i)}
	}

	const draws = 72000
	counts := make([]int, PopulationSize)
	for i := 0; i < draws; i++ {
		counts[g.selectIndex(ranking)]++
	}

	for rank := 0; rank < PopulationSize; rank++ {
		index := PopulationSize - 1 - rank
		expected := float64(rank+1) / 36
		require.InDelta(t, expected, float64(counts[index])/draws, 0.01,
			"Rank %d should be selected in proportion to %d/36", rank, rank+1)
	}
}

func TestGeneticBreed(t *testing.T) {
	g := NewGenetic(WithRand(utils.NewRand(5)))
	population := g.Population()
	for _, c := range population {
		c.randomize(g.rng, game.AllActions())
	}
	ranking := make([]Fitness, PopulationSize)
	for i := range ranking {
		ranking[i] = Fitness{Index: i, Score: float64(i)}
	}

	for generation := 0; generation < 50; generation++ {
		population = g.breed(population, ranking, game.AllActions())

		require.Len(t, population, PopulationSize, "Population size should be invariant")
		for _, c := range population {
			require.Len(t, c, PlanLength)
		}
	}
}

func TestGeneticReproduce(t *testing.T) {
	g := NewGenetic(WithRand(utils.NewRand(8)))
	a := Chromosome{game.North, game.North, game.North, game.North, game.North}
	b := Chromosome{game.South, game.South, game.South, game.South, game.South}

	for i := 0; i < 100; i++ {
		children := g.reproduce(a, b)

		require.Len(t, children, 2)
		for _, child := range children {
			for j, gene := range child {
				require.Contains(t, []game.Action{a[j], b[j]}, gene, "Genes should come from a parent")
			}
		}
	}
	require.Equal(t, game.North, a[0], "Parents should not be modified")
}

func TestGeneticGetAction(t *testing.T) {
	t.Run("finding the rewarding first action", func(t *testing.T) {
		state := gametest.New(5000,
			gametest.WithScore(gametest.ScoreBy(map[game.Action]float64{game.West: 5, game.East: -5})))
		g := NewGenetic(WithRand(utils.NewRand(21)), WithMetrics(metrics.NewCollector()))

		got := g.GetAction(state)

		require.Equal(t, game.West, got)
		require.Greater(t, g.LastSearch().Episodes, 10)
		require.Equal(t, 1, state.Trace().Failures(), "Should stop at the first exhausted successor")
	})

	t.Run("falling back when no generation completes", func(t *testing.T) {
		g := NewGenetic(WithRand(utils.NewRand(2)))
		state := gametest.New(7)

		got := g.GetAction(state)

		require.Equal(t, g.Population()[0][0], got, "Should return the first gene of the first random chromosome")
	})
}
