package planner

import (
	"testing"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/game/gametest"
	"pacman/utils"

	"github.com/stretchr/testify/require"
)

func TestHillClimberRegisterInitialState(t *testing.T) {
	h := NewHillClimber(WithRand(utils.NewRand(1)))
	h.GetAction(gametest.New(20))

	h.RegisterInitialState(nil)
	h.RegisterInitialState(nil)

	require.Equal(t, NewChromosome(PlanLength), h.Plan(), "Plan should be reset to all Stop")
}

func TestHillClimberGetAction(t *testing.T) {
	t.Run("returning the initial plan with a single call budget", func(t *testing.T) {
		rng := utils.NewRand(9)
		expected := NewChromosome(PlanLength)
		expected.randomize(utils.NewRand(9), game.AllActions())

		h := NewHillClimber(WithRand(rng))
		got := h.GetAction(gametest.New(1))

		require.Equal(t, expected[0], got, "Should return the first action of the initial random plan")
	})

	t.Run("returning the initial plan with no budget", func(t *testing.T) {
		expected := NewChromosome(PlanLength)
		expected.randomize(utils.NewRand(4), game.AllActions())

		h := NewHillClimber(WithRand(utils.NewRand(4)))
		got := h.GetAction(gametest.New(0))

		require.Equal(t, expected[0], got)
	})

	t.Run("finding the rewarding first action", func(t *testing.T) {
		state := gametest.New(20000,
			gametest.WithScore(gametest.ScoreBy(map[game.Action]float64{game.North: 5, game.South: -5})))
		h := NewHillClimber(WithRand(utils.NewRand(2)), WithMetrics(metrics.NewCollector()))

		got := h.GetAction(state)

		require.Equal(t, game.North, got)
		require.Greater(t, h.LastSearch().Episodes, 1)
		require.Equal(t, 1, state.Trace().Failures(), "Should stop at the first exhausted successor")
	})
}
