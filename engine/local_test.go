package engine_test

import (
	"testing"

	"pacman/agent"
	"pacman/arena"
	"pacman/engine"
	"pacman/game"
	"pacman/utils"

	"github.com/stretchr/testify/require"
)

// stubborn always asks for the same action.
type stubborn struct {
	action     game.Action
	registered int
}

func (s *stubborn) RegisterInitialState(game.State) { s.registered++ }

func (s *stubborn) GetAction(game.State) game.Action { return s.action }

func newGame(t *testing.T, text string, budget int) *arena.State {
	l, err := arena.ParseLayout("test", text)
	require.NoError(t, err)
	return arena.NewGame(l, game.NewBudget(budget))
}

func TestRun(t *testing.T) {
	t.Run("illegal actions are replaced with stop", func(t *testing.T) {
		a := &stubborn{action: game.North}
		state := newGame(t, "%%%%%%%\n%.P  G%\n%%%%%%%", 10)

		gameMetric, moves := engine.Run(a, state, 100)

		require.Equal(t, 1, a.registered)
		require.True(t, gameMetric.Lost, "standing still should get pacman caught")
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Len(t, moves, 3)
		for i, m := range moves {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, string(game.Stop), m.Action)
			require.Equal(t, 0, m.BudgetUsed)
		}
	})

	t.Run("stops at the frame limit", func(t *testing.T) {
		a := &stubborn{action: game.Stop}
		state := newGame(t, "%%%%%\n%P .%\n%%%%%", 10)

		gameMetric, moves := engine.Run(a, state, 7)

		require.False(t, gameMetric.Won)
		require.False(t, gameMetric.Lost)
		require.Len(t, moves, 7)
		require.Equal(t, -7.0, gameMetric.Score)
		require.Equal(t, "test", gameMetric.Layout)
	})

	t.Run("local engine runs through the engine interface", func(t *testing.T) {
		var e engine.Engine = engine.LocalEngine(&stubborn{action: game.Stop}, newGame(t, "%%%%%\n%P .%\n%%%%%", 10), 3)

		gameMetric, moves := e.Run()

		require.Len(t, moves, 3)
		require.Equal(t, 3, gameMetric.TotalMoves)
	})

	t.Run("budget is reset every frame", func(t *testing.T) {
		const frameBudget = 40
		l, err := arena.LoadLayout("small")
		require.NoError(t, err)
		state := arena.NewGame(l, game.NewBudget(frameBudget))

		a, err := agent.New(agent.KindMCTS, agent.Settings{Seed: 3})
		require.NoError(t, err)

		_, moves := engine.Run(a, state, 20)

		require.NotEmpty(t, moves)
		for _, m := range moves {
			require.Equal(t, frameBudget, m.BudgetUsed, "mcts should spend the whole budget at step %d", m.Step)
		}
	})

	t.Run("greedy clears a food corridor", func(t *testing.T) {
		state := newGame(t, "%%%%%%%\n%P....%\n%%%%%%%", 10)
		a := agent.NewGreedy(utils.NewRand(1), nil)

		gameMetric, moves := engine.Run(a, state, 50)

		require.True(t, gameMetric.Won)
		require.Len(t, moves, 4)
		require.Equal(t, 4*arena.StepCost+4*arena.FoodValue+arena.WinBonus, gameMetric.Score)
	})
}
