package engine

import (
	"time"

	"pacman/agent"
	"pacman/arena"
	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
)

type Local struct {
	State     *arena.State
	Agent     agent.Agent
	MaxFrames int
}

var _ Engine = (*Local)(nil)

func LocalEngine(a agent.Agent, state *arena.State, maxFrames int) Engine {
	if maxFrames <= 0 || maxFrames > MaxFrames {
		maxFrames = MaxFrames
	}
	return &Local{
		State:     state,
		Agent:     a,
		MaxFrames: maxFrames,
	}
}

// Run plays one game with a single agent against the arena.
func Run(a agent.Agent, state *arena.State, maxFrames int) (metrics.GameMetric, []metrics.MoveMetric) {
	return LocalEngine(a, state, maxFrames).Run()
}

func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		Layout:    e.State.Layout().Name,
		StartTime: time.Now(),
	}
	budget := e.State.Budget()

	budget.Reset()
	e.Agent.RegisterInitialState(e.State)

	var moveMetrics []metrics.MoveMetric
	for frame := 1; frame <= e.MaxFrames && !game.IsTerminal(e.State); frame++ {
		budget.Reset()

		start := time.Now()
		action := e.Agent.GetAction(e.State)
		elapsed := time.Since(start)

		var search metrics.SearchMetric
		if r, ok := e.Agent.(agent.Reporter); ok {
			search = r.LastSearch()
		}
		search.Duration = elapsed

		next, err := e.State.Advance(action)
		if err != nil {
			log.Warn().Err(err).Msgf("frame %d: agent chose %s, playing %s instead", frame, action, game.Stop)
			action = game.Stop
			if next, err = e.State.Advance(action); err != nil {
				log.Error().Err(err).Msgf("frame %d: cannot advance the game", frame)
				break
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         frame,
			Action:       string(action),
			BudgetUsed:   budget.Used(),
			SearchMetric: search,
		})
		e.State = next
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Won = e.State.IsWin()
	gameMetric.Lost = e.State.IsLose()
	gameMetric.Score = e.State.Score()
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("game on %s finished after %d frames with score %.0f (win=%t, lose=%t)",
		gameMetric.Layout, gameMetric.TotalMoves, gameMetric.Score, gameMetric.Won, gameMetric.Lost)

	return gameMetric, moveMetrics
}
