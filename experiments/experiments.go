package experiments

import (
	"context"
	"fmt"
	"time"

	"pacman/agent"
	"pacman/arena"
	"pacman/config"
	"pacman/engine"
	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type matchUp struct {
	agent  config.AgentConfig
	layout *arena.Layout
}

type result struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays cfg.Games games for every agent on every layout and stores the
// records under cfg.OutputDir. prom may be nil. It returns the run directory.
func Run(ctx context.Context, cfg config.Config, prom *metrics.Prometheus) (string, error) {
	matchUps := make([]matchUp, 0, len(cfg.Agents)*len(cfg.Layouts))
	for _, a := range cfg.Agents {
		for _, name := range cfg.Layouts {
			layout, err := arena.LoadLayout(name)
			if err != nil {
				return "", err
			}
			matchUps = append(matchUps, matchUp{agent: a, layout: layout})
		}
	}

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with %d matchups of %d games...", cfg.Name, len(matchUps), cfg.Games)

	results := make([]result, len(matchUps)*cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for mi, m := range matchUps {
		mi, m := mi, m
		for i := 0; i < cfg.Games; i++ {
			i := i
			id := mi*cfg.Games + i + 1
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				log.Debug().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, cfg.Games)

				r, err := runGame(id, m, baseSeed+uint64(id), cfg, prom)
				if err != nil {
					return err
				}
				results[id-1] = r

				log.Info().Msgf("completed %s on %s game %d of %d: score %.0f (win=%t)",
					m.agent.Kind, m.layout.Name, i+1, cfg.Games, r.game.Score, r.game.Won)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("%s experiment: %w", cfg.Name, err)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.game)
		moveRecords = append(moveRecords, r.moves...)
	}

	return store(cfg, gameRecords, moveRecords)
}

// runGame plays one game with a fresh agent, budget and arena.
func runGame(id int, m matchUp, seed uint64, cfg config.Config, prom *metrics.Prometheus) (result, error) {
	collector := metrics.NewCollector()
	if prom != nil {
		collector = prom.Collector(m.agent.Kind, collector)
	}

	a, err := agent.New(m.agent.Kind, agent.Settings{
		Seed:        seed,
		Cutoff:      m.agent.Cutoff,
		Exploration: m.agent.Exploration,
		Metrics:     collector,
	})
	if err != nil {
		return result{}, err
	}

	state := arena.NewGame(m.layout, game.NewBudget(cfg.FrameBudget))
	gameMetric, moveMetrics := engine.Run(a, state, cfg.MaxFrames)
	gameMetric.Agent = m.agent.Kind
	gameMetric.Seed = seed

	r := result{
		game: metrics.GameRecord{
			ID:         id,
			AgentID:    m.agent.ID,
			GameMetric: gameMetric,
		},
		moves: make([]metrics.MoveRecord, len(moveMetrics)),
	}
	for i, mm := range moveMetrics {
		r.moves[i] = metrics.MoveRecord{Game: id, MoveMetric: mm}
	}
	return r, nil
}

func store(cfg config.Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := make([]metrics.AgentConfig, len(cfg.Agents))
	for i, a := range cfg.Agents {
		configs[i] = metrics.AgentConfig{
			ID:          a.ID,
			Kind:        a.Kind,
			Cutoff:      a.Cutoff,
			Exploration: a.Exploration,
			FrameBudget: cfg.FrameBudget,
		}
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummaries(metrics.Summarize(gameRecords)); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msgf("stored summary in %s", writer.Dir())

	return writer.Dir(), nil
}
