package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pacman/agent"
	"pacman/arena"
	"pacman/config"
	"pacman/engine"
	"pacman/experiments"
	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/meta"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var logLevel string

func main() {
	root := &cobra.Command{
		Use:           "pacman",
		Short:         "Search agents for a budget-limited pacman arena",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger()
			return applyLogLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	root.AddCommand(playCommand(), experimentCommand())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func applyLogLevel(level string) error {
	if level == "" {
		return nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

func playCommand() *cobra.Command {
	var (
		kind      string
		layout    string
		budget    int
		maxFrames int
		seed      uint64
		cutoff    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game and log every decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := arena.LoadLayout(layout)
			if err != nil {
				return err
			}
			collector := metrics.NewCollector()
			a, err := agent.New(kind, agent.Settings{Seed: seed, Cutoff: cutoff, Metrics: collector})
			if err != nil {
				return err
			}

			gameMetric, moves := engine.Run(a, arena.NewGame(l, game.NewBudget(budget)), maxFrames)
			for _, m := range moves {
				log.Debug().
					Int("step", m.Step).
					Str("action", m.Action).
					Int("budget_used", m.BudgetUsed).
					Int("episodes", m.Episodes).
					Dur("duration", m.Duration).
					Msg("decision")
			}
			log.Info().
				Str("agent", kind).
				Str("layout", layout).
				Bool("won", gameMetric.Won).
				Bool("lost", gameMetric.Lost).
				Float64("score", gameMetric.Score).
				Int("moves", gameMetric.TotalMoves).
				Msg("game over")
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "agent", agent.KindMCTS, "agent kind")
	cmd.Flags().StringVar(&layout, "layout", "small", "built-in layout")
	cmd.Flags().IntVar(&budget, "budget", meta.FRAME_BUDGET, "successor calls per frame")
	cmd.Flags().IntVar(&maxFrames, "max-frames", meta.MAX_FRAMES, "frames before the game is stopped")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 for a random one")
	cmd.Flags().IntVar(&cutoff, "cutoff", meta.WITH_CUTOFF, "mcts rollout depth")
	return cmd
}

func experimentCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run every configured agent on every configured layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if logLevel == "" {
				cfg.ApplyLogLevel()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var prom *metrics.Prometheus
			if addr := cfg.Metrics.PrometheusAddr; addr != "" {
				reg := prometheus.NewRegistry()
				if prom, err = metrics.NewPrometheus(reg); err != nil {
					return err
				}
				shutdown := serveMetrics(addr, reg)
				defer shutdown()
			}

			_, err = experiments.Run(ctx, cfg, prom)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "YAML experiment configuration")
	return cmd
}

func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Msgf("serving metrics on %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
