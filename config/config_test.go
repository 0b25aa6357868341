package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"pacman/config"
	"pacman/meta"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate(), "defaults should be valid")
	require.Equal(t, meta.FRAME_BUDGET, c.FrameBudget)
	require.Len(t, c.Agents, 6)
	require.ElementsMatch(t, []string{"open", "small", "tiny"}, c.Layouts)
}

func TestLoad(t *testing.T) {
	t.Run("without a file", func(t *testing.T) {
		c, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, config.Default(), c)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, `
name: cutoff
games: 3
frame_budget: 250
layouts: [tiny]
agents:
  - id: 1
    kind: mcts
    cutoff: 10
    exploration: 0.5
  - id: 2
    kind: greedy
metrics:
  prometheus_addr: ":2112"
`)
		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "cutoff", c.Name)
		require.Equal(t, 3, c.Games)
		require.Equal(t, 250, c.FrameBudget)
		require.Equal(t, meta.MAX_FRAMES, c.MaxFrames, "unset keys keep their default")
		require.Equal(t, []string{"tiny"}, c.Layouts)
		require.Equal(t, []config.AgentConfig{
			{ID: 1, Kind: "mcts", Cutoff: 10, Exploration: 0.5},
			{ID: 2, Kind: "greedy"},
		}, c.Agents)
		require.Equal(t, ":2112", c.Metrics.PrometheusAddr)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeFile(t, "games: 3\nseed: 1\n")
		t.Setenv("PACMAN_GAMES", "5")
		t.Setenv("PACMAN_SEED", "42")
		t.Setenv("PACMAN_OUTPUT_DIR", "/tmp/out")
		t.Setenv("PACMAN_LOG_LEVEL", "debug")

		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, 5, c.Games)
		require.Equal(t, uint64(42), c.Seed)
		require.Equal(t, "/tmp/out", c.OutputDir)
		require.Equal(t, "debug", c.LogLevel)
	})

	t.Run("malformed environment value", func(t *testing.T) {
		t.Setenv("PACMAN_FRAME_BUDGET", "lots")
		_, err := config.Load("")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "games: [1, 2"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"empty name":      func(c *config.Config) { c.Name = "" },
		"no games":        func(c *config.Config) { c.Games = 0 },
		"no budget":       func(c *config.Config) { c.FrameBudget = 0 },
		"no frames":       func(c *config.Config) { c.MaxFrames = -1 },
		"no parallelism":  func(c *config.Config) { c.Parallelism = 0 },
		"no output dir":   func(c *config.Config) { c.OutputDir = "" },
		"bad log level":   func(c *config.Config) { c.LogLevel = "loud" },
		"no layouts":      func(c *config.Config) { c.Layouts = nil },
		"unknown layout":  func(c *config.Config) { c.Layouts = []string{"huge"} },
		"no agents":       func(c *config.Config) { c.Agents = nil },
		"unknown kind":    func(c *config.Config) { c.Agents[0].Kind = "minimax" },
		"duplicate id":    func(c *config.Config) { c.Agents[1].ID = c.Agents[0].ID },
		"negative cutoff": func(c *config.Config) { c.Agents[0].Cutoff = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
