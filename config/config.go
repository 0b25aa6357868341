// Package config loads experiment configurations.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"pacman/agent"
	"pacman/arena"
	"pacman/meta"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Name        string        `yaml:"name" validate:"required"`
	Seed        uint64        `yaml:"seed"`
	Games       int           `yaml:"games" validate:"gte=1"`
	FrameBudget int           `yaml:"frame_budget" validate:"gte=1"`
	MaxFrames   int           `yaml:"max_frames" validate:"gte=1"`
	Parallelism int           `yaml:"parallelism" validate:"gte=1"`
	OutputDir   string        `yaml:"output_dir" validate:"required"`
	LogLevel    string        `yaml:"log_level" validate:"loglevel"`
	Layouts     []string      `yaml:"layouts" validate:"min=1,dive,layout"`
	Agents      []AgentConfig `yaml:"agents" validate:"min=1,unique=ID,dive"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// AgentConfig describes one contestant. Cutoff and Exploration only apply to
// mcts agents; zero selects the default.
type AgentConfig struct {
	ID          int     `yaml:"id"`
	Kind        string  `yaml:"kind" validate:"agentkind"`
	Cutoff      int     `yaml:"cutoff" validate:"gte=0"`
	Exploration float64 `yaml:"exploration" validate:"gte=0"`
}

type MetricsConfig struct {
	// PrometheusAddr serves /metrics while experiments run, e.g. ":2112".
	PrometheusAddr string `yaml:"prometheus_addr"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zerolog.ParseLevel(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("layout", func(fl validator.FieldLevel) bool {
		_, err := arena.LoadLayout(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("agentkind", func(fl validator.FieldLevel) bool {
		return slices.Contains(agent.Kinds, fl.Field().String())
	})
}

func Default() Config {
	agents := make([]AgentConfig, len(agent.Kinds))
	for i, kind := range agent.Kinds {
		agents[i] = AgentConfig{ID: i + 1, Kind: kind}
	}
	return Config{
		Name:        "baseline",
		Games:       meta.GAMES,
		FrameBudget: meta.FRAME_BUDGET,
		MaxFrames:   meta.MAX_FRAMES,
		Parallelism: meta.PARALLELISM,
		OutputDir:   meta.OUTPUT_DIR,
		LogLevel:    meta.LOG_LEVEL,
		Layouts:     arena.LayoutNames(),
		Agents:      agents,
	}
}

// Load merges defaults, the YAML file at path (if any) and PACMAN_* environment
// variables, in increasing priority.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := loadFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFromEnv(config *Config) error {
	ints := map[string]*int{
		"PACMAN_GAMES":        &config.Games,
		"PACMAN_FRAME_BUDGET": &config.FrameBudget,
		"PACMAN_MAX_FRAMES":   &config.MaxFrames,
		"PACMAN_PARALLELISM":  &config.Parallelism,
	}
	for key, field := range ints {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*field = i
		}
	}

	if v := os.Getenv("PACMAN_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PACMAN_SEED: %w", err)
		}
		config.Seed = seed
	}
	if v := os.Getenv("PACMAN_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv("PACMAN_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// ApplyLogLevel sets the global zerolog level. Validate guarantees it parses.
func (c Config) ApplyLogLevel() {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msg("keeping the current log level")
		return
	}
	zerolog.SetGlobalLevel(level)
}
