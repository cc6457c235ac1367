// Package config loads the tunables of every strategy from YAML, with a few
// environment overrides for quick experiments.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"scotlandyard/meta"

	"gopkg.in/yaml.v3"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies lists the names accepted for Strategy, Evader and matchups.
var Strategies = []string{"minimax", "mcts", "pso", "flat"}

type Config struct {
	Strategy string `yaml:"strategy"`
	// Evader is the strategy that plays Mr X when Strategy only moves detectives.
	Evader   string `yaml:"evader"`
	LogLevel string `yaml:"log_level"`
	Seed     uint64 `yaml:"seed"` // 0 draws a random seed
	Oracle   string `yaml:"oracle"`
	Scorer   string `yaml:"scorer"`

	Minimax     Minimax     `yaml:"minimax"`
	MCTS        MCTS        `yaml:"mcts"`
	PSO         PSO         `yaml:"pso"`
	Flat        Flat        `yaml:"flat"`
	Game        Game        `yaml:"game"`
	Experiments Experiments `yaml:"experiments"`
}

type Minimax struct {
	Depth              int     `yaml:"depth"`
	EvaderTopN         int     `yaml:"evader_top_n"`
	SeekerTopN         int     `yaml:"seeker_top_n"`
	Workers            int     `yaml:"workers"`
	DuplicateTolerance float64 `yaml:"duplicate_tolerance"`
	EmergencyMargin    float64 `yaml:"emergency_margin"`
}

type MCTS struct {
	Iterations        int     `yaml:"iterations"`
	EvaderExploration float64 `yaml:"evader_exploration"`
	SeekerExploration float64 `yaml:"seeker_exploration"`
	LookAhead         int     `yaml:"look_ahead"`
	RolloutThreshold  float64 `yaml:"rollout_threshold"`
	AntiNoiseEvader   float64 `yaml:"anti_noise_evader"`
	AntiNoiseSeeker   float64 `yaml:"anti_noise_seeker"`
}

type PSO struct {
	Epochs  int     `yaml:"epochs"`
	C1      float64 `yaml:"c1"`
	C2      float64 `yaml:"c2"`
	Inertia float64 `yaml:"inertia"`
}

type Flat struct {
	Simulations int `yaml:"simulations"`
}

type Game struct {
	Graph      string `yaml:"graph"`
	MrX        int    `yaml:"mr_x"`
	Detectives []int  `yaml:"detectives"`
	MaxTurns   int    `yaml:"max_turns"`
}

type Matchup struct {
	Evader string `yaml:"evader"`
	Seeker string `yaml:"seeker"`
}

type Experiments struct {
	Games    int       `yaml:"games"`
	Output   string    `yaml:"output"`
	Matchups []Matchup `yaml:"matchups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Strategy: "minimax",
		Evader:   "minimax",
		LogLevel: "info",
		Oracle:   "greedy",
		Scorer:   "distance",
		Minimax: Minimax{
			Depth:              meta.DEPTH,
			EvaderTopN:         meta.EVADER_TOP_N,
			SeekerTopN:         meta.SEEKER_TOP_N,
			Workers:            meta.GO_ROUTINES,
			DuplicateTolerance: meta.DUPLICATE_TOLERANCE,
			EmergencyMargin:    meta.EMERGENCY_MARGIN,
		},
		MCTS: MCTS{
			Iterations:        meta.ITERATIONS,
			EvaderExploration: meta.EXPLORATION_EVADER,
			SeekerExploration: meta.EXPLORATION_SEEKER,
			LookAhead:         meta.LOOK_AHEAD,
			RolloutThreshold:  meta.ROLLOUT_THRESHOLD,
			AntiNoiseEvader:   meta.ANTI_NOISE_EVADER,
			AntiNoiseSeeker:   meta.ANTI_NOISE_SEEKER,
		},
		PSO: PSO{
			Epochs:  meta.EPOCHS,
			C1:      meta.C1,
			C2:      meta.C2,
			Inertia: meta.INERTIA,
		},
		Flat: Flat{Simulations: meta.SIMULATIONS},
		Game: Game{
			Graph:      "boards/demo.txt",
			MrX:        15,
			Detectives: []int{1, 6, 31, 36, 3},
			MaxTurns:   meta.MAX_TURNS,
		},
		Experiments: Experiments{
			Games:  10,
			Output: "experiments",
			Matchups: []Matchup{
				{Evader: "minimax", Seeker: "pso"},
				{Evader: "mcts", Seeker: "minimax"},
			},
		},
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.Strategy = getEnv("SY_STRATEGY", cfg.Strategy)
	cfg.LogLevel = getEnv("SY_LOG_LEVEL", cfg.LogLevel)
	if seed := getEnv("SY_SEED", ""); seed != "" {
		value, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SY_SEED %q: %w", seed, err)
		}
		cfg.Seed = value
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every strategy name the configuration refers to.
func (c Config) Validate() error {
	names := []string{c.Strategy, c.Evader}
	for _, m := range c.Experiments.Matchups {
		names = append(names, m.Evader, m.Seeker)
	}
	for _, name := range names {
		if !slices.Contains(Strategies, name) {
			return fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
		}
	}
	evaders := []string{c.Evader}
	for _, m := range c.Experiments.Matchups {
		evaders = append(evaders, m.Evader)
	}
	if slices.Contains(evaders, "pso") {
		return fmt.Errorf("pso cannot play Mr X: %w", ErrUnknownStrategy)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
