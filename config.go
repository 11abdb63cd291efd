package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Seed            uint64    `env:"DILEMMA_SEED"`
	LogLevel        string    `env:"DILEMMA_LOG_LEVEL" envDefault:"info"`
	LogFormat       string    `env:"DILEMMA_LOG_FORMAT" envDefault:"console"`
	Addr            string    `env:"DILEMMA_ADDR" envDefault:":8080"`
	Episodes        int       `env:"DILEMMA_EPISODES" envDefault:"10000"`
	Bots            []string  `env:"DILEMMA_BOTS" envSeparator:","`
	NeatConfig      string    `env:"DILEMMA_NEAT_CONFIG" envDefault:"./dilemma.neat"`
	StartGenome     string    `env:"DILEMMA_START_GENOME" envDefault:"./dilemma.startgenes"`
	Champion        string    `env:"DILEMMA_CHAMPION" envDefault:"champion.genome"`
	Genome          string    `env:"DILEMMA_GENOME"`
	StrategyWeights []float64 `env:"DILEMMA_STRATEGY_WEIGHTS" envSeparator:"," envDefault:"0.10,0.10,0.80"`
}

// ParseConfig reads an optional .env file, then the environment, then args.
// Flags win over the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for serve")
	fs.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "episodes per bot for simulate and train")
	fs.Func("bots", "comma separated bots to simulate (default all)", func(s string) error {
		cfg.Bots = splitList(s)
		return nil
	})
	fs.StringVar(&cfg.NeatConfig, "neat", cfg.NeatConfig, "NEAT options file for train")
	fs.StringVar(&cfg.StartGenome, "start-genome", cfg.StartGenome, "genome every NEAT population starts from")
	fs.StringVar(&cfg.Champion, "champion", cfg.Champion, "file train writes the fittest genome to")
	fs.StringVar(&cfg.Genome, "genome", cfg.Genome, "genome file for the NeuralNetworkBot")
	fs.Func("weights", "strategy weights tft,wsls,atft (default 0.10,0.10,0.80)", func(s string) error {
		weights, err := parseWeights(s)
		if err != nil {
			return err
		}
		cfg.StrategyWeights = weights
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Episodes <= 0 {
		return Config{}, fmt.Errorf("episodes must be positive, got %d", cfg.Episodes)
	}
	if _, err := WeightStrategies(cfg.StrategyWeights); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseWeights(s string) ([]float64, error) {
	parts := splitList(s)
	weights := make([]float64, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeight, p)
		}
		weights = append(weights, w)
	}
	return weights, nil
}
