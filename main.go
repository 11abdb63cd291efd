package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

const usage = `usage: dilemma <command> [flags]

commands:
  play      play against the computer in the terminal (default)
  simulate  play every bot through many games and print win rates
  train     evolve a NEAT network to play the human seat
  serve     serve the game as a JSON API
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := "play"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}

	switch cmd {
	case "play":
		engine, err := newConfiguredEngine(cfg, log)
		if err != nil {
			return err
		}
		return NewTerminal(engine, stdin, stdout).Run()
	case "simulate":
		return runSimulate(ctx, cfg, stdout, log)
	case "train":
		return runTrain(ctx, cfg, log)
	case "serve":
		engine, err := newConfiguredEngine(cfg, log)
		if err != nil {
			return err
		}
		return NewServer(engine, log).Serve(ctx, cfg.Addr)
	}
	fmt.Fprint(stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func newConfiguredEngine(cfg Config, log zerolog.Logger) (*Engine, error) {
	strategies, err := WeightStrategies(cfg.StrategyWeights)
	if err != nil {
		return nil, err
	}
	return NewEngine(NewRandom(cfg.Seed), WithStrategies(strategies), WithLogger(log)), nil
}

func runSimulate(ctx context.Context, cfg Config, out io.Writer, log zerolog.Logger) error {
	seed := resolveSeed(cfg.Seed)
	all, err := newBots(seed, cfg.Genome)
	if err != nil {
		return err
	}
	bots, err := pickBots(all, cfg.Bots)
	if err != nil {
		return err
	}
	strategies, err := WeightStrategies(cfg.StrategyWeights)
	if err != nil {
		return err
	}

	log.Info().
		Strs("bots", botNames(bots)).
		Int("episodes", cfg.Episodes).
		Uint64("seed", seed).
		Msg("simulation started")

	// every bot faces the same sequence of strategy picks and episode lengths
	results, err := SimulateAll(ctx, bots, cfg.Episodes, func(name string) *Engine {
		return NewEngine(NewRandom(seed), WithStrategies(strategies))
	})
	if err != nil {
		return err
	}
	return printSimulation(out, results)
}
