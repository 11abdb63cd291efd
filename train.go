package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yaricom/goNEAT/v2/experiment"
	"github.com/yaricom/goNEAT/v2/neat"
	"github.com/yaricom/goNEAT/v2/neat/genetics"
)

// a network scoring this per round, on average, beats every strategy outright
const trainTargetScore = 2.5

// PrisonersDilemmaGenerationEvaluator scores every organism by playing it
// through the engine. Organisms of one generation face the same random draws.
// The genome of the fittest organism seen so far is kept in plain encoding.
type PrisonersDilemmaGenerationEvaluator struct {
	Episodes   int
	Seed       uint64
	Strategies []WeightedStrategy
	Policy     EpisodePolicy
	Log        zerolog.Logger

	championFitness float64
	champion        []byte
}

func (ex *PrisonersDilemmaGenerationEvaluator) GenerationEvaluate(
	pop *genetics.Population,
	epoch *experiment.Generation,
	context *neat.Options,
) (err error) {
	best := 0.0
	for _, org := range pop.Organisms {
		org.Fitness, err = ex.fitness(NeuralNetworkBot{net: org.Phenotype}, uint64(epoch.Id))
		if err != nil {
			return err
		}
		if org.Fitness >= trainTargetScore {
			org.IsWinner = true
			epoch.Solved = true
		}
		if org.Fitness > best {
			best = org.Fitness
		}
		if ex.champion == nil || org.Fitness > ex.championFitness {
			if err := ex.keepChampion(org); err != nil {
				return err
			}
		}
	}

	epoch.FillPopulationStatistics(pop)
	ex.Log.Info().
		Int("generation", epoch.Id).
		Int("organisms", len(pop.Organisms)).
		Float64("best_score_per_round", best).
		Bool("solved", epoch.Solved).
		Msg("generation evaluated")
	return nil
}

func (ex *PrisonersDilemmaGenerationEvaluator) keepChampion(org *genetics.Organism) error {
	var buf bytes.Buffer
	w, err := genetics.NewGenomeWriter(&buf, genetics.PlainGenomeEncoding)
	if err != nil {
		return err
	}
	if err := w.WriteGenome(org.Genotype); err != nil {
		return fmt.Errorf("encode genome: %w", err)
	}
	ex.championFitness = org.Fitness
	ex.champion = buf.Bytes()
	return nil
}

func (ex *PrisonersDilemmaGenerationEvaluator) fitness(bot Bot, generation uint64) (float64, error) {
	engine := NewEngine(NewRandom(ex.Seed+generation),
		WithStrategies(ex.Strategies),
		WithEpisodePolicy(ex.Policy),
	)
	res, err := Simulate(context.Background(), "organism", bot, ex.Episodes, engine)
	if err != nil {
		return 0, err
	}
	return res.MeanRoundScore(), nil
}

func runTrain(ctx context.Context, cfg Config, log zerolog.Logger) error {
	strategies, err := WeightStrategies(cfg.StrategyWeights)
	if err != nil {
		return err
	}

	// Load neatOptions configuration
	configFile, err := os.Open(cfg.NeatConfig)
	if err != nil {
		return fmt.Errorf("open NEAT options: %w", err)
	}
	defer configFile.Close()
	options, err := neat.LoadNeatOptions(configFile)
	if err != nil {
		return fmt.Errorf("load NEAT options: %w", err)
	}

	// two sensors (own and opponent previous move) plus bias, one output
	startGenome, err := readStartGenome(cfg.StartGenome)
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg.Seed)
	exp := experiment.Experiment{
		Id:       0,
		Trials:   make(experiment.Trials, options.NumRuns),
		RandSeed: int64(seed),
	}
	exp.MaxFitnessScore = 3

	evaluator := &PrisonersDilemmaGenerationEvaluator{
		Episodes:   cfg.Episodes,
		Seed:       seed,
		Strategies: strategies,
		Policy:     DefaultEpisodePolicy(),
		Log:        log,
	}

	log.Info().
		Str("options", cfg.NeatConfig).
		Int("runs", options.NumRuns).
		Int("episodes", cfg.Episodes).
		Uint64("seed", seed).
		Msg("training started")
	if err := exp.Execute(neat.NewContext(ctx, options), startGenome, evaluator, nil); err != nil {
		return fmt.Errorf("execute experiment: %w", err)
	}
	if evaluator.champion == nil {
		return fmt.Errorf("no organism was evaluated")
	}

	if err := os.WriteFile(cfg.Champion, evaluator.champion, 0o644); err != nil {
		return fmt.Errorf("write champion genome: %w", err)
	}
	log.Info().
		Str("champion", cfg.Champion).
		Float64("score_per_round", evaluator.championFitness).
		Msg("training finished")
	return nil
}

func readStartGenome(path string) (*genetics.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open start genome: %w", err)
	}
	defer f.Close()

	genome, err := genetics.ReadGenome(f, 1)
	if err != nil {
		return nil, fmt.Errorf("read start genome %s: %w", path, err)
	}
	return genome, nil
}
