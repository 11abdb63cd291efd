package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseConfig(fs, args)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	require.Zero(t, cfg.Seed)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 10000, cfg.Episodes)
	require.Equal(t, []float64{0.10, 0.10, 0.80}, cfg.StrategyWeights)
	require.Empty(t, cfg.Bots)
	require.Equal(t, "./dilemma.startgenes", cfg.StartGenome)
	require.Equal(t, "champion.genome", cfg.Champion)
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("DILEMMA_SEED", "11")
	t.Setenv("DILEMMA_EPISODES", "50")
	t.Setenv("DILEMMA_BOTS", "DefectBot,CooperateBot")
	t.Setenv("DILEMMA_STRATEGY_WEIGHTS", "0.2,0.3,0.5")

	cfg, err := parse(t)
	require.NoError(t, err)
	require.Equal(t, uint64(11), cfg.Seed)
	require.Equal(t, 50, cfg.Episodes)
	require.Equal(t, []string{"DefectBot", "CooperateBot"}, cfg.Bots)
	require.Equal(t, []float64{0.2, 0.3, 0.5}, cfg.StrategyWeights)
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DILEMMA_EPISODES", "50")

	cfg, err := parse(t, "-episodes", "7", "-seed", "3", "-bots", "RandomBot, DefectBot", "-weights", "1,1,2",
		"-start-genome", "start.genome", "-champion", "best.genome")
	require.NoError(t, err)
	require.Equal(t, "start.genome", cfg.StartGenome)
	require.Equal(t, "best.genome", cfg.Champion)
	require.Equal(t, 7, cfg.Episodes)
	require.Equal(t, uint64(3), cfg.Seed)
	require.Equal(t, []string{"RandomBot", "DefectBot"}, cfg.Bots)
	require.Equal(t, []float64{1, 1, 2}, cfg.StrategyWeights)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	_, err := parse(t, "-weights", "0.5,0.5")
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = parse(t, "-weights", "a,b,c")
	require.Error(t, err)

	_, err = parse(t, "-episodes", "0")
	require.Error(t, err)
}
