package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminationProbability(t *testing.T) {
	p := DefaultEpisodePolicy()
	tests := []struct {
		round int
		want  float64
	}{
		{1, 0.03},
		{5, 0.03},
		{9, 0.03},
		{10, 0.10},
		{12, 0.10},
		{14, 0.10},
		{15, 0.25},
		{20, 0.25},
		{500, 0.25},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, p.TerminationProbability(tt.round), "round %d", tt.round)
	}
}

func TestShouldTerminateAtThreshold(t *testing.T) {
	p := DefaultEpisodePolicy()
	tests := []struct {
		round     int
		threshold float64
	}{
		{5, 0.03},
		{12, 0.10},
		{20, 0.25},
	}
	for _, tt := range tests {
		require.True(t, p.ShouldTerminate(script(tt.threshold-1e-9), tt.round), "round %d below", tt.round)
		require.False(t, p.ShouldTerminate(script(tt.threshold), tt.round), "round %d at", tt.round)
		require.False(t, p.ShouldTerminate(script(tt.threshold+1e-9), tt.round), "round %d above", tt.round)
	}
}

func TestShouldTerminateFrequencies(t *testing.T) {
	p := DefaultEpisodePolicy()
	rng := NewRandom(7)
	const n = 100000
	for round, want := range map[int]float64{5: 0.03, 12: 0.10, 20: 0.25} {
		ended := 0
		for i := 0; i < n; i++ {
			if p.ShouldTerminate(rng, round) {
				ended++
			}
		}
		require.InDelta(t, want, float64(ended)/n, 0.01, "round %d", round)
	}
}

func TestCustomEpisodePolicy(t *testing.T) {
	p := EpisodePolicy{Bands: []TerminationBand{{FromRound: 3, Probability: 1}}}
	require.Zero(t, p.TerminationProbability(2))
	require.False(t, p.ShouldTerminate(script(0), 2))
	require.True(t, p.ShouldTerminate(script(0.999), 3))
}
