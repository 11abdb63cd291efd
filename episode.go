package main

// TerminationBand applies Probability from round FromRound until the next band starts.
type TerminationBand struct {
	FromRound   int
	Probability float64
}

// EpisodePolicy decides after every round whether the game is over. There is
// no hard upper bound on the number of rounds.
type EpisodePolicy struct {
	Bands []TerminationBand
}

func DefaultEpisodePolicy() EpisodePolicy {
	return EpisodePolicy{
		Bands: []TerminationBand{
			{FromRound: 1, Probability: 0.03},
			{FromRound: 10, Probability: 0.10},
			{FromRound: 15, Probability: 0.25},
		},
	}
}

// TerminationProbability returns the chance that the game ends after round.
// Bands must be sorted by FromRound.
func (p EpisodePolicy) TerminationProbability(round int) float64 {
	prob := 0.0
	for _, b := range p.Bands {
		if round < b.FromRound {
			break
		}
		prob = b.Probability
	}
	return prob
}

// ShouldTerminate makes one independent draw for round.
func (p EpisodePolicy) ShouldTerminate(rng Random, round int) bool {
	return rng.Float64() < p.TerminationProbability(round)
}
