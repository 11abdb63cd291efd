package main

import "fmt"

type StrategyID string

const (
	TitForTatID         StrategyID = "tft"
	WinStayLoseShiftID  StrategyID = "wsls"
	AdaptiveTitForTatID StrategyID = "atft"
)

// Strategy picks the computer's next move. own is the strategy holder's history,
// opponent is the human player's history.
type Strategy interface {
	ID() StrategyID
	Name() string
	Description() string
	Decide(own, opponent []Move) Move
}

type TitForTat struct{}

func (TitForTat) ID() StrategyID { return TitForTatID }
func (TitForTat) Name() string   { return "Tit-for-Tat" }
func (TitForTat) Description() string {
	return "Cooperates on the first round, then copies whatever you did last round."
}

func (TitForTat) Decide(own, opponent []Move) Move {
	if len(opponent) == 0 {
		return Cooperate
	}
	return opponent[len(opponent)-1]
}

type WinStayLoseShift struct{}

func (WinStayLoseShift) ID() StrategyID { return WinStayLoseShiftID }
func (WinStayLoseShift) Name() string   { return "Win-Stay-Lose-Shift" }
func (WinStayLoseShift) Description() string {
	return "Repeats its last move when it scored at least 2 points, otherwise switches."
}

func (WinStayLoseShift) Decide(own, opponent []Move) Move {
	if len(own) == 0 || len(opponent) == 0 {
		return Cooperate
	}
	last := own[len(own)-1]

	// the strategy holder sits in the opponent column of the table
	_, scored, err := Payoff(opponent[len(opponent)-1], last)
	if err != nil {
		return Cooperate
	}
	if scored >= 2 {
		return last
	}
	return last.Other()
}

type AdaptiveTitForTat struct{}

func (AdaptiveTitForTat) ID() StrategyID { return AdaptiveTitForTatID }
func (AdaptiveTitForTat) Name() string   { return "Adaptive Tit-for-Tat" }
func (AdaptiveTitForTat) Description() string {
	return "Plays Tit-for-Tat, but defects outright while more than 40% of your moves were defections."
}

// adaptiveDefectionLimit is the share of opponent defections above which the
// adaptive strategy stops mirroring.
const adaptiveDefectionLimit = 0.4

func (AdaptiveTitForTat) Decide(own, opponent []Move) Move {
	if len(opponent) == 0 {
		return Cooperate
	}
	defections := 0
	for _, m := range opponent {
		if m == Defect {
			defections++
		}
	}
	if float64(defections)/float64(len(opponent)) > adaptiveDefectionLimit {
		return Defect
	}
	return opponent[len(opponent)-1]
}

type WeightedStrategy struct {
	Strategy Strategy
	Weight   float64
}

func DefaultStrategies() []WeightedStrategy {
	return []WeightedStrategy{
		{Strategy: TitForTat{}, Weight: 0.10},
		{Strategy: WinStayLoseShift{}, Weight: 0.10},
		{Strategy: AdaptiveTitForTat{}, Weight: 0.80},
	}
}

// WeightStrategies pairs the three strategies, in their default order, with
// the given weights.
func WeightStrategies(weights []float64) ([]WeightedStrategy, error) {
	choices := DefaultStrategies()
	if len(weights) != len(choices) {
		return nil, fmt.Errorf("%w: want %d weights, got %d", ErrInvalidWeight, len(choices), len(weights))
	}
	for i := range choices {
		choices[i].Weight = weights[i]
	}
	if _, err := totalWeight(choices); err != nil {
		return nil, err
	}
	return choices, nil
}

func totalWeight(choices []WeightedStrategy) (float64, error) {
	total := 0.0
	for _, c := range choices {
		if c.Weight < 0 {
			return 0, fmt.Errorf("%w: %s has weight %v", ErrInvalidWeight, c.Strategy.ID(), c.Weight)
		}
		total += c.Weight
	}
	if len(choices) == 0 || total <= 0 {
		return 0, ErrNoStrategies
	}
	return total, nil
}

// SelectStrategy makes a single weighted draw: the first strategy whose
// cumulative weight exceeds the draw wins.
func SelectStrategy(rng Random, choices []WeightedStrategy) (Strategy, error) {
	total, err := totalWeight(choices)
	if err != nil {
		return nil, err
	}

	draw := rng.Float64() * total
	cumulative := 0.0
	for _, c := range choices {
		cumulative += c.Weight
		if draw < cumulative {
			return c.Strategy, nil
		}
	}

	// float rounding can leave the draw a hair above the final sum
	for i := len(choices) - 1; i >= 0; i-- {
		if choices[i].Weight > 0 {
			return choices[i].Strategy, nil
		}
	}
	return nil, ErrNoStrategies
}
