package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Verdict int

const (
	VerdictDraw Verdict = iota
	VerdictPlayerWin
	VerdictPlayerLoss
)

func (v Verdict) String() string {
	switch v {
	case VerdictPlayerWin:
		return "player win"
	case VerdictPlayerLoss:
		return "player loss"
	}
	return "draw"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

type Outcome struct {
	Rounds          int             `json:"rounds"`
	PlayerTotal     int             `json:"player_total"`
	OpponentTotal   int             `json:"opponent_total"`
	PlayerAverage   decimal.Decimal `json:"player_average"`
	OpponentAverage decimal.Decimal `json:"opponent_average"`
	Verdict         Verdict         `json:"verdict"`
}

// EvaluateOutcome totals both score logs and compares the per-round averages
// at two decimal places, so a difference that would not show on screen is a draw.
func EvaluateOutcome(playerScores, opponentScores []int) (Outcome, error) {
	if len(playerScores) != len(opponentScores) {
		return Outcome{}, fmt.Errorf("%w: %d against %d", ErrScoreLogMismatch, len(playerScores), len(opponentScores))
	}
	rounds := len(playerScores)
	if rounds == 0 {
		return Outcome{}, ErrNoRounds
	}

	out := Outcome{
		Rounds:        rounds,
		PlayerTotal:   sum(playerScores),
		OpponentTotal: sum(opponentScores),
	}
	out.PlayerAverage = average(out.PlayerTotal, rounds)
	out.OpponentAverage = average(out.OpponentTotal, rounds)

	switch {
	case out.PlayerAverage.GreaterThan(out.OpponentAverage):
		out.Verdict = VerdictPlayerWin
	case out.OpponentAverage.GreaterThan(out.PlayerAverage):
		out.Verdict = VerdictPlayerLoss
	default:
		out.Verdict = VerdictDraw
	}
	return out, nil
}

// average rounds to two places with halves going away from zero, so an exact
// 1.005 is 1.01. Verdicts compare these rounded values.
func average(total, rounds int) decimal.Decimal {
	return decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(rounds))).
		Round(2)
}
