package main

import (
	"fmt"
	"strings"
)

type Move uint8

const (
	Cooperate Move = iota
	Defect
)

// payoffs is indexed [player][opponent] and holds {player, opponent} scores
var payoffs = [2][2][2]int{
	Cooperate: {
		// if both play nice then both get a small reward
		Cooperate: {2, 2},
		// if you cooperate and they don't you get nothing and they get the big reward
		Defect: {0, 3},
	},
	Defect: {
		Cooperate: {3, 0},
		// both defect and both get a token point
		Defect: {1, 1},
	},
}

func (m Move) Valid() bool {
	return m == Cooperate || m == Defect
}

// Other returns the opposite move.
func (m Move) Other() Move {
	if m == Cooperate {
		return Defect
	}
	return Cooperate
}

func (m Move) String() string {
	switch m {
	case Cooperate:
		return "cooperate"
	case Defect:
		return "defect"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMove, uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMove accepts the long or single letter form of a move.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "cooperate":
		return Cooperate, nil
	case "d", "defect":
		return Defect, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

// Payoff looks up what each side scores for one round.
func Payoff(player, opponent Move) (int, int, error) {
	if !player.Valid() || !opponent.Valid() {
		return 0, 0, fmt.Errorf("%w: %s against %s", ErrInvalidMove, player, opponent)
	}
	p := payoffs[player][opponent]
	return p[0], p[1], nil
}

func sum(scores []int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	return total
}
