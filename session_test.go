package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeSessionStartsEmpty(t *testing.T) {
	e := NewEngine(script(0.05))
	require.Nil(t, e.Session())

	s, err := e.InitializeSession()
	require.NoError(t, err)
	require.Same(t, s, e.Session())
	require.True(t, s.Active())
	require.Zero(t, s.Round())
	require.Empty(t, s.PlayerHistory())
	require.Empty(t, s.OpponentHistory())
	require.Empty(t, s.PlayerScores())
	require.Empty(t, s.OpponentScores())
	require.NotEmpty(t, s.ID())
	require.Equal(t, TitForTatID, s.Strategy().ID())

	_, ok := s.Outcome()
	require.False(t, ok)
}

func TestPlayRoundWithoutSession(t *testing.T) {
	e := NewEngine(script(0.5))
	_, err := e.PlayRound(Cooperate)
	require.ErrorIs(t, err, ErrInactiveSession)
}

func TestPlayRoundRejectsInvalidMoveWithoutMutating(t *testing.T) {
	e := NewEngine(script(0.05, 0.5))
	s, err := e.InitializeSession()
	require.NoError(t, err)

	_, err = e.PlayRound(Move(3))
	require.ErrorIs(t, err, ErrInvalidMove)
	require.Zero(t, s.Round())
	require.Empty(t, s.PlayerHistory())
	require.True(t, s.Active())
}

func TestPlayRoundUntilTermination(t *testing.T) {
	// strategy draw picks tit-for-tat, the third termination draw ends the game
	e := NewEngine(script(0.05, 0.5, 0.5, 0.01))
	s, err := e.InitializeSession()
	require.NoError(t, err)

	r1, err := e.PlayRound(Defect)
	require.NoError(t, err)
	require.Equal(t, RoundOutcome{
		Round: 1, PlayerMove: Defect, OpponentMove: Cooperate,
		PlayerPayoff: 3, OpponentPayoff: 0, PlayerTotal: 3, OpponentTotal: 0,
	}, r1)

	r2, err := e.PlayRound(Cooperate)
	require.NoError(t, err)
	require.Equal(t, Defect, r2.OpponentMove)
	require.Equal(t, 3, r2.PlayerTotal)
	require.Equal(t, 3, r2.OpponentTotal)
	require.False(t, r2.Ended)

	r3, err := e.PlayRound(Defect)
	require.NoError(t, err)
	require.Equal(t, Cooperate, r3.OpponentMove)
	require.True(t, r3.Ended)
	require.NotNil(t, r3.Outcome)

	require.False(t, s.Active())
	require.Equal(t, 3, s.Round())
	require.Equal(t, []Move{Defect, Cooperate, Defect}, s.PlayerHistory())
	require.Equal(t, []Move{Cooperate, Defect, Cooperate}, s.OpponentHistory())
	require.Equal(t, []int{3, 0, 3}, s.PlayerScores())
	require.Equal(t, []int{0, 3, 0}, s.OpponentScores())

	o, ok := s.Outcome()
	require.True(t, ok)
	require.Equal(t, *r3.Outcome, o)
	require.Equal(t, 3, o.Rounds)
	require.Equal(t, 6, o.PlayerTotal)
	require.Equal(t, 3, o.OpponentTotal)
	require.Equal(t, VerdictPlayerWin, o.Verdict)

	_, err = e.PlayRound(Cooperate)
	require.ErrorIs(t, err, ErrInactiveSession)
	require.Equal(t, 3, s.Round())
}

func TestScoresGrowByTheTableEveryRound(t *testing.T) {
	e := NewEngine(NewRandom(3), WithEpisodePolicy(EpisodePolicy{}))
	_, err := e.InitializeSession()
	require.NoError(t, err)

	moves := []Move{Cooperate, Defect, Defect, Cooperate, Cooperate, Defect, Cooperate}
	prev := 0
	for i, m := range moves {
		res, err := e.PlayRound(m)
		require.NoError(t, err)
		require.Equal(t, i+1, res.Round)

		p, o, err := Payoff(res.PlayerMove, res.OpponentMove)
		require.NoError(t, err)
		require.Equal(t, p, res.PlayerPayoff)
		require.Equal(t, o, res.OpponentPayoff)

		total := res.PlayerTotal + res.OpponentTotal
		require.Equal(t, prev+p+o, total)
		prev = total
	}
	require.True(t, e.Session().Active())
}

func TestInitializeSessionDiscardsPrevious(t *testing.T) {
	e := NewEngine(script(0.05, 0.01, 0.95))
	first, err := e.InitializeSession()
	require.NoError(t, err)
	_, err = e.PlayRound(Cooperate)
	require.NoError(t, err)
	require.False(t, first.Active())

	second, err := e.InitializeSession()
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.NotEqual(t, first.ID(), second.ID())
	require.Equal(t, AdaptiveTitForTatID, second.Strategy().ID())
	require.True(t, second.Active())
	require.Zero(t, second.Round())
	require.Empty(t, second.PlayerHistory())
	_, ok := second.Outcome()
	require.False(t, ok)

	// the old session is left as it was
	require.Equal(t, 1, first.Round())
}

func TestSessionAccessorsReturnCopies(t *testing.T) {
	e := NewEngine(script(0.05, 0.5))
	s, err := e.InitializeSession()
	require.NoError(t, err)
	_, err = e.PlayRound(Defect)
	require.NoError(t, err)

	h := s.PlayerHistory()
	h[0] = Cooperate
	require.Equal(t, []Move{Defect}, s.PlayerHistory())
}

func TestInitializeSessionFailsWithoutStrategies(t *testing.T) {
	e := NewEngine(script(0.5), WithStrategies(nil))
	_, err := e.InitializeSession()
	require.ErrorIs(t, err, ErrNoStrategies)
	require.Nil(t, e.Session())
}

// brokenStrategy plays tit for tat for its first rounds, then answers with a
// move outside the payoff table.
type brokenStrategy struct {
	TitForTat
	after int
}

func (b brokenStrategy) Decide(own, opponent []Move) Move {
	if len(own) >= b.after {
		return Move(9)
	}
	return b.TitForTat.Decide(own, opponent)
}

func TestPlayRoundFailureLeavesSessionUntouched(t *testing.T) {
	e := NewEngine(script(0.5), WithStrategies([]WeightedStrategy{{Strategy: brokenStrategy{after: 1}, Weight: 1}}))
	s, err := e.InitializeSession()
	require.NoError(t, err)

	_, err = e.PlayRound(Defect)
	require.NoError(t, err)

	_, err = e.PlayRound(Cooperate)
	require.ErrorIs(t, err, ErrInvalidMove)
	require.True(t, s.Active())
	require.Equal(t, 1, s.Round())
	require.Equal(t, []Move{Defect}, s.PlayerHistory())
	require.Equal(t, []Move{Cooperate}, s.OpponentHistory())
	require.Equal(t, []int{3}, s.PlayerScores())
	require.Equal(t, []int{0}, s.OpponentScores())
	_, ok := s.Outcome()
	require.False(t, ok)
}
