package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is the state of one play-through. It is created by
// Engine.InitializeSession and only mutated by Engine.PlayRound.
type Session struct {
	id              string
	round           int
	strategy        Strategy
	playerHistory   []Move
	opponentHistory []Move
	playerScores    []int
	opponentScores  []int
	active          bool
	outcome         *Outcome
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Round() int         { return s.round }
func (s *Session) Active() bool       { return s.active }
func (s *Session) Strategy() Strategy { return s.strategy }

func (s *Session) PlayerHistory() []Move   { return append([]Move(nil), s.playerHistory...) }
func (s *Session) OpponentHistory() []Move { return append([]Move(nil), s.opponentHistory...) }
func (s *Session) PlayerScores() []int     { return append([]int(nil), s.playerScores...) }
func (s *Session) OpponentScores() []int   { return append([]int(nil), s.opponentScores...) }

func (s *Session) PlayerTotal() int   { return sum(s.playerScores) }
func (s *Session) OpponentTotal() int { return sum(s.opponentScores) }

// Outcome is only available once the session has ended.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

type RoundOutcome struct {
	Round          int      `json:"round"`
	PlayerMove     Move     `json:"player_move"`
	OpponentMove   Move     `json:"opponent_move"`
	PlayerPayoff   int      `json:"player_payoff"`
	OpponentPayoff int      `json:"opponent_payoff"`
	PlayerTotal    int      `json:"player_total"`
	OpponentTotal  int      `json:"opponent_total"`
	Ended          bool     `json:"ended"`
	Outcome        *Outcome `json:"outcome,omitempty"`
}

// Engine owns the single live session. It is not safe for concurrent use.
type Engine struct {
	rng        Random
	strategies []WeightedStrategy
	policy     EpisodePolicy
	log        zerolog.Logger
	session    *Session
}

type EngineOption func(*Engine)

func WithStrategies(choices []WeightedStrategy) EngineOption {
	return func(e *Engine) { e.strategies = choices }
}

func WithEpisodePolicy(policy EpisodePolicy) EngineOption {
	return func(e *Engine) { e.policy = policy }
}

func WithLogger(log zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

func NewEngine(rng Random, opts ...EngineOption) *Engine {
	e := &Engine{
		rng:        rng,
		strategies: DefaultStrategies(),
		policy:     DefaultEpisodePolicy(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the current session, or nil before the first InitializeSession.
func (e *Engine) Session() *Session {
	return e.session
}

// InitializeSession throws away any previous session and picks the opponent
// strategy for the new one.
func (e *Engine) InitializeSession() (*Session, error) {
	strategy, err := SelectStrategy(e.rng, e.strategies)
	if err != nil {
		return nil, fmt.Errorf("select strategy: %w", err)
	}

	e.session = &Session{
		id:       uuid.NewString(),
		strategy: strategy,
		active:   true,
	}
	e.log.Info().
		Str("session", e.session.id).
		Str("strategy", string(strategy.ID())).
		Msg("session started")
	return e.session, nil
}

// PlayRound resolves one round against the session's opponent strategy and
// ends the session when the episode policy says so.
func (e *Engine) PlayRound(move Move) (RoundOutcome, error) {
	s := e.session
	if s == nil || !s.active {
		return RoundOutcome{}, ErrInactiveSession
	}
	if !move.Valid() {
		return RoundOutcome{}, fmt.Errorf("%w: %d", ErrInvalidMove, uint8(move))
	}

	// the opponent decides before it sees this round's move
	opponentMove := s.strategy.Decide(s.opponentHistory, s.playerHistory)
	playerPayoff, opponentPayoff, err := Payoff(move, opponentMove)
	if err != nil {
		return RoundOutcome{}, err
	}

	// build the next state on fresh slices and commit it only once nothing
	// can fail any more
	round := s.round + 1
	playerHistory := append(s.playerHistory[:len(s.playerHistory):len(s.playerHistory)], move)
	opponentHistory := append(s.opponentHistory[:len(s.opponentHistory):len(s.opponentHistory)], opponentMove)
	playerScores := append(s.playerScores[:len(s.playerScores):len(s.playerScores)], playerPayoff)
	opponentScores := append(s.opponentScores[:len(s.opponentScores):len(s.opponentScores)], opponentPayoff)

	out := RoundOutcome{
		Round:          round,
		PlayerMove:     move,
		OpponentMove:   opponentMove,
		PlayerPayoff:   playerPayoff,
		OpponentPayoff: opponentPayoff,
		PlayerTotal:    sum(playerScores),
		OpponentTotal:  sum(opponentScores),
	}

	var outcome *Outcome
	if e.policy.ShouldTerminate(e.rng, round) {
		o, err := EvaluateOutcome(playerScores, opponentScores)
		if err != nil {
			return RoundOutcome{}, fmt.Errorf("evaluate outcome: %w", err)
		}
		outcome = &o
	}

	s.round = round
	s.playerHistory = playerHistory
	s.opponentHistory = opponentHistory
	s.playerScores = playerScores
	s.opponentScores = opponentScores
	e.log.Debug().
		Str("session", s.id).
		Int("round", s.round).
		Stringer("player", move).
		Stringer("opponent", opponentMove).
		Msg("round played")

	if outcome == nil {
		return out, nil
	}
	s.active = false
	s.outcome = outcome
	out.Ended = true
	out.Outcome = outcome

	e.log.Info().
		Str("session", s.id).
		Int("rounds", outcome.Rounds).
		Int("player_total", outcome.PlayerTotal).
		Int("opponent_total", outcome.OpponentTotal).
		Stringer("verdict", outcome.Verdict).
		Msg("session ended")
	return out, nil
}
