package main

import "errors"

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrInactiveSession  = errors.New("session is not active")
	ErrNoRounds         = errors.New("no rounds played")
	ErrScoreLogMismatch = errors.New("score logs differ in length")
	ErrNoStrategies     = errors.New("no strategies to choose from")
	ErrInvalidWeight    = errors.New("invalid strategy weight")
	ErrUnknownBot       = errors.New("unknown bot")
)
