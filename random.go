package main

import (
	"time"

	"golang.org/x/exp/rand"
)

// Random is the only source of nondeterminism in the engine. *rand.Rand
// satisfies it; tests substitute scripted draws.
type Random interface {
	Float64() float64
}

// NewRandom seeds a PCG generator, falling back to the clock when seed is 0.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(resolveSeed(seed)))
}

func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
