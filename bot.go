package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yaricom/goNEAT/v2/neat/genetics"
	"github.com/yaricom/goNEAT/v2/neat/network"
)

// GameState is what an autoplayer sees before choosing: its own moves and
// the computer's moves so far.
type GameState struct {
	Round    int
	Own      []Move
	Opponent []Move
}

func (g GameState) ownPrevious() (Move, bool) {
	if len(g.Own) == 0 {
		return 0, false
	}
	return g.Own[len(g.Own)-1], true
}

func (g GameState) opponentPrevious() (Move, bool) {
	if len(g.Opponent) == 0 {
		return 0, false
	}
	return g.Opponent[len(g.Opponent)-1], true
}

// Bot plays the human seat in simulations.
type Bot interface {
	Decision(state GameState) Move
}

type RandomBot struct {
	rng Random
}

func (r RandomBot) Decision(state GameState) Move {
	if r.rng.Float64() < 0.5 {
		return Defect
	}
	return Cooperate
}

type DefectBot struct{}

func (r DefectBot) Decision(state GameState) Move {
	return Defect
}

type CooperateBot struct{}

func (r CooperateBot) Decision(state GameState) Move {
	return Cooperate
}

type TitForTatBot struct{}

func (r TitForTatBot) Decision(state GameState) Move {
	if prev, ok := state.opponentPrevious(); ok && prev == Defect {
		return Defect
	}
	return Cooperate
}

type TitForTatBotReverse struct{}

func (r TitForTatBotReverse) Decision(state GameState) Move {
	if prev, ok := state.opponentPrevious(); ok && prev == Cooperate {
		return Defect
	}
	return Cooperate
}

type RandomDefectBot struct {
	rng Random
}

func (r RandomDefectBot) Decision(state GameState) Move {
	if r.rng.Float64() < 0.1 {
		return Defect
	}
	return Cooperate
}

type OftenRandomDefectBot struct {
	rng Random
}

func (r OftenRandomDefectBot) Decision(state GameState) Move {
	if r.rng.Float64() < 1.0/3 {
		return Defect
	}
	return Cooperate
}

type NeuralNetworkBot struct {
	net *network.Network
}

func (r NeuralNetworkBot) Decision(state GameState) Move {
	_ = r.net.LoadSensors(sensors(state))

	_, _ = r.net.Activate()
	outputs := r.net.ReadOutputs()

	// based on what the network says play!
	if len(outputs) > 0 && outputs[0] > 0.5 {
		return Defect
	}
	return Cooperate
}

// sensors encodes the previous round for the network, 0.5 meaning no previous round.
func sensors(state GameState) []float64 {
	in := []float64{0.5, 0.5}
	if m, ok := state.ownPrevious(); ok {
		in[0] = float64(m)
	}
	if m, ok := state.opponentPrevious(); ok {
		in[1] = float64(m)
	}
	return in
}

func readNetwork(r io.Reader) (*network.Network, error) {
	genome, err := genetics.ReadGenome(r, 1)
	if err != nil {
		return nil, fmt.Errorf("read genome: %w", err)
	}
	net, err := genome.Genesis(1)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	return net, nil
}

func loadNeuralNetworkBot(path string) (NeuralNetworkBot, error) {
	f, err := os.Open(path)
	if err != nil {
		return NeuralNetworkBot{}, err
	}
	defer f.Close()

	net, err := readNetwork(f)
	if err != nil {
		return NeuralNetworkBot{}, fmt.Errorf("%s: %w", path, err)
	}
	return NeuralNetworkBot{net: net}, nil
}

// newBots builds the named bot set. Each random bot gets its own generator so
// bots can play in parallel.
func newBots(seed uint64, genomePath string) (map[string]Bot, error) {
	bots := map[string]Bot{
		"RandomBot":            RandomBot{rng: NewRandom(seed + 1)},
		"TitForTatBot":         TitForTatBot{},
		"DefectBot":            DefectBot{},
		"CooperateBot":         CooperateBot{},
		"RandomDefectBot":      RandomDefectBot{rng: NewRandom(seed + 2)},
		"TitForTatBotReverse":  TitForTatBotReverse{},
		"OftenRandomDefectBot": OftenRandomDefectBot{rng: NewRandom(seed + 3)},
	}
	if genomePath != "" {
		nn, err := loadNeuralNetworkBot(genomePath)
		if err != nil {
			return nil, err
		}
		bots["NeuralNetworkBot"] = nn
	}
	return bots, nil
}

func pickBots(all map[string]Bot, names []string) (map[string]Bot, error) {
	if len(names) == 0 {
		return all, nil
	}
	picked := make(map[string]Bot, len(names))
	for _, n := range names {
		b, ok := all[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBot, n)
		}
		picked[n] = b
	}
	return picked, nil
}

func botNames(bots map[string]Bot) []string {
	names := make([]string, 0, len(bots))
	for n := range bots {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
