package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"
)

type SimulationResult struct {
	Bot           string
	Episodes      int
	Wins          int
	Losses        int
	Draws         int
	Rounds        int
	PlayerScore   int
	OpponentScore int
	ByStrategy    map[StrategyID]int
}

func (r SimulationResult) rate(n int) float64 {
	if r.Episodes == 0 {
		return 0
	}
	return float64(n) / float64(r.Episodes) * 100
}

func (r SimulationResult) WinRate() float64  { return r.rate(r.Wins) }
func (r SimulationResult) LossRate() float64 { return r.rate(r.Losses) }
func (r SimulationResult) DrawRate() float64 { return r.rate(r.Draws) }

// MeanRoundScore is the bot's average payoff per round across every episode.
func (r SimulationResult) MeanRoundScore() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(r.PlayerScore) / float64(r.Rounds)
}

// Simulate plays whole episodes through engine with bot in the player seat.
func Simulate(ctx context.Context, name string, bot Bot, episodes int, engine *Engine) (SimulationResult, error) {
	res := SimulationResult{Bot: name, ByStrategy: map[StrategyID]int{}}

	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		session, err := engine.InitializeSession()
		if err != nil {
			return res, err
		}
		res.ByStrategy[session.Strategy().ID()]++

		for session.Active() {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			move := bot.Decision(GameState{
				Round:    session.Round(),
				Own:      session.PlayerHistory(),
				Opponent: session.OpponentHistory(),
			})
			if _, err := engine.PlayRound(move); err != nil {
				return res, fmt.Errorf("%s episode %d: %w", name, i, err)
			}
		}

		outcome, _ := session.Outcome()
		res.Episodes++
		res.Rounds += outcome.Rounds
		res.PlayerScore += outcome.PlayerTotal
		res.OpponentScore += outcome.OpponentTotal
		switch outcome.Verdict {
		case VerdictPlayerWin:
			res.Wins++
		case VerdictPlayerLoss:
			res.Losses++
		default:
			res.Draws++
		}
	}
	return res, nil
}

// SimulateAll runs every bot concurrently, each against its own engine, and
// returns the results best win rate first.
func SimulateAll(ctx context.Context, bots map[string]Bot, episodes int, newEngine func(name string) *Engine) ([]SimulationResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make([]SimulationResult, 0, len(bots))
	for _, name := range botNames(bots) {
		name, bot := name, bots[name]
		g.Go(func() error {
			res, err := Simulate(ctx, name, bot, episodes, newEngine(name))
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].WinRate() != results[j].WinRate() {
			return results[i].WinRate() > results[j].WinRate()
		}
		return results[i].Bot < results[j].Bot
	})
	return results, nil
}

func printSimulation(w io.Writer, results []SimulationResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "bot\tepisodes\twin%\tloss%\tdraw%\twin+draw%\tavg rounds\tscore/round")
	for _, r := range results {
		avgRounds := 0.0
		if r.Episodes > 0 {
			avgRounds = float64(r.Rounds) / float64(r.Episodes)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\n",
			r.Bot, r.Episodes, r.WinRate(), r.LossRate(), r.DrawRate(),
			r.WinRate()+r.DrawRate(), avgRounds, r.MeanRoundScore())
	}
	return tw.Flush()
}
