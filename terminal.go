package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Terminal is the interactive front end: it reads one command per line and
// drives the engine.
type Terminal struct {
	engine *Engine
	in     *bufio.Scanner
	out    io.Writer
}

func NewTerminal(engine *Engine, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{engine: engine, in: bufio.NewScanner(in), out: out}
}

func (t *Terminal) Run() error {
	if err := t.restart(); err != nil {
		return err
	}

	for {
		t.prompt()
		if !t.in.Scan() {
			return t.in.Err()
		}

		cmd := strings.ToLower(strings.TrimSpace(t.in.Text()))
		switch cmd {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "restart":
			if err := t.restart(); err != nil {
				return err
			}
			continue
		}

		move, err := ParseMove(cmd)
		if err != nil {
			fmt.Fprintf(t.out, "Unknown command %q.\n", cmd)
			continue
		}
		if err := t.play(move); err != nil {
			return err
		}
	}
}

func (t *Terminal) prompt() {
	s := t.engine.Session()
	if s != nil && s.Active() {
		fmt.Fprintf(t.out, "\n%s round - [c]ooperate or [d]efect (r restart, q quit): ",
			humanize.Ordinal(s.Round()+1))
		return
	}
	fmt.Fprint(t.out, "\nGame over - [r]estart or [q]uit: ")
}

func (t *Terminal) restart() error {
	if _, err := t.engine.InitializeSession(); err != nil {
		return err
	}
	fmt.Fprintln(t.out, "A new game has started. The computer has picked a strategy; it is revealed at the end.")
	fmt.Fprintln(t.out, "Payoffs: both cooperate 2/2, both defect 1/1, lone defector 3, lone cooperator 0.")
	return nil
}

func (t *Terminal) play(move Move) error {
	res, err := t.engine.PlayRound(move)
	if errors.Is(err, ErrInactiveSession) {
		fmt.Fprintln(t.out, "The game is over. Restart to play again.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(t.out, "You: %s, computer: %s\n", res.PlayerMove, res.OpponentMove)
	fmt.Fprintf(t.out, "This round: you %d, computer %d\n", res.PlayerPayoff, res.OpponentPayoff)
	fmt.Fprintf(t.out, "Running total: you %d, computer %d\n", res.PlayerTotal, res.OpponentTotal)

	if res.Ended {
		t.printOutcome(*res.Outcome)
	}
	return nil
}

func (t *Terminal) printOutcome(o Outcome) {
	strategy := t.engine.Session().Strategy()
	fmt.Fprintf(t.out, "\nThe game ended after %s.\n", english.Plural(o.Rounds, "round", "rounds"))
	fmt.Fprintf(t.out, "Computer strategy: %s - %s\n", strategy.Name(), strategy.Description())
	fmt.Fprintf(t.out, "Total score: you %d, computer %d\n", o.PlayerTotal, o.OpponentTotal)
	fmt.Fprintf(t.out, "Average score: you %s, computer %s\n",
		o.PlayerAverage.StringFixed(2), o.OpponentAverage.StringFixed(2))

	switch o.Verdict {
	case VerdictPlayerWin:
		fmt.Fprintln(t.out, "You win!")
	case VerdictPlayerLoss:
		fmt.Fprintln(t.out, "You lose.")
	default:
		fmt.Fprintln(t.out, "It's a draw.")
	}
}
