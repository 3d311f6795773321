package game

import (
	"context"
	"errors"
	"fmt"
)

// Controller is the human side of a blocking game loop. Terminal, TCP and
// WebSocket front ends all implement it.
type Controller interface {
	Observer

	// ChooseDiscard waits for the human to pick a hand index.
	ChooseDiscard(ctx context.Context, state *GameState) (int, error)

	// ResolveQuiz shows the gate's question and reports whether the answer was correct.
	ResolveQuiz(ctx context.Context, state *GameState, gate Gate) (bool, error)
}

// Runner drives a Game to completion against a blocking Controller.
type Runner struct {
	Game  *Game
	Human Controller
}

// NewRunner registers human as an observer of g.
func NewRunner(g *Game, human Controller) *Runner {
	g.AddObserver(human)
	return &Runner{Game: g, Human: human}
}

// Run executes the entire game loop. Invalid selections are re-prompted.
// A controller returning ErrReset abandons the game.
func (r *Runner) Run(ctx context.Context) (*FinalResult, error) {
	g := r.Game
	gs := g.State

	if gs.Phase == PhaseInitial {
		if err := g.Start(ctx); err != nil {
			return nil, err
		}
	}

	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if gate := gs.Pending; gate != nil {
			if err := r.resolve(ctx, *gate); err != nil {
				return nil, err
			}
			continue
		}

		idx, err := r.Human.ChooseDiscard(ctx, gs)
		if err != nil {
			return nil, r.abort(ctx, "choose discard", err)
		}
		if _, err := g.Discard(ctx, idx); err != nil {
			if errors.Is(err, ErrInvalidSelection) {
				continue
			}
			return nil, err
		}
	}

	return g.Result(), nil
}

func (r *Runner) resolve(ctx context.Context, gate Gate) error {
	correct, err := r.Human.ResolveQuiz(ctx, r.Game.State, gate)
	if err != nil {
		return r.abort(ctx, "resolve quiz", err)
	}
	if _, err := r.Game.ResolveGate(ctx, gate.ID, correct); err != nil {
		return err
	}
	return nil
}

func (r *Runner) abort(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrReset) {
		r.Game.Abandon(ctx)
	}
	return fmt.Errorf("%s: %w", op, err)
}
