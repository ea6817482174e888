// Package minimax plays two-player, zero-sum, perfect-information games
// optimally by exhaustive game-tree search with alpha-beta pruning.
//
// A game is described by a [Rules] implementation. The engine never looks
// inside a state; it only asks the rules whose turn it is, which moves are
// legal, what a move leads to, and what a finished game is worth to the
// maximizing side. Pruning never changes the chosen move or its value, only
// how many states are visited.
//
// Ties between equally good moves are broken by enumeration order: the
// first move whose value is strictly better than every earlier one wins.
package minimax

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/frontier/pkg/errors"
)

// Side identifies which player moves.
type Side int

const (
	// Max is the side whose utility the engine maximizes.
	Max Side = iota
	// Min is the opponent, who minimizes the same utility.
	Min
)

func (s Side) String() string {
	if s == Max {
		return "max"
	}
	return "min"
}

// Rules describes a game to the engine. Apply must not modify its input
// state: every explored branch needs its own copy.
type Rules[S any, M comparable] interface {
	// ToMove returns the side to move in a non-terminal state.
	ToMove(s S) Side
	// LegalMoves lists the moves available in a non-terminal state, in
	// the order the engine should try them.
	LegalMoves(s S) []M
	// Apply returns the state reached by playing m in s.
	Apply(s S, m M) (S, error)
	// IsTerminal reports whether the game is over.
	IsTerminal(s S) bool
	// Utility scores a terminal state from Max's point of view.
	Utility(s S) int
}

// Stats counts the work done by one search.
type Stats struct {
	// Nodes is the number of states evaluated, terminal ones included.
	Nodes int `json:"nodes"`
	// Cutoffs is the number of times the remaining moves of a state were
	// skipped because they could not affect the result.
	Cutoffs int `json:"cutoffs"`
}

// Result is the optimal move for the side to move and the value it
// guarantees under best play.
type Result[M any] struct {
	Move  M     `json:"move"`
	Value int   `json:"value"`
	Stats Stats `json:"stats"`
}

type searcher[S any, M comparable] struct {
	ctx   context.Context
	rules Rules[S, M]
	stats Stats
}

// BestMove returns the optimal move in s. The state must not be terminal;
// a terminal state yields an error with code
// [errors.ErrCodeInvalidPrecondition].
func BestMove[S any, M comparable](ctx context.Context, rules Rules[S, M], s S) (Result[M], error) {
	if rules.IsTerminal(s) {
		return Result[M]{}, errors.New(errors.ErrCodeInvalidPrecondition, "game is already over")
	}
	se := &searcher[S, M]{ctx: ctx, rules: rules}
	res, err := se.root(s)
	res.Stats = se.stats
	return res, err
}

// Value returns the minimax value of s from Max's point of view. Unlike
// [BestMove] it accepts terminal states, whose value is their utility.
func Value[S any, M comparable](ctx context.Context, rules Rules[S, M], s S) (int, Stats, error) {
	se := &searcher[S, M]{ctx: ctx, rules: rules}
	var (
		v   int
		err error
	)
	if rules.IsTerminal(s) || rules.ToMove(s) == Max {
		v, err = se.maxValue(s, math.MinInt, math.MaxInt)
	} else {
		v, err = se.minValue(s, math.MinInt, math.MaxInt)
	}
	return v, se.stats, err
}

func (se *searcher[S, M]) root(s S) (Result[M], error) {
	if err := se.ctx.Err(); err != nil {
		return Result[M]{}, err
	}
	moves := se.rules.LegalMoves(s)
	if len(moves) == 0 {
		return Result[M]{}, errors.New(errors.ErrCodeInternal, "non-terminal state has no legal moves")
	}
	se.stats.Nodes++

	maximizing := se.rules.ToMove(s) == Max
	var best Result[M]
	alpha, beta := math.MinInt, math.MaxInt
	found := false
	for _, m := range moves {
		next, err := se.rules.Apply(s, m)
		if err != nil {
			return Result[M]{}, fmt.Errorf("apply legal move %v: %w", m, err)
		}
		var v int
		if maximizing {
			v, err = se.minValue(next, alpha, beta)
		} else {
			v, err = se.maxValue(next, alpha, beta)
		}
		if err != nil {
			return Result[M]{}, err
		}
		if !found || (maximizing && v > best.Value) || (!maximizing && v < best.Value) {
			best = Result[M]{Move: m, Value: v}
			found = true
			if maximizing {
				alpha = v
			} else {
				beta = v
			}
		}
	}
	return best, nil
}

func (se *searcher[S, M]) maxValue(s S, alpha, beta int) (int, error) {
	se.stats.Nodes++
	if se.rules.IsTerminal(s) {
		return se.rules.Utility(s), nil
	}
	if err := se.ctx.Err(); err != nil {
		return 0, err
	}
	v := math.MinInt
	for _, m := range se.rules.LegalMoves(s) {
		next, err := se.rules.Apply(s, m)
		if err != nil {
			return 0, fmt.Errorf("apply legal move %v: %w", m, err)
		}
		child, err := se.minValue(next, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = max(v, child)
		if v >= beta {
			se.stats.Cutoffs++
			return v, nil
		}
		alpha = max(alpha, v)
	}
	return v, nil
}

func (se *searcher[S, M]) minValue(s S, alpha, beta int) (int, error) {
	se.stats.Nodes++
	if se.rules.IsTerminal(s) {
		return se.rules.Utility(s), nil
	}
	if err := se.ctx.Err(); err != nil {
		return 0, err
	}
	v := math.MaxInt
	for _, m := range se.rules.LegalMoves(s) {
		next, err := se.rules.Apply(s, m)
		if err != nil {
			return 0, fmt.Errorf("apply legal move %v: %w", m, err)
		}
		child, err := se.maxValue(next, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = min(v, child)
		if v <= alpha {
			se.stats.Cutoffs++
			return v, nil
		}
		beta = min(beta, v)
	}
	return v, nil
}

// Game is a finished self-play run.
type Game[S any, M any] struct {
	Moves []M `json:"moves"`
	Final S   `json:"final"`
	// Utility is the final state's score from Max's point of view.
	Utility int   `json:"utility"`
	Stats   Stats `json:"stats"`
}

// SelfPlay lets the engine play both sides from s until the game ends.
// A terminal s yields an empty game.
func SelfPlay[S any, M comparable](ctx context.Context, rules Rules[S, M], s S) (Game[S, M], error) {
	var g Game[S, M]
	for !rules.IsTerminal(s) {
		res, err := BestMove(ctx, rules, s)
		if err != nil {
			return g, err
		}
		next, err := rules.Apply(s, res.Move)
		if err != nil {
			return g, fmt.Errorf("apply best move %v: %w", res.Move, err)
		}
		g.Moves = append(g.Moves, res.Move)
		g.Stats.Nodes += res.Stats.Nodes
		g.Stats.Cutoffs += res.Stats.Cutoffs
		s = next
	}
	g.Final = s
	g.Utility = rules.Utility(s)
	return g, nil
}
