package tictactoe

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/minimax"
)

// plainValue is minimax without pruning.
func plainValue(r Rules, b Board) int {
	if r.IsTerminal(b) {
		return r.Utility(b)
	}
	maximizing := r.ToMove(b) == minimax.Max
	best := 2
	if maximizing {
		best = -2
	}
	for _, m := range r.LegalMoves(b) {
		next, _ := r.Apply(b, m)
		v := plainValue(r, next)
		if (maximizing && v > best) || (!maximizing && v < best) {
			best = v
		}
	}
	return best
}

func TestBestMove(t *testing.T) {
	tests := []struct {
		name  string
		board string
		move  Move
		value int
	}{
		{"empty board", "___/___/___", Move{0, 0}, 0},
		{"x completes row", "XX_/OO_/___", Move{0, 2}, 1},
		{"o completes row", "XX_/OO_/X__", Move{1, 2}, -1},
		{"x blocks", "O__/_OX/X__", Move{2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParse(tt.board)
			res, err := minimax.BestMove(context.Background(), Rules{}, b)
			if err != nil {
				t.Fatalf("BestMove: %v", err)
			}
			if res.Move != tt.move || res.Value != tt.value {
				t.Errorf("BestMove = %v (%d), want %v (%d)", res.Move, res.Value, tt.move, tt.value)
			}
			if res.Stats.Nodes == 0 {
				t.Error("Stats.Nodes should count evaluated states")
			}
		})
	}
}

func TestBestMoveTerminal(t *testing.T) {
	for _, s := range []string{"XXX/OO_/___", "XOX/XOO/OXX"} {
		_, err := minimax.BestMove(context.Background(), Rules{}, MustParse(s))
		if !errors.Is(err, errors.ErrCodeInvalidPrecondition) {
			t.Errorf("BestMove(%s) error = %v, want INVALID_PRECONDITION", s, err)
		}
	}
}

func TestBestMoveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := minimax.BestMove(ctx, Rules{}, Board{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPruningKeepsValues(t *testing.T) {
	var r Rules
	boards := []string{
		"___/___/___",
		"X__/___/___",
		"_X_/_O_/___",
		"XO_/_X_/__O",
		"X_O/_O_/X__",
	}
	for _, s := range boards {
		b := MustParse(s)
		got, stats, err := minimax.Value(context.Background(), r, b)
		if err != nil {
			t.Fatalf("Value(%s): %v", s, err)
		}
		if want := plainValue(r, b); got != want {
			t.Errorf("Value(%s) = %d, want %d", s, got, want)
		}
		if s == "___/___/___" && stats.Cutoffs == 0 {
			t.Error("alpha-beta should prune the empty board")
		}
	}

	v, _, err := minimax.Value(context.Background(), r, MustParse("XXX/OO_/___"))
	if err != nil || v != 1 {
		t.Errorf("Value(terminal) = %d, %v; want 1", v, err)
	}
}

func TestBestMoveIsOptimalEverywhere(t *testing.T) {
	var r Rules
	seen := make(map[Board]bool)
	var walk func(Board)
	walk = func(b Board) {
		if seen[b] || r.IsTerminal(b) {
			return
		}
		seen[b] = true
		res, err := minimax.BestMove(context.Background(), r, b)
		if err != nil {
			t.Fatalf("BestMove(%s): %v", b, err)
		}
		next, err := r.Apply(b, res.Move)
		if err != nil {
			t.Fatalf("BestMove(%s) returned illegal move %v", b, res.Move)
		}
		if want := plainValue(r, b); res.Value != want || plainValue(r, next) != want {
			t.Fatalf("BestMove(%s) = %v with value %d, want value %d", b, res.Move, res.Value, want)
		}
		for _, m := range r.LegalMoves(b) {
			child, _ := r.Apply(b, m)
			walk(child)
		}
	}
	// Positions after two plies keep the walk short.
	for _, s := range []string{"XO_/___/___", "X__/_O_/___", "_X_/___/__O"} {
		walk(MustParse(s))
	}
}

func TestSelfPlayDraws(t *testing.T) {
	var r Rules
	g, err := minimax.SelfPlay(context.Background(), r, Board{})
	if err != nil {
		t.Fatalf("SelfPlay: %v", err)
	}
	if len(g.Moves) != 9 {
		t.Errorf("perfect play should fill the board, got %d moves", len(g.Moves))
	}
	if OutcomeOf(g.Final) != Draw || g.Utility != 0 {
		t.Errorf("SelfPlay ended %v (%s), want draw", OutcomeOf(g.Final), g.Final)
	}

	b := Board{}
	for _, m := range g.Moves {
		if b, err = r.Apply(b, m); err != nil {
			t.Fatalf("replay %v: %v", m, err)
		}
	}
	if b != g.Final {
		t.Errorf("replayed board %s differs from final %s", b, g.Final)
	}
}

func TestSelfPlayFromTerminal(t *testing.T) {
	final := MustParse("XXX/OO_/___")
	g, err := minimax.SelfPlay(context.Background(), Rules{}, final)
	if err != nil || len(g.Moves) != 0 || g.Final != final || g.Utility != 1 {
		t.Errorf("SelfPlay(terminal) = %+v, %v", g, err)
	}
}

func BenchmarkBestMoveEmpty(b *testing.B) {
	ctx := context.Background()
	for b.Loop() {
		minimax.BestMove(ctx, Rules{}, Board{})
	}
}
