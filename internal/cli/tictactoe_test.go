package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/tictactoe"
)

func TestTicTacToeBest(t *testing.T) {
	out, _, err := runCLI(t, "", "tictactoe", "best", "XX_/OO_/___")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Best move for X: (0, 2)", "Value: +1 (X wins with best play)", "searched"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	if _, _, err := runCLI(t, "", "ttt", "best", "XXX/OO_/___"); !errors.Is(err, errors.ErrCodeInvalidPrecondition) {
		t.Errorf("finished board error = %v", err)
	}
	if _, _, err := runCLI(t, "", "ttt", "best", "XXXX"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad board error = %v", err)
	}
}

func TestTicTacToeSelfPlay(t *testing.T) {
	out, _, err := runCLI(t, "", "tictactoe", "selfplay")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1. X (0, 0)") || !strings.Contains(out, "9. X") || !strings.Contains(out, "Draw.") {
		t.Errorf("self-play output:\n%s", out)
	}

	out, _, err = runCLI(t, "", "tictactoe", "selfplay", "XX_/OO_/___")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1. X (0, 2)") || !strings.Contains(out, "X wins.") {
		t.Errorf("self-play from a won position:\n%s", out)
	}
}

func TestTicTacToePlayNeedsTerminal(t *testing.T) {
	_, _, err := runCLI(t, "", "tictactoe", "play")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
	_, _, err = runCLI(t, "", "tictactoe", "play", "--as", "z")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestParseMark(t *testing.T) {
	tests := []struct {
		in   string
		want tictactoe.Mark
	}{
		{"x", tictactoe.X},
		{"O", tictactoe.O},
	}
	for _, tt := range tests {
		if got, err := parseMark(tt.in); err != nil || got != tt.want {
			t.Errorf("parseMark(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	got := renderBoard(tictactoe.MustParse("X__/_O_/___"), noCursor)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("board has %d lines, want 5:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "X") || !strings.Contains(lines[2], "O") {
		t.Errorf("marks misplaced:\n%s", got)
	}
}
