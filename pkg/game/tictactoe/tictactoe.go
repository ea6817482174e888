// Package tictactoe implements the rules of 3x3 tic-tac-toe for the
// [minimax] engine.
//
// X always opens, so whose turn it is follows from the board alone: X moves
// when both sides have placed the same number of marks, otherwise O. X is
// the maximizing side; a finished game is worth +1 when X has three in a
// line, -1 when O has, and 0 for a full board without a line.
package tictactoe

import (
	"fmt"
	"strings"

	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/game/minimax"
)

// Mark is the content of a cell.
type Mark int

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "_"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Size is the board's width and height.
const Size = 3

// Board is a 3x3 grid indexed [row][col]. It is a value type: assigning or
// passing a Board copies every cell.
type Board [Size][Size]Mark

// Move places the side-to-move's mark on a cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string { return fmt.Sprintf("(%d, %d)", m.Row, m.Col) }

// InBounds reports whether the move addresses a cell of the board.
func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// Count returns the number of cells holding mark.
func (b Board) Count(mark Mark) int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c == mark {
				n++
			}
		}
	}
	return n
}

// Full reports whether no cell is empty.
func (b Board) Full() bool { return b.Count(Empty) == 0 }

// String renders the board in the notation accepted by [Parse].
func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, c := range row {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

// Player returns the mark to move next. On a finished board it still
// reports whose turn it would be.
func Player(b Board) Mark {
	if b.Count(X) == b.Count(O) {
		return X
	}
	return O
}

var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Winner returns the mark with three in a line, or Empty. Every line is
// checked; when a malformed board has lines for both marks, X is reported.
func Winner(b Board) Mark {
	winner := Empty
	for _, l := range lines {
		m := b[l[0].Row][l[0].Col]
		if m == Empty || m != b[l[1].Row][l[1].Col] || m != b[l[2].Row][l[2].Col] {
			continue
		}
		if m == X {
			return X
		}
		winner = m
	}
	return winner
}

// Outcome summarizes the state of a game.
type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// OutcomeOf returns the outcome of b.
func OutcomeOf(b Board) Outcome {
	switch Winner(b) {
	case X:
		return XWins
	case O:
		return OWins
	}
	if b.Full() {
		return Draw
	}
	return InProgress
}

// Rules implements [minimax.Rules] for tic-tac-toe. The zero value is
// ready to use.
type Rules struct{}

var _ minimax.Rules[Board, Move] = Rules{}

// ToMove maps X to the maximizing side.
func (Rules) ToMove(b Board) minimax.Side {
	if Player(b) == X {
		return minimax.Max
	}
	return minimax.Min
}

// LegalMoves returns the empty cells in row-major order. A finished game
// has no legal moves.
func (r Rules) LegalMoves(b Board) []Move {
	if r.IsTerminal(b) {
		return nil
	}
	moves := make([]Move, 0, Size*Size)
	for i, row := range b {
		for j, c := range row {
			if c == Empty {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

// Apply places the side-to-move's mark. The input board is not modified.
// Moves on a finished board, off the board, or onto an occupied cell fail
// with [errors.ErrCodeInvalidPrecondition].
func (r Rules) Apply(b Board, m Move) (Board, error) {
	if r.IsTerminal(b) {
		return b, errors.New(errors.ErrCodeInvalidPrecondition, "game is already over")
	}
	if !m.InBounds() {
		return b, errors.New(errors.ErrCodeInvalidPrecondition, "move %s is off the board", m)
	}
	if b[m.Row][m.Col] != Empty {
		return b, errors.New(errors.ErrCodeInvalidPrecondition, "cell %s is already taken", m)
	}
	b[m.Row][m.Col] = Player(b)
	return b, nil
}

// IsTerminal reports whether someone has won or the board is full.
func (Rules) IsTerminal(b Board) bool {
	return Winner(b) != Empty || b.Full()
}

// Winner returns the mark with three in a line, or Empty.
func (Rules) Winner(b Board) Mark { return Winner(b) }

// Outcome returns the outcome of b.
func (Rules) Outcome(b Board) Outcome { return OutcomeOf(b) }

// Utility scores a finished board for X.
func (Rules) Utility(b Board) int {
	switch Winner(b) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}
