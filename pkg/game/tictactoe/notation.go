package tictactoe

import (
	"strconv"
	"strings"

	"github.com/matzehuels/frontier/pkg/errors"
)

// Parse reads a board written row by row, such as "XX_/OO_/___". Cells are
// X, O, or one of "_.-" for empty, case-insensitive. Slashes, commas and
// whitespace between cells are ignored. The board must be reachable: X
// has either as many marks as O or one more.
func Parse(s string) (Board, error) {
	var b Board
	n := 0
	for _, r := range s {
		var m Mark
		switch r {
		case 'x', 'X':
			m = X
		case 'o', 'O':
			m = O
		case '_', '.', '-':
			m = Empty
		case '/', ',', '|', ' ', '\t', '\n', '\r':
			continue
		default:
			return Board{}, errors.New(errors.ErrCodeInvalidInput, "invalid cell %q in board %q", r, s)
		}
		if n == Size*Size {
			return Board{}, errors.New(errors.ErrCodeInvalidInput, "board %q has more than %d cells", s, Size*Size)
		}
		b[n/Size][n%Size] = m
		n++
	}
	if n != Size*Size {
		return Board{}, errors.New(errors.ErrCodeInvalidInput, "board %q has %d cells, want %d", s, n, Size*Size)
	}
	if d := b.Count(X) - b.Count(O); d != 0 && d != 1 {
		return Board{}, errors.New(errors.ErrCodeInvalidInput, "board %q is unreachable: X has %d marks, O has %d", s, b.Count(X), b.Count(O))
	}
	return b, nil
}

// MustParse is like [Parse] but panics on error. It is meant for tests and
// fixed boards.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseMove reads a move as "row,col" with zero-based indices, or as a
// single cell number 1-9 counted row by row.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if row, col, ok := strings.Cut(s, ","); ok {
		r, err1 := strconv.Atoi(strings.TrimSpace(row))
		c, err2 := strconv.Atoi(strings.TrimSpace(col))
		if err1 != nil || err2 != nil {
			return Move{}, errors.New(errors.ErrCodeInvalidInput, "invalid move %q", s)
		}
		return Move{Row: r, Col: c}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > Size*Size {
		return Move{}, errors.New(errors.ErrCodeInvalidInput, "invalid move %q: want row,col or 1-%d", s, Size*Size)
	}
	return Move{Row: (n - 1) / Size, Col: (n - 1) % Size}, nil
}
