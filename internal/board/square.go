// Package board derives renderable 8x8 grids from chess position strings.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when algebraic notation or grid indices do not name a board cell.
var ErrInvalidSquare = errors.New("invalid square")

// Square addresses one grid cell. Row 0 is rank 8 (top of the rendered board), Col 0 is file a.
type Square struct {
	Row int
	Col int
}

// NoSquare is returned alongside errors and marks "no square" in callers.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from grid indices.
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// File returns the file letter ('a'-'h').
func (sq Square) File() byte {
	return byte('a' + sq.Col)
}

// Rank returns the rank digit ('1'-'8').
func (sq Square) Rank() byte {
	return byte('0' + 8 - sq.Row)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{sq.File(), sq.Rank()})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	rank := int(s[1]) - '0'
	if col < 0 || col > 7 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return Square{Row: 8 - rank, Col: col}, nil
}

// Algebraic converts grid indices straight to algebraic notation.
func Algebraic(row, col int) string {
	return NewSquare(row, col).String()
}

// IsLight reports whether the square is drawn with the light colour.
func (sq Square) IsLight() bool {
	return (sq.Row+sq.Col)%2 == 0
}
