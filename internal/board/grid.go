package board

import "strings"

// Grid is the 8x8 board, row-major, row 0 = rank 8. The zero value is an empty board.
type Grid [8][8]Token

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartGrid returns the standard initial arrangement.
func StartGrid() Grid {
	var g Grid
	for col := 0; col < 8; col++ {
		g[0][col] = NewToken(Black, backRank[col])
		g[1][col] = NewToken(Black, Pawn)
		g[6][col] = NewToken(White, Pawn)
		g[7][col] = NewToken(White, backRank[col])
	}
	return g
}

// At returns the token on a square, or Empty when the square is off the board.
func (g *Grid) At(sq Square) Token {
	if !sq.IsValid() {
		return Empty
	}
	return g[sq.Row][sq.Col]
}

// IsOccupied returns true if a piece stands on the square.
func (g *Grid) IsOccupied(sq Square) bool {
	return !g.At(sq).IsEmpty()
}

// IsEmpty returns true if no cell is occupied.
func (g *Grid) IsEmpty() bool {
	return *g == Grid{}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for row := range g {
		for col := range g[row] {
			if !g[row][col].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// String renders the grid as eight lines of FEN letters with '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if l := g[row][col].Letter(); l != 0 {
				sb.WriteByte(l)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
