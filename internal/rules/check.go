package rules

import "github.com/starkmate/starkmate/internal/board"

var (
	knightJumps = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	straight    = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal    = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// attacked reports whether any piece of side by attacks sq on g.
func attacked(g *board.Grid, sq board.Square, by board.Side) bool {
	at := func(dr, dc int, kinds ...board.Kind) bool {
		t := g.At(board.NewSquare(sq.Row+dr, sq.Col+dc))
		if t.IsEmpty() || t.Side() != by {
			return false
		}
		for _, k := range kinds {
			if t.Kind() == k {
				return true
			}
		}
		return false
	}

	// Row 0 is rank 8, so white pawns attack towards lower rows.
	pawnRow := 1
	if by == board.Black {
		pawnRow = -1
	}
	if at(pawnRow, -1, board.Pawn) || at(pawnRow, 1, board.Pawn) {
		return true
	}
	for _, d := range knightJumps {
		if at(d[0], d[1], board.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if at(d[0], d[1], board.King) {
			return true
		}
	}
	return slides(g, sq, by, straight[:], board.Rook, board.Queen) ||
		slides(g, sq, by, diagonal[:], board.Bishop, board.Queen)
}

// slides walks each direction from sq to the first occupied cell and reports whether it
// holds one of the given kinds of side by.
func slides(g *board.Grid, sq board.Square, by board.Side, dirs [][2]int, kinds ...board.Kind) bool {
	for _, d := range dirs {
		for cur := board.NewSquare(sq.Row+d[0], sq.Col+d[1]); cur.IsValid(); cur = board.NewSquare(cur.Row+d[0], cur.Col+d[1]) {
			t := g.At(cur)
			if t.IsEmpty() {
				continue
			}
			if t.Side() == by {
				for _, k := range kinds {
					if t.Kind() == k {
						return true
					}
				}
			}
			break
		}
	}
	return false
}

// kingSquare finds the king of side s, or NoSquare.
func kingSquare(g *board.Grid, s board.Side) board.Square {
	king := board.NewToken(s, board.King)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if g[row][col] == king {
				return board.NewSquare(row, col)
			}
		}
	}
	return board.NoSquare
}
