package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Placement errors.
var (
	ErrRankCount    = errors.New("piece placement needs 8 ranks")
	ErrRankWidth    = errors.New("rank does not describe 8 files")
	ErrInvalidPiece = errors.New("invalid piece character")
	ErrInvalidDigit = errors.New("invalid empty-run digit")
)

// Position is either the Start sentinel or a FEN string led by its piece-placement field.
type Position string

// Start is the sentinel for the standard initial arrangement.
const Start Position = "start"

// StartFEN is the full FEN string of the standard initial arrangement.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Placement returns the piece-placement field: everything before the first space.
func (p Position) Placement() string {
	s := string(p)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// FEN returns p as a full six-field FEN string. A bare placement gets White to move,
// no castling rights, no en passant square and fresh move counters.
func (p Position) FEN() string {
	if p.IsStart() {
		return StartFEN
	}
	s := strings.TrimSpace(string(p))
	if !strings.ContainsRune(s, ' ') {
		return s + " w - - 0 1"
	}
	return s
}

// IsStart returns true if p is the sentinel.
func (p Position) IsStart() bool {
	return p == Start
}

// DeriveGrid converts a position into a grid. It never fails: malformed input yields
// an empty grid and the parse error is reported on log.
func DeriveGrid(p Position, log *zap.Logger) Grid {
	if p.IsStart() {
		return StartGrid()
	}

	g, err := ParsePlacement(p.Placement())
	if err != nil {
		if log != nil {
			log.Warn("falling back to empty board",
				zap.String("position", string(p)),
				zap.Error(err))
		}
		return Grid{}
	}
	return g
}

// ParsePlacement parses a FEN piece-placement field, rank 8 first.
func ParsePlacement(placement string) (Grid, error) {
	var g Grid

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrRankCount, len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]

			if c >= '0' && c <= '9' {
				n := int(c - '0')
				if n == 0 || col+n > 8 {
					return Grid{}, fmt.Errorf("%w: %q in rank %d", ErrInvalidDigit, c, 8-row)
				}
				col += n
				continue
			}

			t, err := TokenFromLetter(c)
			if err != nil {
				return Grid{}, fmt.Errorf("rank %d: %w", 8-row, err)
			}
			if col > 7 {
				return Grid{}, fmt.Errorf("%w: rank %d", ErrRankWidth, 8-row)
			}
			g[row][col] = t
			col++
		}

		if col != 8 {
			return Grid{}, fmt.Errorf("%w: rank %d has %d", ErrRankWidth, 8-row, col)
		}
	}

	return g, nil
}

// EncodePlacement writes the grid back as a piece-placement field with canonical empty runs.
func EncodePlacement(g Grid) string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			t := g[row][col]
			if t.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(t.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
