package chessboard

import (
	"testing"

	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/interact"
	"github.com/starkmate/starkmate/internal/layout"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGame wires a board to a real validator the way the applications do.
func newGame(t *testing.T) (*Board, *rules.Validator) {
	t.Helper()
	v, err := rules.New()
	require.NoError(t, err)

	var b *Board
	b = New(func(from, to board.Square) bool {
		if !v.Attempt(from, to) {
			return false
		}
		b.SetPosition(board.Position(v.Position()))
		return true
	}, layout.DefaultSizing(), nil)
	return b, v
}

func TestNewBoardStartsAtStart(t *testing.T) {
	b, _ := newGame(t)
	assert.Equal(t, board.Start, b.Position())
	assert.Equal(t, board.StartGrid(), b.Grid())
	assert.NotEmpty(t, b.ID())
}

func TestClickMoveRederives(t *testing.T) {
	b, _ := newGame(t)

	require.Equal(t, interact.Selected, b.Click(6, 4))
	require.Equal(t, interact.Accepted, b.Click(4, 4))

	g := b.Grid()
	assert.Equal(t, board.Token("wP"), g.At(board.NewSquare(4, 4)))
	assert.True(t, g.At(board.NewSquare(6, 4)).IsEmpty())
	_, ok := b.Selected()
	assert.False(t, ok)
}

func TestRejectedMoveLeavesGrid(t *testing.T) {
	b, _ := newGame(t)
	before := b.Grid()

	b.Click(6, 4)
	assert.Equal(t, interact.Rejected, b.Click(3, 4)) // e2-e5
	assert.Equal(t, before, b.Grid())
	assert.Equal(t, board.Start, b.Position())
}

func TestDragMove(t *testing.T) {
	b, _ := newGame(t)

	assert.False(t, b.DragStart(4, 4), "empty cells are not draggable")
	require.True(t, b.DragStart(7, 6))
	assert.Equal(t, interact.Accepted, b.Drop(5, 5))
	assert.Equal(t, board.Token("wN"), b.Grid()[5][5])
}

func TestSetPositionClearsSelection(t *testing.T) {
	b, _ := newGame(t)

	b.Click(6, 4)
	b.DragStart(6, 3)
	b.SetPosition("8/8/8/8/8/8/8/4K3")

	_, sel := b.Selected()
	_, drag := b.DragOrigin()
	assert.False(t, sel)
	assert.False(t, drag)
	assert.Equal(t, 1, func() int { g := b.Grid(); return g.Count() }())
}

func TestMalformedPositionRendersEmpty(t *testing.T) {
	b, _ := newGame(t)
	b.SetPosition("not/a/fen")
	g := b.Grid()
	assert.True(t, g.IsEmpty())
}

func TestSizing(t *testing.T) {
	b := New(nil, layout.DefaultSizing().WithWidth(600), nil)
	assert.Equal(t, 600.0, b.Width())

	assert.InDelta(t, 285, b.Mount(300, 500), 1e-9)
	assert.InDelta(t, 600, b.Resize(800, 1200), 1e-9)
	assert.InDelta(t, 75, b.SquareSize(), 1e-9)

	row, col, ok := b.CellAt(599, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 7, col)
}

func TestSetID(t *testing.T) {
	b := New(nil, layout.DefaultSizing(), nil)
	b.SetID("saved")
	assert.Equal(t, "saved", b.ID())
	b.SetID("")
	assert.Equal(t, "saved", b.ID())
}
