// Package chessboard composes one board instance: its position, derived grid,
// gesture translator, and width controller.
package chessboard

import (
	"github.com/google/uuid"
	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/interact"
	"github.com/starkmate/starkmate/internal/layout"
	"go.uber.org/zap"
)

// Board is a single board component. It never mutates the position it is given;
// callers feed a fresh position after each accepted move.
type Board struct {
	id       string
	position board.Position
	grid     board.Grid
	tr       *interact.Translator
	size     *layout.Controller
	log      *zap.Logger
}

// New creates a board at the initial position.
func New(attempt interact.AttemptFunc, sizing layout.Sizing, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Board{
		id:   uuid.NewString(),
		size: layout.NewController(sizing),
		log:  log,
	}
	b.tr = interact.NewTranslator(&b.grid, attempt, log)
	b.SetPosition(board.Start)
	return b
}

// ID returns the instance identifier.
func (b *Board) ID() string {
	return b.id
}

// SetID replaces the identifier, e.g. when restoring a saved board.
func (b *Board) SetID(id string) {
	if id != "" {
		b.id = id
	}
}

// SetPosition re-derives the grid from p and drops any selection or drag in progress.
func (b *Board) SetPosition(p board.Position) {
	b.position = p
	b.grid = board.DeriveGrid(p, b.log.With(zap.String("board", b.id)))
	b.tr.Reset()
}

// Position returns the position the grid was derived from.
func (b *Board) Position() board.Position {
	return b.position
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() board.Grid {
	return b.grid
}

// Selected returns the armed square, if any.
func (b *Board) Selected() (board.Square, bool) {
	return b.tr.Selected()
}

// DragOrigin returns the square a drag started from, if a drag is in progress.
func (b *Board) DragOrigin() (board.Square, bool) {
	return b.tr.DragOrigin()
}

// Click activates a cell.
func (b *Board) Click(row, col int) interact.Outcome {
	return b.tr.OnSquareActivated(row, col)
}

// DragStart begins a drag from a cell. Empty cells are not draggable.
func (b *Board) DragStart(row, col int) bool {
	if !b.grid.IsOccupied(board.NewSquare(row, col)) {
		return false
	}
	b.tr.OnDragStart(row, col)
	return true
}

// Drop completes a drag on a cell.
func (b *Board) Drop(row, col int) interact.Outcome {
	return b.tr.OnDropOnSquare(row, col)
}

// DragEnd discards a drag that was not dropped on the board.
func (b *Board) DragEnd() {
	b.tr.OnDragEnd()
}

// Mount performs the initial width computation.
func (b *Board) Mount(containerWidth, viewportWidth float64) float64 {
	return b.Resize(containerWidth, viewportWidth)
}

// Resize recomputes the width after a container or viewport change.
func (b *Board) Resize(containerWidth, viewportWidth float64) float64 {
	return b.size.Resize(containerWidth, viewportWidth)
}

// SetSizing swaps the sizing constants.
func (b *Board) SetSizing(s layout.Sizing) {
	b.size.SetSizing(s)
}

// Width returns the current board width in pixels.
func (b *Board) Width() float64 {
	return b.size.Width()
}

// SquareSize returns the width of one cell in pixels.
func (b *Board) SquareSize() float64 {
	return b.size.SquareSize()
}

// CellAt maps a point relative to the board origin to a cell.
func (b *Board) CellAt(x, y float64) (row, col int, ok bool) {
	return b.size.CellAt(x, y)
}
