// Package interact turns pointer gestures over board cells into move requests.
package interact

import (
	"github.com/starkmate/starkmate/internal/board"
	"go.uber.org/zap"
)

// AttemptFunc asks the move validator to play source->target and reports whether it accepted.
type AttemptFunc func(source, target board.Square) bool

// Outcome describes what a gesture did.
type Outcome int

const (
	Ignored  Outcome = iota // nothing happened
	Selected                // a square was armed
	Deselected
	Accepted // the validator accepted a move
	Rejected // the validator refused a move
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Translator holds the selection state and drag payload of one board.
// It never judges legality itself: the AttemptFunc result is authoritative.
type Translator struct {
	grid     *board.Grid
	attempt  AttemptFunc
	log      *zap.Logger
	selected board.Square
	dragFrom board.Square
}

// NewTranslator creates a translator reading occupancy from grid.
func NewTranslator(grid *board.Grid, attempt AttemptFunc, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{
		grid:     grid,
		attempt:  attempt,
		log:      log,
		selected: board.NoSquare,
		dragFrom: board.NoSquare,
	}
}

// Selected returns the armed square, if any.
func (t *Translator) Selected() (board.Square, bool) {
	return t.selected, t.selected != board.NoSquare
}

// DragOrigin returns the origin recorded by the last drag start, if any.
func (t *Translator) DragOrigin() (board.Square, bool) {
	return t.dragFrom, t.dragFrom != board.NoSquare
}

// ClearSelection disarms the selected square.
func (t *Translator) ClearSelection() {
	t.selected = board.NoSquare
}

// Reset drops both the selection and any drag payload. Called when a new position arrives.
func (t *Translator) Reset() {
	t.selected = board.NoSquare
	t.dragFrom = board.NoSquare
}

// OnSquareActivated handles a click or tap on a cell.
func (t *Translator) OnSquareActivated(row, col int) Outcome {
	sq := board.NewSquare(row, col)
	if !sq.IsValid() {
		return Ignored
	}

	if t.selected == board.NoSquare {
		if t.grid.IsOccupied(sq) {
			t.selected = sq
			return Selected
		}
		return Ignored
	}

	if t.selected == sq {
		t.selected = board.NoSquare
		return Deselected
	}

	source := t.selected
	ok := t.request(source, sq)
	t.selected = board.NoSquare
	if ok {
		return Accepted
	}
	return Rejected
}

// OnDragStart records the origin cell in the drag payload.
func (t *Translator) OnDragStart(row, col int) {
	sq := board.NewSquare(row, col)
	if !sq.IsValid() {
		return
	}
	t.dragFrom = sq
}

// OnDragEnd discards the drag payload.
func (t *Translator) OnDragEnd() {
	t.dragFrom = board.NoSquare
}

// OnDropOnSquare completes a drag. Without a recorded origin it is a no-op.
func (t *Translator) OnDropOnSquare(row, col int) Outcome {
	target := board.NewSquare(row, col)
	if t.dragFrom == board.NoSquare || !target.IsValid() {
		return Ignored
	}

	source := t.dragFrom
	t.dragFrom = board.NoSquare

	if !t.request(source, target) {
		return Rejected
	}
	t.selected = board.NoSquare
	return Accepted
}

func (t *Translator) request(source, target board.Square) bool {
	if t.attempt == nil {
		return false
	}
	ok := t.attempt(source, target)
	t.log.Debug("move attempt",
		zap.Stringer("from", source),
		zap.Stringer("to", target),
		zap.Bool("accepted", ok))
	return ok
}
