package interact

import (
	"testing"

	"github.com/starkmate/starkmate/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	from, to string
}

// recorder is an AttemptFunc that logs its calls and answers with accept.
type recorder struct {
	calls  []call
	accept bool
}

func (r *recorder) attempt(from, to board.Square) bool {
	r.calls = append(r.calls, call{from.String(), to.String()})
	return r.accept
}

func newStartTranslator(accept bool) (*Translator, *recorder) {
	g := board.StartGrid()
	rec := &recorder{accept: accept}
	return NewTranslator(&g, rec.attempt, nil), rec
}

func TestClickMoveClearsSelection(t *testing.T) {
	for _, accept := range []bool{true, false} {
		tr, rec := newStartTranslator(accept)

		require.Equal(t, Selected, tr.OnSquareActivated(6, 4)) // e2
		sel, ok := tr.Selected()
		require.True(t, ok)
		assert.Equal(t, "e2", sel.String())

		out := tr.OnSquareActivated(4, 4) // e4
		if accept {
			assert.Equal(t, Accepted, out)
		} else {
			assert.Equal(t, Rejected, out)
		}

		require.Equal(t, []call{{"e2", "e4"}}, rec.calls)
		_, ok = tr.Selected()
		assert.False(t, ok, "selection must clear regardless of result (accept=%v)", accept)
	}
}

func TestClickSameSquareDeselects(t *testing.T) {
	tr, rec := newStartTranslator(true)

	tr.OnSquareActivated(7, 6) // g1
	assert.Equal(t, Deselected, tr.OnSquareActivated(7, 6))

	_, ok := tr.Selected()
	assert.False(t, ok)
	assert.Empty(t, rec.calls)
}

func TestClickEmptySquareWithoutSelection(t *testing.T) {
	tr, rec := newStartTranslator(true)

	assert.Equal(t, Ignored, tr.OnSquareActivated(4, 4))
	_, ok := tr.Selected()
	assert.False(t, ok)
	assert.Empty(t, rec.calls)
}

func TestClickOntoOccupiedSquareAttempts(t *testing.T) {
	tr, rec := newStartTranslator(false)

	// a1 onto its own pawn on a2.
	tr.OnSquareActivated(7, 0)
	assert.Equal(t, Rejected, tr.OnSquareActivated(6, 0))
	assert.Equal(t, []call{{"a1", "a2"}}, rec.calls)
}

func TestClickOffBoardIgnored(t *testing.T) {
	tr, rec := newStartTranslator(true)

	tr.OnSquareActivated(6, 4)
	assert.Equal(t, Ignored, tr.OnSquareActivated(8, 0))
	assert.Equal(t, Ignored, tr.OnSquareActivated(-1, 3))

	sel, ok := tr.Selected()
	assert.True(t, ok)
	assert.Equal(t, "e2", sel.String())
	assert.Empty(t, rec.calls)
}

func TestDropWithoutDragStartIsNoop(t *testing.T) {
	tr, rec := newStartTranslator(true)

	assert.Equal(t, Ignored, tr.OnDropOnSquare(4, 4))
	assert.Empty(t, rec.calls)
}

func TestDragDrop(t *testing.T) {
	tr, rec := newStartTranslator(true)

	tr.OnDragStart(7, 6) // g1
	_, armed := tr.Selected()
	assert.False(t, armed, "drag start must not arm a selection")
	origin, ok := tr.DragOrigin()
	require.True(t, ok)
	assert.Equal(t, "g1", origin.String())

	assert.Equal(t, Accepted, tr.OnDropOnSquare(5, 5)) // f3
	assert.Equal(t, []call{{"g1", "f3"}}, rec.calls)

	// The payload is consumed by the drop.
	assert.Equal(t, Ignored, tr.OnDropOnSquare(5, 5))
	assert.Len(t, rec.calls, 1)
}

func TestAcceptedDropClearsSelection(t *testing.T) {
	tr, _ := newStartTranslator(true)

	tr.OnSquareActivated(6, 3) // arm d2
	tr.OnDragStart(6, 4)
	tr.OnDropOnSquare(4, 4)

	_, ok := tr.Selected()
	assert.False(t, ok)
}

func TestRejectedDropKeepsSelection(t *testing.T) {
	tr, rec := newStartTranslator(false)

	tr.OnSquareActivated(6, 3) // arm d2
	tr.OnDragStart(6, 4)
	assert.Equal(t, Rejected, tr.OnDropOnSquare(3, 4))
	assert.Equal(t, []call{{"e2", "e5"}}, rec.calls)

	sel, ok := tr.Selected()
	assert.True(t, ok)
	assert.Equal(t, "d2", sel.String())
}

func TestDragEndDiscardsPayload(t *testing.T) {
	tr, rec := newStartTranslator(true)

	tr.OnDragStart(6, 4)
	tr.OnDragEnd()
	assert.Equal(t, Ignored, tr.OnDropOnSquare(4, 4))
	assert.Empty(t, rec.calls)
}

func TestReset(t *testing.T) {
	tr, _ := newStartTranslator(true)

	tr.OnSquareActivated(6, 4)
	tr.OnDragStart(6, 3)
	tr.Reset()

	_, sel := tr.Selected()
	_, drag := tr.DragOrigin()
	assert.False(t, sel)
	assert.False(t, drag)
}

func TestNilAttemptRejects(t *testing.T) {
	g := board.StartGrid()
	tr := NewTranslator(&g, nil, nil)

	tr.OnSquareActivated(6, 4)
	assert.Equal(t, Rejected, tr.OnSquareActivated(4, 4))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "ignored", Ignored.String())
}
