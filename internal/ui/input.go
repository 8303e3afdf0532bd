package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler merges the left mouse button and the first touch into one pointer.
type InputHandler struct {
	pointerX, pointerY int // Logical coordinates (unscaled)
	justPressed        bool
	justReleased       bool
	pressed            bool

	touchID  ebiten.TouchID
	touching bool
	touchBuf []ebiten.TouchID
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update updates the pointer state. Call this once per frame.
func (ih *InputHandler) Update() {
	scale := UIScale
	if scale < 1.0 {
		scale = 1.0
	}

	ih.justPressed = false
	ih.justReleased = false

	if ih.updateTouch(scale) {
		return
	}

	rawX, rawY := ebiten.CursorPosition()
	ih.pointerX = int(float64(rawX) / scale)
	ih.pointerY = int(float64(rawY) / scale)
	ih.justPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.justReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// updateTouch follows a single touch. It reports whether touch input drove this frame.
func (ih *InputHandler) updateTouch(scale float64) bool {
	if !ih.touching {
		ih.touchBuf = inpututil.AppendJustPressedTouchIDs(ih.touchBuf[:0])
		if len(ih.touchBuf) == 0 {
			return false
		}
		ih.touchID = ih.touchBuf[0]
		ih.touching = true
		ih.justPressed = true
	}

	if inpututil.IsTouchJustReleased(ih.touchID) {
		// The last known position stays as the release point.
		ih.touching = false
		ih.justReleased = true
		ih.pressed = false
		return true
	}

	x, y := ebiten.TouchPosition(ih.touchID)
	ih.pointerX = int(float64(x) / scale)
	ih.pointerY = int(float64(y) / scale)
	ih.pressed = true
	return true
}

// MousePosition returns the pointer position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.pointerX, ih.pointerY
}

// IsLeftJustPressed returns true if the pointer went down this frame.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.justPressed
}

// IsLeftJustReleased returns true if the pointer went up this frame.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.justReleased
}

// IsLeftPressed returns true while the pointer is down.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.pressed
}

// IsKeyJustPressed returns true if the specified key was just pressed.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
