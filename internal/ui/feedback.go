package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/rules"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast is a transient message drawn above the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager keeps the most recent toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders the active toasts centered on centerX, in logical coordinates.
func (tm *ToastManager) Draw(screen *ebiten.Image, centerX, top float64) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	y := top * UIScale
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		// Fade in/out
		alpha := 1.0
		fadeTime := 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = math.Max(0, (duration-elapsed)/fadeTime)
		}

		var bg color.RGBA
		switch t.Type {
		case ToastWarning:
			bg = color.RGBA{180, 140, 20, 220}
		case ToastSuccess:
			bg = color.RGBA{50, 150, 50, 220}
		default:
			bg = color.RGBA{0, 93, 173, 220}
		}
		bg.A = uint8(float64(bg.A) * alpha)

		w, h := MeasureText(t.Message, face)
		padding := 12.0 * UIScale
		boxW := w + padding*2
		boxH := h + padding*2
		x := centerX*UIScale - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*UIScale
	}
}

// Len returns the number of active toasts.
func (tm *ToastManager) Len() int {
	return len(tm.toasts)
}

// ShakeAnimation jiggles the piece on a square.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation fades a colored overlay out of a square.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 6.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the current horizontal shake offset for a square.
func (am *AnimationManager) ShakeOffset(sq board.Square) float64 {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0
		}
		// Damped sine wave
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress)
	}
	return 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1.0 - progress))
		r.fillSquare(screen, f.Square, c)
	}
}

// FeedbackManager turns game events into toasts and animations.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes over the board and toasts above it.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer, centerX, top float64) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen, centerX, top)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Toasts returns the toast manager.
func (fm *FeedbackManager) Toasts() *ToastManager {
	return fm.toasts
}

// OnRejected marks a move the validator refused.
func (fm *FeedbackManager) OnRejected(from, to board.Square) {
	fm.toasts.Show("Illegal move "+from.String()+to.String(), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
}

// OnCheck announces a check.
func (fm *FeedbackManager) OnCheck() {
	fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(outcome rules.Outcome, method string) {
	var message string
	switch outcome {
	case rules.WhiteWon:
		message = method + "! White wins!"
	case rules.BlackWon:
		message = method + "! Black wins!"
	default:
		message = "Draw - " + method
	}
	fm.toasts.Show(message, ToastSuccess, 5*time.Second)
}

// OnInfo shows a short informational message.
func (fm *FeedbackManager) OnInfo(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}
