package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/starkmate/starkmate/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA // outline of the armed square
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Border         color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	WhiteGlyph     color.RGBA
	BlackGlyph     color.RGBA
}

// Themes lists the named color schemes.
var Themes = map[string]*Theme{
	"starkmate": {
		LightSquare:    color.RGBA{255, 255, 255, 255},
		DarkSquare:     color.RGBA{0, 142, 144, 255}, // Teal
		SelectedSquare: color.RGBA{0, 93, 173, 191},
		LegalMoveColor: color.RGBA{0, 93, 173, 120},
		LastMoveColor:  color.RGBA{0, 93, 173, 50},
		CheckColor:     color.RGBA{220, 60, 60, 160},
		Border:         color.RGBA{0, 93, 173, 255},
		Background:     color.RGBA{17, 24, 39, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		WhiteGlyph:     color.RGBA{0, 93, 173, 255},
		BlackGlyph:     color.RGBA{51, 51, 51, 255},
	},
	"classic": {
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 220},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Border:         color.RGBA{90, 60, 40, 255},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		WhiteGlyph:     color.RGBA{250, 250, 250, 255},
		BlackGlyph:     color.RGBA{20, 20, 20, 255},
	},
}

// ThemeByName returns the named theme, or the starkmate theme.
func ThemeByName(name string) *Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["starkmate"]
}

// Renderer draws a board grid at an origin and square size given in logical pixels.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	originX    float64
	originY    float64
	squareSize float64
	scale      float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(sprites *SpriteManager, theme *Theme) *Renderer {
	return &Renderer{
		sprites: sprites,
		theme:   theme,
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetGeometry places the board and resizes the sprites to match.
func (r *Renderer) SetGeometry(originX, originY, width float64) {
	r.originX = originX
	r.originY = originY
	r.squareSize = width / 8
	r.sprites.SetSize(int(r.squareSize * r.scale))
}

// SetTheme switches the color scheme.
func (r *Renderer) SetTheme(t *Theme) {
	r.theme = t
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v float64) float32 {
	return float32(v * r.scale)
}

// DrawBoard draws the border and the 64 squares.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	width := r.squareSize * 8
	pad := 2.0
	vector.DrawFilledRect(screen, r.s(r.originX-pad), r.s(r.originY-pad), r.s(width+2*pad), r.s(width+2*pad), r.theme.Border, false)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := r.theme.DarkSquare
			if board.NewSquare(row, col).IsLight() {
				c = r.theme.LightSquare
			}
			x, y := r.SquareToScreen(board.NewSquare(row, col))
			vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
		}
	}
}

// DrawCoordinates draws file letters along the bottom edge and rank digits along the left edge.
func (r *Renderer) DrawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(r.squareSize * 0.18 * r.scale)
	if face == nil {
		return
	}
	inset := r.squareSize * 0.06

	for i := 0; i < 8; i++ {
		// Labels take the color of the opposite square so they stay readable.
		file := board.NewSquare(7, i)
		x, y := r.SquareToScreen(file)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(x+r.squareSize-inset))-face.Size*0.6, float64(r.s(y+r.squareSize-inset))-face.Size*1.1)
		op.ColorScale.ScaleWithColor(r.labelColor(file))
		text.Draw(screen, string(file.File()), face, op)

		rank := board.NewSquare(i, 0)
		x, y = r.SquareToScreen(rank)
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(x+inset)), float64(r.s(y+inset)))
		op.ColorScale.ScaleWithColor(r.labelColor(rank))
		text.Draw(screen, string(rank.Rank()), face, op)
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if sq.IsLight() {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

// DrawHighlights draws the last move, the armed square, and the legal targets of the armed piece.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Square, lastFrom, lastTo board.Square) {
	r.fillSquare(screen, lastFrom, r.theme.LastMoveColor)
	r.fillSquare(screen, lastTo, r.theme.LastMoveColor)

	if selected.IsValid() {
		x, y := r.SquareToScreen(selected)
		w := r.squareSize * 0.06
		vector.StrokeRect(screen, r.s(x+w/2), r.s(y+w/2), r.s(r.squareSize-w), r.s(r.squareSize-w), r.s(w), r.theme.SelectedSquare, false)
	}

	for _, sq := range targets {
		x, y := r.SquareToScreen(sq)
		cx := r.s(x + r.squareSize/2)
		cy := r.s(y + r.squareSize/2)
		vector.DrawFilledCircle(screen, cx, cy, r.s(r.squareSize*0.15), r.theme.LegalMoveColor, true)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.fillSquare(screen, kingSq, r.theme.CheckColor)
}

// fillSquare draws a colored overlay on a square.
func (r *Renderer) fillSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// DrawPieces draws every occupied cell, skipping the one being dragged.
func (r *Renderer) DrawPieces(screen *ebiten.Image, g board.Grid, dragFrom, selected board.Square, anims *AnimationManager) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			t := g[row][col]
			if t.IsEmpty() || sq == dragFrom {
				continue
			}
			x, y := r.SquareToScreen(sq)
			if anims != nil {
				x += anims.ShakeOffset(sq)
			}
			scale := 1.0
			if sq == selected {
				scale = 1.1
			}
			r.drawPiece(screen, t, x+r.squareSize/2, y+r.squareSize/2, scale, 1)
		}
	}
}

// DrawDraggedPiece draws the piece being dragged centered on the cursor, in logical coordinates.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, t board.Token, mouseX, mouseY int) {
	if t.IsEmpty() {
		return
	}
	r.drawPiece(screen, t, float64(mouseX), float64(mouseY), 1, 0.6)
}

// drawPiece draws a piece centered at cx, cy: the sprite when there is one, the letter glyph otherwise.
func (r *Renderer) drawPiece(screen *ebiten.Image, t board.Token, cx, cy, scale float64, alpha float32) {
	size := r.squareSize * scale
	if scale == 1 && r.sprites.DrawPieceAt(screen, t, float64(r.s(cx-size/2)), float64(r.s(cy-size/2)), alpha) {
		return
	}
	if scale != 1 {
		if sprite := r.sprites.Sprite(t); sprite != nil {
			op := &ebiten.DrawImageOptions{}
			f := scale / r.sprites.renderScale
			op.GeoM.Scale(f, f)
			op.GeoM.Translate(float64(r.s(cx-size/2)), float64(r.s(cy-size/2)))
			op.ColorScale.ScaleAlpha(alpha)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(sprite, op)
			return
		}
	}

	face := GetBoldFaceWithSize(size * 0.7 * r.scale)
	if face == nil {
		return
	}
	c := r.theme.BlackGlyph
	if t.Side() == board.White {
		c = r.theme.WhiteGlyph
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.s(cx)), float64(r.s(cy)))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, string(rune(t.Kind())), face, op)
}

// SquareToScreen converts a square to the logical coordinates of its top-left corner.
func (r *Renderer) SquareToScreen(sq board.Square) (float64, float64) {
	return r.originX + float64(sq.Col)*r.squareSize, r.originY + float64(sq.Row)*r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
