package ui

import (
	"bytes"
	"embed"
	"image"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/starkmate/starkmate/internal/board"
	"go.uber.org/zap"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// PieceFS returns the asset root for piece images: dir when set, the embedded set otherwise.
func PieceFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(pieceAssets, "assets")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	return sub
}

// SpriteManager rasterizes piece images for the current square size.
// Pieces without a usable image have no sprite; the renderer draws their glyph instead.
type SpriteManager struct {
	assets      fs.FS
	icons       map[board.Token]*oksvg.SvgIcon
	pieces      map[board.Token]*ebiten.Image
	size        int     // Display size of a square in device pixels
	renderScale float64 // Render at higher resolution for quality
	log         *zap.Logger
}

// NewSpriteManager parses every piece image under assets.
func NewSpriteManager(assets fs.FS, log *zap.Logger) *SpriteManager {
	sm := &SpriteManager{
		assets:      assets,
		icons:       make(map[board.Token]*oksvg.SvgIcon),
		pieces:      make(map[board.Token]*ebiten.Image),
		renderScale: 2.0,
		log:         log,
	}
	sm.loadIcons()
	return sm
}

// loadIcons parses the SVG of each of the twelve pieces.
func (sm *SpriteManager) loadIcons() {
	for _, t := range board.AllTokens {
		data, err := fs.ReadFile(sm.assets, t.Asset())
		if err != nil {
			sm.log.Warn("piece image missing, using glyph", zap.String("asset", t.Asset()), zap.Error(err))
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			sm.log.Warn("piece image unreadable, using glyph", zap.String("asset", t.Asset()), zap.Error(err))
			continue
		}
		sm.icons[t] = icon
	}
}

// SetSize re-rasterizes the sprites when the square size changes.
func (sm *SpriteManager) SetSize(size int) {
	if size == sm.size || size <= 0 {
		return
	}
	sm.size = size

	for _, img := range sm.pieces {
		img.Deallocate()
	}
	clear(sm.pieces)

	renderSize := int(float64(size) * sm.renderScale)
	for t, icon := range sm.icons {
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[t] = ebiten.NewImageFromImage(rgba)
	}
}

// Sprite returns the image of a piece, or nil when the glyph fallback applies.
func (sm *SpriteManager) Sprite(t board.Token) *ebiten.Image {
	return sm.pieces[t]
}

// DrawPieceAt draws a piece sprite with its top-left corner at x, y. It reports false
// when the piece has no sprite.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, t board.Token, x, y float64, alpha float32) bool {
	sprite := sm.Sprite(t)
	if sprite == nil {
		return false
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
	return true
}

// Size returns the square size the sprites are rasterized for.
func (sm *SpriteManager) Size() int {
	return sm.size
}
