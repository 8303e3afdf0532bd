// Package textview prints a board grid as coloured text.
package textview

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/starkmate/starkmate/internal/board"
)

// Options controls the text rendering.
type Options struct {
	Selected board.Square // highlighted cell, board.NoSquare for none
	Letters  bool         // FEN letters instead of chess glyphs
	NoColor  bool
}

var (
	lightSq  = color.New(color.BgWhite, color.FgBlack)
	darkSq   = color.New(color.BgCyan, color.FgBlack)
	selectSq = color.New(color.BgBlue, color.FgHiWhite)
	label    = color.New(color.FgHiBlack)
)

// Render writes the grid with rank labels on the left and file labels underneath.
func Render(w io.Writer, g board.Grid, o Options) error {
	var sb strings.Builder

	paint := func(c *color.Color, s string) string {
		if o.NoColor {
			return s
		}
		return c.Sprint(s)
	}

	for row := 0; row < 8; row++ {
		sb.WriteString(paint(label, string(rune('8'-row))))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			cell := " " + symbol(g[row][col], o.Letters) + " "

			switch {
			case sq == o.Selected:
				if o.NoColor {
					cell = "[" + symbol(g[row][col], o.Letters) + "]"
				}
				sb.WriteString(paint(selectSq, cell))
			case sq.IsLight():
				sb.WriteString(paint(lightSq, cell))
			default:
				sb.WriteString(paint(darkSq, cell))
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for col := 0; col < 8; col++ {
		sb.WriteString(paint(label, " "+string(rune('a'+col))+" "))
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// symbol returns the cell text: a glyph, a FEN letter, or '.' for an empty cell.
func symbol(t board.Token, letters bool) string {
	if t.IsEmpty() {
		return "."
	}
	if letters {
		return string(t.Letter())
	}
	return t.Glyph()
}
