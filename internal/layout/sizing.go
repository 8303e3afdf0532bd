// Package layout computes the on-screen board width from container and viewport sizes.
package layout

import "math"

// Default sizing constants, in pixels.
const (
	DefaultMaxWidth    = 560.0
	DefaultMinWidth    = 320.0
	DefaultBreakpoint  = 768.0
	DefaultMobileRatio = 0.95
)

// Sizing holds the design constants of the board.
type Sizing struct {
	MaxWidth    float64 // largest board the layout ever asks for
	MinWidth    float64 // floor, capped at the container width
	Breakpoint  float64 // viewports narrower than this use the mobile rule
	MobileRatio float64 // share of the container the board takes on narrow viewports
}

// DefaultSizing returns the stock constants.
func DefaultSizing() Sizing {
	return Sizing{
		MaxWidth:    DefaultMaxWidth,
		MinWidth:    DefaultMinWidth,
		Breakpoint:  DefaultBreakpoint,
		MobileRatio: DefaultMobileRatio,
	}
}

// WithWidth returns s with MaxWidth replaced by a caller-supplied width. Non-positive widths keep the default.
func (s Sizing) WithWidth(width float64) Sizing {
	if width > 0 {
		s.MaxWidth = width
	}
	return s
}

// RecomputeWidth returns the board width for a container and viewport. It is a pure function of its inputs.
func (s Sizing) RecomputeWidth(containerWidth, viewportWidth float64) float64 {
	if viewportWidth < s.Breakpoint {
		share := containerWidth * s.MobileRatio
		// The floor never exceeds the share of the container the board may take.
		minSize := math.Min(s.MinWidth, share)
		return math.Max(minSize, math.Min(share, s.MaxWidth))
	}
	return math.Min(containerWidth, s.MaxWidth)
}

// RecomputeWidth applies the default sizing constants.
func RecomputeWidth(containerWidth, viewportWidth float64) float64 {
	return DefaultSizing().RecomputeWidth(containerWidth, viewportWidth)
}

// Controller owns the current board width of one board instance.
type Controller struct {
	sizing Sizing
	width  float64
}

// NewController creates a controller. The initial width is the maximum until the first Resize.
func NewController(s Sizing) *Controller {
	return &Controller{sizing: s, width: s.MaxWidth}
}

// Resize recomputes the width for new container/viewport sizes and returns it.
// Results that are not positive are dropped and the previous width kept.
func (c *Controller) Resize(containerWidth, viewportWidth float64) float64 {
	if w := c.sizing.RecomputeWidth(containerWidth, viewportWidth); w > 0 {
		c.width = w
	}
	return c.width
}

// Width returns the current board width.
func (c *Controller) Width() float64 {
	return c.width
}

// SquareSize returns the width of one cell.
func (c *Controller) SquareSize() float64 {
	return c.width / 8
}

// Sizing returns the active constants.
func (c *Controller) Sizing() Sizing {
	return c.sizing
}

// SetSizing swaps the constants, e.g. after a config reload. Callers should Resize afterwards.
func (c *Controller) SetSizing(s Sizing) {
	c.sizing = s
}

// CellAt maps a point relative to the board's top-left corner to grid indices.
// ok is false when the point lies outside the board.
func (c *Controller) CellAt(x, y float64) (row, col int, ok bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.width {
		return 0, 0, false
	}
	sq := c.SquareSize()
	row = int(y / sq)
	col = int(x / sq)
	if row > 7 {
		row = 7
	}
	if col > 7 {
		col = 7
	}
	return row, col, true
}
