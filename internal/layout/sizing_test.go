package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeWidth(t *testing.T) {
	tests := []struct {
		name                string
		container, viewport float64
		want                float64
	}{
		{"mobile narrow container", 300, 500, 285},
		{"desktop wide container", 800, 1200, 560},
		{"desktop narrow container", 400, 1024, 400},
		{"mobile wide container", 700, 760, 560},
		{"mobile tiny container", 200, 300, 190},
		{"breakpoint is desktop", 600, 768, 560},
		{"just under breakpoint", 500, 767, 475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RecomputeWidth(tt.container, tt.viewport), 1e-9)
		})
	}
}

func TestRecomputeWidthIdempotent(t *testing.T) {
	s := DefaultSizing()
	for _, pair := range [][2]float64{{300, 500}, {800, 1200}, {333, 700}} {
		first := s.RecomputeWidth(pair[0], pair[1])
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, s.RecomputeWidth(pair[0], pair[1]))
		}
	}
}

func TestWidthOverride(t *testing.T) {
	s := DefaultSizing().WithWidth(600)
	assert.InDelta(t, 600, s.RecomputeWidth(800, 1200), 1e-9)

	// An override below the floor is lifted to the floor on narrow viewports.
	small := DefaultSizing().WithWidth(200)
	assert.InDelta(t, 320, small.RecomputeWidth(700, 500), 1e-9)
	assert.InDelta(t, 285, small.RecomputeWidth(300, 500), 1e-9)
	assert.InDelta(t, 200, small.RecomputeWidth(700, 1000), 1e-9)

	assert.Equal(t, DefaultMaxWidth, DefaultSizing().WithWidth(0).MaxWidth)
}

func TestController(t *testing.T) {
	c := NewController(DefaultSizing())
	assert.Equal(t, DefaultMaxWidth, c.Width())

	assert.InDelta(t, 285, c.Resize(300, 500), 1e-9)
	assert.InDelta(t, 285.0/8, c.SquareSize(), 1e-9)

	// A zero-width container keeps the previous width.
	assert.InDelta(t, 285, c.Resize(0, 500), 1e-9)
}

func TestCellAt(t *testing.T) {
	c := NewController(DefaultSizing())
	c.Resize(800, 1200) // 560, 70px squares

	row, col, ok := c.CellAt(0, 0)
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{row, col})

	row, col, ok = c.CellAt(559.9, 559.9)
	assert.True(t, ok)
	assert.Equal(t, [2]int{7, 7}, [2]int{row, col})

	row, col, ok = c.CellAt(4*70+1, 6*70+1)
	assert.True(t, ok)
	assert.Equal(t, [2]int{6, 4}, [2]int{row, col})

	_, _, ok = c.CellAt(560, 10)
	assert.False(t, ok)
	_, _, ok = c.CellAt(-1, 10)
	assert.False(t, ok)
}
