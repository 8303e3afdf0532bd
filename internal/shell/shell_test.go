package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/starkmate/starkmate/internal/layout"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script string) []string {
	t.Helper()
	v, err := rules.New()
	require.NoError(t, err)

	var out bytes.Buffer
	sh := New(v, layout.DefaultSizing(), &out, nil)
	require.NoError(t, sh.Run(strings.NewReader(script)))
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestClickFlow(t *testing.T) {
	got := run(t, `
click e2
selected
click e4
selected
fen
history
`)
	assert.Equal(t, []string{
		"selected",
		"e2",
		"accepted",
		"-",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR",
		"e2e4",
	}, got)
}

func TestRejectedAndDeselect(t *testing.T) {
	got := run(t, `
click e2
click e2
click e2
click e5
fen
`)
	assert.Equal(t, []string{
		"selected",
		"deselected",
		"selected",
		"rejected",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
	}, got)
}

func TestDragFlow(t *testing.T) {
	got := run(t, `
drop f3
drag e4
drag g1
drop f3
drop f3
history
`)
	assert.Equal(t, []string{"ignored", "ignored", "ok", "accepted", "ignored", "g1f3"}, got)
}

func TestPositionAndResize(t *testing.T) {
	got := run(t, `
position 8/8/8/8/8/8/8/4K2k w - - 0 1
fen
resize 300 500
resize 800 1200
`)
	assert.Equal(t, []string{
		"ok",
		"8/8/8/8/8/8/8/4K2k",
		"285",
		"560",
	}, got)
}

func TestPlacementOnlyPositionDrivesValidator(t *testing.T) {
	got := run(t, `
position 4k3/8/8/8/8/8/8/4K1N1
click g1
click f3
fen
history
`)
	assert.Equal(t, []string{
		"ok",
		"selected",
		"accepted",
		"4k3/8/8/8/8/5N2/8/4K3",
		"g1f3",
	}, got)
}

func TestUnloadablePositionKeepsPrevious(t *testing.T) {
	got := run(t, `
position 4k3/8/8/8/8/8/8/4K1N1
position rubbish
fen
click g1
click f3
fen
`)
	require.Len(t, got, 6)
	assert.Equal(t, "ok", got[0])
	assert.True(t, strings.HasPrefix(got[1], "error "), got[1])
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K1N1", got[2])
	assert.Equal(t, []string{"selected", "accepted", "4k3/8/8/8/8/5N2/8/4K3"}, got[3:])
}

func TestUndoNewAndErrors(t *testing.T) {
	got := run(t, `
undo
click e2
click e4
undo
fen
bogus
click z9
new
quit
fen
`)
	assert.Equal(t, []string{
		"ignored",
		"selected",
		"accepted",
		"ok",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		`error unknown command "bogus"`,
		`error invalid square: "z9"`,
		"ok",
	}, got)
}

func TestShow(t *testing.T) {
	got := run(t, "click e2\nshow\n")
	require.Len(t, got, 10)
	assert.Equal(t, "selected", got[0])
	assert.Contains(t, got[7], "[P]")
}
