package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInCheckKingFromLoadedPosition(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		king  string
		check bool
	}{
		{"rook on the rank", "4k3/8/8/8/8/8/8/4K2r w - - 0 1", "e1", true},
		{"blocked rook", "4k3/8/8/8/8/8/8/4KN1r w - - 0 1", "", false},
		{"knight", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", "e1", true},
		{"black pawn attacks downwards", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", "e1", true},
		{"pawn straight ahead gives no check", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", "", false},
		{"white pawn attacks upwards", "4k3/3P4/8/8/8/8/8/4K3 b - - 0 1", "e8", true},
		{"bishop on the diagonal", "4k3/8/8/b7/8/8/8/4K3 w - - 0 1", "e1", true},
		{"own piece on the line", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", "", false},
		{"queen checks the side to move only", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "", false},
		{"queen on the file", "4k3/8/8/8/8/8/8/Q3K3 b - - 0 1", "", false},
		{"queen from below", "4k3/8/8/8/4Q3/8/8/4K3 b - - 0 1", "e8", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New()
			require.NoError(t, err)
			require.NoError(t, v.Load(tt.fen))

			king, ok := v.InCheckKing()
			assert.Equal(t, tt.check, ok)
			if tt.check {
				assert.Equal(t, tt.king, king.String())
			}
		})
	}
}

func TestInCheckKingStartPosition(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	_, ok := v.InCheckKing()
	assert.False(t, ok)
}
