package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a8", NewSquare(0, 0).String())
	assert.Equal(t, "h1", NewSquare(7, 7).String())
	assert.Equal(t, "e4", NewSquare(4, 4).String())
	assert.Equal(t, "e2", Algebraic(6, 4))
	assert.Equal(t, "-", NoSquare.String())
	assert.Equal(t, "-", NewSquare(8, 0).String())
}

func TestSquareRoundTrip(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := NewSquare(row, col)
			back, err := ParseSquare(sq.String())
			require.NoError(t, err)
			assert.Equal(t, sq, back)
		}
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e44", "i1", "a0", "a9", "E4", "4e"} {
		sq, err := ParseSquare(s)
		assert.ErrorIs(t, err, ErrInvalidSquare, s)
		assert.Equal(t, NoSquare, sq)
	}
}

func TestSquareColour(t *testing.T) {
	assert.True(t, NewSquare(0, 0).IsLight())  // a8
	assert.False(t, NewSquare(7, 0).IsLight()) // a1
	assert.True(t, NewSquare(7, 7).IsLight())  // h1
}

func TestTokenTable(t *testing.T) {
	require.Len(t, AllTokens, 12)

	seen := map[string]bool{}
	for _, tok := range AllTokens {
		require.True(t, tok.IsValid(), tok)
		assert.NotEmpty(t, tok.Asset())
		assert.NotEmpty(t, tok.Glyph())
		assert.False(t, seen[tok.Asset()], "duplicate asset %s", tok.Asset())
		seen[tok.Asset()] = true

		back, err := TokenFromLetter(tok.Letter())
		require.NoError(t, err)
		assert.Equal(t, tok, back)
	}

	assert.False(t, Empty.IsValid())
	assert.Equal(t, byte(0), Empty.Letter())
	assert.Equal(t, White, Token("wQ").Side())
	assert.Equal(t, Queen, Token("wQ").Kind())
}

func TestTokenFromLetterInvalid(t *testing.T) {
	for _, c := range []byte{'x', 'X', '-', ' ', '0'} {
		_, err := TokenFromLetter(c)
		assert.ErrorIs(t, err, ErrInvalidPiece, string(c))
	}
}
