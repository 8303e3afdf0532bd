package board

import "fmt"

// Side is the colour of a piece, encoded as the first token character.
type Side byte

const (
	White Side = 'w'
	Black Side = 'b'
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoSide"
	}
}

// Kind is a piece kind, encoded as the upper-case FEN letter.
type Kind byte

const (
	Pawn   Kind = 'P'
	Knight Kind = 'N'
	Bishop Kind = 'B'
	Rook   Kind = 'R'
	Queen  Kind = 'Q'
	King   Kind = 'K'
)

// String returns the piece kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Token is a two-character piece code such as "wP" or "bK". The empty token is an unoccupied cell.
type Token string

// Empty is the token of an unoccupied cell.
const Empty Token = ""

// NewToken combines a side and a kind.
func NewToken(s Side, k Kind) Token {
	return Token([]byte{byte(s), byte(k)})
}

// IsEmpty returns true for an unoccupied cell.
func (t Token) IsEmpty() bool {
	return t == Empty
}

// Side returns the token's side.
func (t Token) Side() Side {
	if len(t) != 2 {
		return 0
	}
	return Side(t[0])
}

// Kind returns the token's piece kind.
func (t Token) Kind() Kind {
	if len(t) != 2 {
		return 0
	}
	return Kind(t[1])
}

// pieceInfo holds the presentation data for one of the twelve pieces.
type pieceInfo struct {
	asset  string
	glyph  string
	letter byte
}

// pieces maps every token of the {side}x{kind} product to its asset, glyph, and FEN letter.
var pieces = map[Token]pieceInfo{
	"wP": {"pieces/wP.svg", "♙", 'P'},
	"wN": {"pieces/wN.svg", "♘", 'N'},
	"wB": {"pieces/wB.svg", "♗", 'B'},
	"wR": {"pieces/wR.svg", "♖", 'R'},
	"wQ": {"pieces/wQ.svg", "♕", 'Q'},
	"wK": {"pieces/wK.svg", "♔", 'K'},
	"bP": {"pieces/bP.svg", "♟", 'p'},
	"bN": {"pieces/bN.svg", "♞", 'n'},
	"bB": {"pieces/bB.svg", "♝", 'b'},
	"bR": {"pieces/bR.svg", "♜", 'r'},
	"bQ": {"pieces/bQ.svg", "♛", 'q'},
	"bK": {"pieces/bK.svg", "♚", 'k'},
}

// AllTokens lists the twelve piece tokens, white first.
var AllTokens = []Token{"wP", "wN", "wB", "wR", "wQ", "wK", "bP", "bN", "bB", "bR", "bQ", "bK"}

// IsValid returns true if the token names one of the twelve pieces.
func (t Token) IsValid() bool {
	_, ok := pieces[t]
	return ok
}

// Asset returns the asset path of the piece image, relative to the asset root.
func (t Token) Asset() string {
	return pieces[t].asset
}

// Glyph returns the Unicode chess symbol used when no image is available.
func (t Token) Glyph() string {
	return pieces[t].glyph
}

// Letter returns the FEN character for the piece, or 0 for an empty or unknown token.
func (t Token) Letter() byte {
	return pieces[t].letter
}

// TokenFromLetter converts a FEN piece letter to a token.
// Upper case is white, anything else is black; the kind is the upper-cased letter.
func TokenFromLetter(c byte) (Token, error) {
	side := Black
	if c >= 'A' && c <= 'Z' {
		side = White
	}
	kind := c
	if kind >= 'a' && kind <= 'z' {
		kind -= 'a' - 'A'
	}

	t := NewToken(side, Kind(kind))
	if !t.IsValid() {
		return Empty, fmt.Errorf("%w: %q", ErrInvalidPiece, c)
	}
	return t, nil
}
