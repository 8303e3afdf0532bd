// Package rules is the move validator behind the board: it owns the game record and
// delegates legality to github.com/notnil/chess.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"github.com/starkmate/starkmate/internal/board"
	"go.uber.org/zap"
)

// Errors returned by the validator.
var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// DefaultPromotion is the piece a pawn becomes when the gesture does not say otherwise.
const DefaultPromotion = "q"

// Outcome is the game result in PGN notation: "*", "1-0", "0-1" or "1/2-1/2".
type Outcome string

const (
	NoOutcome Outcome = "*"
	WhiteWon  Outcome = "1-0"
	BlackWon  Outcome = "0-1"
	Draw      Outcome = "1/2-1/2"
)

// Option configures a Validator.
type Option func(*Validator)

// WithPromotion sets the default promotion piece ("q", "r", "b" or "n"). An empty string keeps DefaultPromotion.
func WithPromotion(p string) Option {
	return func(v *Validator) {
		if p != "" {
			v.promotion = strings.ToLower(p)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// Validator judges proposed moves and keeps the resulting position.
type Validator struct {
	game      *chess.Game
	startFEN  string
	promotion string
	history   []string
	log       *zap.Logger
}

// New creates a validator at the standard starting position.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		promotion: DefaultPromotion,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := ValidatePromotion(v.promotion); err != nil {
		return nil, err
	}
	v.Reset()
	return v, nil
}

// ValidatePromotion checks a promotion piece letter.
func ValidatePromotion(p string) error {
	switch p {
	case "q", "r", "b", "n":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPromotion, p)
}

// SetPromotion changes the piece pawns promote to on later moves.
func (v *Validator) SetPromotion(p string) error {
	p = strings.ToLower(p)
	if err := ValidatePromotion(p); err != nil {
		return err
	}
	v.promotion = p
	return nil
}

// Reset starts a new game from the standard position.
func (v *Validator) Reset() {
	v.game = chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	v.startFEN = v.game.Position().String()
	v.history = nil
}

// Load starts a game from a full FEN string.
func (v *Validator) Load(fen string) error {
	pos, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("load position: %w", err)
	}
	v.game = chess.NewGame(pos, chess.UseNotation(chess.UCINotation{}))
	v.startFEN = v.game.Position().String()
	v.history = nil
	return nil
}

// Restore loads a start position and replays moves in UCI notation.
func (v *Validator) Restore(fen string, moves []string) error {
	if fen == "" {
		v.Reset()
	} else if err := v.Load(fen); err != nil {
		return err
	}
	for _, m := range moves {
		if err := v.game.MoveStr(m); err != nil {
			return fmt.Errorf("replay %s: %w", m, err)
		}
		v.history = append(v.history, m)
	}
	return nil
}

// Attempt is the board's move callback: it reports whether source->target was played.
func (v *Validator) Attempt(source, target board.Square) bool {
	_, err := v.Apply(source, target)
	return err == nil
}

// Apply plays source->target and returns the move in UCI notation.
func (v *Validator) Apply(source, target board.Square) (string, error) {
	if !source.IsValid() || !target.IsValid() {
		return "", fmt.Errorf("%w: %s%s", ErrIllegalMove, source, target)
	}
	if v.game.Outcome() != chess.NoOutcome {
		return "", fmt.Errorf("%w: game is over (%s)", ErrIllegalMove, v.game.Outcome())
	}

	uci := source.String() + target.String()
	if v.isPromotion(source, target) {
		uci += v.promotion
	}

	if err := v.game.MoveStr(uci); err != nil {
		v.log.Debug("move rejected", zap.String("move", uci), zap.Error(err))
		return "", fmt.Errorf("%w: %s", ErrIllegalMove, uci)
	}

	v.history = append(v.history, uci)
	v.log.Debug("move played", zap.String("move", uci), zap.String("fen", v.Position()))
	return uci, nil
}

// Undo takes back the last move by replaying the record without it.
func (v *Validator) Undo() bool {
	if len(v.history) == 0 {
		return false
	}
	moves := v.history[:len(v.history)-1]
	if err := v.Restore(v.startFEN, append([]string(nil), moves...)); err != nil {
		v.log.Warn("undo failed", zap.Error(err))
		return false
	}
	return true
}

// isPromotion reports whether the piece on source is a pawn reaching its last rank.
func (v *Validator) isPromotion(source, target board.Square) bool {
	p := v.game.Position().Board().Piece(toChess(source))
	if p.Type() != chess.Pawn {
		return false
	}
	return (p.Color() == chess.White && target.Row == 0) || (p.Color() == chess.Black && target.Row == 7)
}

// Position returns the current position as a full FEN string.
func (v *Validator) Position() string {
	return v.game.Position().String()
}

// StartPosition returns the FEN the current record starts from.
func (v *Validator) StartPosition() string {
	return v.startFEN
}

// History returns the moves played since the start position, in UCI notation.
func (v *Validator) History() []string {
	return append([]string(nil), v.history...)
}

// Outcome returns the game result.
func (v *Validator) Outcome() Outcome {
	return Outcome(v.game.Outcome())
}

// Method describes how the game ended, e.g. "Checkmate".
func (v *Validator) Method() string {
	return v.game.Method().String()
}

// SideToMove returns the side whose turn it is.
func (v *Validator) SideToMove() board.Side {
	if v.game.Position().Turn() == chess.Black {
		return board.Black
	}
	return board.White
}

// LegalTargets lists the squares the piece on from may move to.
func (v *Validator) LegalTargets(from board.Square) []board.Square {
	if !from.IsValid() {
		return nil
	}
	src := toChess(from)

	var targets []board.Square
	seen := make(map[board.Square]bool)
	for _, m := range v.game.ValidMoves() {
		if m.S1() != src {
			continue
		}
		sq := fromChess(m.S2())
		if !seen[sq] {
			seen[sq] = true
			targets = append(targets, sq)
		}
	}
	return targets
}

// InCheckKing returns the square of the side-to-move's king if it is in check. It reads the
// current placement, so positions loaded in check report it before any move is made.
func (v *Validator) InCheckKing() (board.Square, bool) {
	g := board.DeriveGrid(board.Position(v.Position()), v.log)
	side := v.SideToMove()
	king := kingSquare(&g, side)
	if !king.IsValid() {
		return board.NoSquare, false
	}
	other := board.White
	if side == board.White {
		other = board.Black
	}
	if !attacked(&g, king, other) {
		return board.NoSquare, false
	}
	return king, true
}

// toChess converts a grid square to the library's A1=0 numbering.
func toChess(sq board.Square) chess.Square {
	return chess.Square((7-sq.Row)*8 + sq.Col)
}

func fromChess(sq chess.Square) board.Square {
	return board.NewSquare(7-int(sq.Rank()), int(sq.File()))
}
