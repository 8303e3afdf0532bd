// Package shell drives a board over a line protocol, for scripting and for tests
// of the gesture pipeline without a window.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/chessboard"
	"github.com/starkmate/starkmate/internal/interact"
	"github.com/starkmate/starkmate/internal/layout"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/starkmate/starkmate/internal/textview"
	"go.uber.org/zap"
)

// Shell implements the protocol:
//
//	position start|<fen>      set the position directly
//	click <sq> | drag <sq> | drop <sq> | dragend
//	resize <container> <viewport>
//	show | fen | selected | history | outcome | new | undo | quit
type Shell struct {
	board     *chessboard.Board
	validator *rules.Validator
	out       io.Writer
	log       *zap.Logger
}

// New creates a shell around a fresh validator and board.
func New(v *rules.Validator, sizing layout.Sizing, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Shell{validator: v, out: out, log: log}
	s.board = chessboard.New(s.attempt, sizing, log)
	return s
}

// Board returns the board the shell drives.
func (s *Shell) Board() *chessboard.Board {
	return s.board
}

// attempt forwards a move to the validator and feeds back the new position.
func (s *Shell) attempt(from, to board.Square) bool {
	if !s.validator.Attempt(from, to) {
		return false
	}
	s.board.SetPosition(board.Position(s.validator.Position()))
	return true
}

// Run reads commands until EOF or "quit".
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if parts[0] == "quit" {
			return nil
		}
		if err := s.Exec(parts[0], parts[1:]); err != nil {
			s.reply("error %v", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command.
func (s *Shell) Exec(cmd string, args []string) error {
	switch cmd {
	case "position":
		return s.handlePosition(args)
	case "click":
		sq, err := squareArg(args)
		if err != nil {
			return err
		}
		s.reply("%s", s.board.Click(sq.Row, sq.Col))
	case "drag":
		sq, err := squareArg(args)
		if err != nil {
			return err
		}
		if s.board.DragStart(sq.Row, sq.Col) {
			s.reply("ok")
		} else {
			s.reply("%s", interact.Ignored)
		}
	case "drop":
		sq, err := squareArg(args)
		if err != nil {
			return err
		}
		s.reply("%s", s.board.Drop(sq.Row, sq.Col))
	case "dragend":
		s.board.DragEnd()
		s.reply("ok")
	case "resize":
		return s.handleResize(args)
	case "show":
		sel, _ := s.board.Selected()
		return textview.Render(s.out, s.board.Grid(), textview.Options{Selected: sel, Letters: true, NoColor: true})
	case "fen":
		s.reply("%s", board.EncodePlacement(s.board.Grid()))
	case "selected":
		if sq, ok := s.board.Selected(); ok {
			s.reply("%s", sq)
		} else {
			s.reply("-")
		}
	case "history":
		s.reply("%s", strings.Join(s.validator.History(), " "))
	case "outcome":
		s.reply("%s", s.validator.Outcome())
	case "new":
		s.validator.Reset()
		s.board.SetPosition(board.Start)
		s.reply("ok")
	case "undo":
		if !s.validator.Undo() {
			s.reply("%s", interact.Ignored)
			return nil
		}
		s.board.SetPosition(board.Position(s.validator.Position()))
		s.reply("ok")
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// handlePosition sets the board and validator to the same position. A bare placement is
// completed with White to move. Positions the validator cannot load leave both untouched.
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position needs start or a FEN")
	}

	if args[0] == string(board.Start) {
		s.validator.Reset()
		s.board.SetPosition(board.Start)
		s.reply("ok")
		return nil
	}

	pos := board.Position(strings.Join(args, " "))
	if err := s.validator.Load(pos.FEN()); err != nil {
		s.log.Debug("position rejected", zap.String("position", string(pos)), zap.Error(err))
		return err
	}
	s.board.SetPosition(pos)
	s.reply("ok")
	return nil
}

func (s *Shell) handleResize(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("resize needs <container> <viewport>")
	}
	container, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("container width: %w", err)
	}
	viewport, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("viewport width: %w", err)
	}
	s.reply("%s", strconv.FormatFloat(s.board.Resize(container, viewport), 'f', -1, 64))
	return nil
}

func squareArg(args []string) (board.Square, error) {
	if len(args) != 1 {
		return board.NoSquare, fmt.Errorf("expected one square")
	}
	return board.ParseSquare(args[0])
}

func (s *Shell) reply(format string, a ...any) {
	fmt.Fprintf(s.out, format+"\n", a...)
}
