package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/chessboard"
	"github.com/starkmate/starkmate/internal/config"
	"github.com/starkmate/starkmate/internal/interact"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/starkmate/starkmate/internal/storage"
	"go.uber.org/zap"
)

// UIScale is the global HiDPI scale factor, set by App.Layout.
var UIScale = 1.0

const (
	boardMargin = 16.0 // gap between the board and the window edge
	toastTop    = 12.0
)

// App is the desktop window: one board driven by the rules validator.
// It implements ebiten.Game.
type App struct {
	cfg   *config.Config
	store *storage.Storage // nil when persistence is disabled
	prefs *storage.Preferences
	log   *zap.Logger

	validator *rules.Validator
	board     *chessboard.Board

	renderer *Renderer
	input    *InputHandler
	feedback *FeedbackManager

	// Pointer gesture in progress
	pressRow, pressCol int
	pressOnBoard       bool
	dragging           bool

	targets  []board.Square
	lastFrom board.Square
	lastTo   board.Square

	started  time.Time
	recorded bool

	reload chan *config.Config

	originX, originY float64
	scale            float64
}

// NewApp builds the window state, restoring the last saved game from store when there is one.
// Settings cfg leaves unset come from the stored preferences.
func NewApp(cfg *config.Config, store *storage.Storage, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		cfg:      cfg,
		store:    store,
		log:      log,
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(),
		lastFrom: board.NoSquare,
		lastTo:   board.NoSquare,
		started:  time.Now(),
		reload:   make(chan *config.Config, 1),
		scale:    1.0,
	}
	a.loadPreferences()
	eff := a.settings()

	v, err := rules.New(rules.WithPromotion(eff.Rules.Promotion), rules.WithLogger(log.Named("rules")))
	if err != nil {
		return nil, err
	}
	a.validator = v
	a.board = chessboard.New(a.attempt, eff.Sizing(), log.Named("board"))

	sprites := NewSpriteManager(PieceFS(eff.Board.AssetsDir), log.Named("sprites"))
	a.renderer = NewRenderer(sprites, ThemeByName(eff.Board.Theme))

	a.restore()
	a.checkFirstLaunch()
	return a, nil
}

// settings merges the config with the stored preferences.
func (a *App) settings() *config.Config {
	return a.cfg.Effective(a.prefs)
}

// applySettings pushes the merged settings into the board, validator and renderer.
func (a *App) applySettings() {
	eff := a.settings()
	a.board.SetSizing(eff.Sizing())
	a.renderer.SetTheme(ThemeByName(eff.Board.Theme))
	if err := a.validator.SetPromotion(eff.Rules.Promotion); err != nil {
		a.log.Warn("keeping promotion piece", zap.Error(err))
	}
}

// loadPreferences loads user preferences from storage.
func (a *App) loadPreferences() {
	a.prefs = storage.DefaultPreferences()
	if a.store == nil {
		return
	}
	prefs, err := a.store.LoadPreferences()
	if err != nil {
		a.log.Warn("failed to load preferences", zap.Error(err))
		return
	}
	a.prefs = prefs
}

// savePreferences saves current preferences to storage.
func (a *App) savePreferences() {
	if a.store == nil {
		return
	}
	a.prefs.LastPlayed = time.Now()
	if err := a.store.SavePreferences(a.prefs); err != nil {
		a.log.Warn("failed to save preferences", zap.Error(err))
	}
}

// checkFirstLaunch greets a new user once.
func (a *App) checkFirstLaunch() {
	if a.store == nil {
		return
	}
	first, err := a.store.IsFirstLaunch()
	if err != nil {
		a.log.Warn("failed to check first launch", zap.Error(err))
		return
	}
	if !first {
		return
	}
	a.feedback.OnInfo("Welcome to StarkMate")
	if err := a.store.MarkFirstLaunchComplete(); err != nil {
		a.log.Warn("failed to mark first launch complete", zap.Error(err))
	}
}

// restore resumes the most recently saved game.
func (a *App) restore() {
	if a.store == nil {
		return
	}
	snap, err := a.store.LatestSnapshot()
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		a.log.Warn("failed to load snapshot", zap.Error(err))
		return
	}
	if err := a.validator.Restore(snap.StartFEN, snap.Moves); err != nil {
		a.log.Warn("discarding unreadable snapshot", zap.String("board", snap.BoardID), zap.Error(err))
		a.validator.Reset()
		return
	}
	a.board.SetID(snap.BoardID)
	a.board.SetPosition(board.Position(a.validator.Position()))
	a.recorded = a.validator.Outcome() != rules.NoOutcome
	a.log.Info("restored game", zap.String("board", snap.BoardID), zap.Int("moves", len(snap.Moves)))
}

// saveSnapshot stores the current game under the board id.
func (a *App) saveSnapshot() {
	if a.store == nil {
		return
	}
	snap := &storage.Snapshot{
		BoardID:  a.board.ID(),
		StartFEN: a.validator.StartPosition(),
		Moves:    a.validator.History(),
		Position: a.validator.Position(),
	}
	if err := a.store.SaveSnapshot(snap); err != nil {
		a.log.Warn("failed to save snapshot", zap.Error(err))
	}
}

// attempt is the board's move callback. On success it feeds the new position back to the board.
func (a *App) attempt(source, target board.Square) bool {
	if _, err := a.validator.Apply(source, target); err != nil {
		return false
	}
	a.board.SetPosition(board.Position(a.validator.Position()))
	a.lastFrom, a.lastTo = source, target
	a.saveSnapshot()

	if outcome := a.validator.Outcome(); outcome != rules.NoOutcome {
		a.finishGame(outcome)
	} else if _, check := a.validator.InCheckKing(); check {
		a.feedback.OnCheck()
	}
	return true
}

// finishGame announces the result and records it once.
func (a *App) finishGame(outcome rules.Outcome) {
	a.feedback.OnGameOver(outcome, a.validator.Method())
	if a.recorded || a.store == nil {
		return
	}
	a.recorded = true
	err := a.store.RecordGame(storage.GameResult{
		Outcome:  string(outcome),
		Duration: time.Since(a.started),
	})
	if err != nil {
		a.log.Warn("failed to record game", zap.Error(err))
	}
}

// newGame discards the saved game and starts over from the standard position.
// Nothing is saved until the first move.
func (a *App) newGame() {
	if a.store != nil {
		if err := a.store.DeleteSnapshot(a.board.ID()); err != nil {
			a.log.Warn("failed to delete snapshot", zap.Error(err))
		}
	}
	a.validator.Reset()
	a.board.SetPosition(board.Start)
	a.lastFrom, a.lastTo = board.NoSquare, board.NoSquare
	a.targets = nil
	a.dragging = false
	a.started = time.Now()
	a.recorded = false
	a.feedback.OnInfo("New game")
}

// showStats shows the recorded statistics in a toast.
func (a *App) showStats() {
	if a.store == nil {
		a.feedback.OnInfo("Statistics need storage")
		return
	}
	stats, err := a.store.LoadStats()
	if err != nil {
		a.log.Warn("failed to load stats", zap.Error(err))
		return
	}
	a.feedback.OnInfo(stats.Summary())
}

// Preference steps for the keyboard controls.
var (
	themeOrder     = []string{"starkmate", "classic"}
	promotionOrder = []string{"q", "r", "b", "n"}
)

const widthStep = 40

// next returns the entry after cur in order, wrapping around.
func next(order []string, cur string) string {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// cycleTheme switches the preferred theme.
func (a *App) cycleTheme() {
	a.prefs.Theme = next(themeOrder, a.settings().Board.Theme)
	a.preferenceChanged(a.cfg.Board.Theme != "", "Theme: "+a.prefs.Theme)
}

// cyclePromotion switches the preferred promotion piece.
func (a *App) cyclePromotion() {
	a.prefs.Promotion = next(promotionOrder, a.settings().Rules.Promotion)
	a.preferenceChanged(a.cfg.Rules.Promotion != "", "Promote to "+strings.ToUpper(a.prefs.Promotion))
}

// stepWidth grows or shrinks the preferred board width.
func (a *App) stepWidth(delta int) {
	eff := a.settings()
	w := int(eff.Sizing().MaxWidth) + delta
	if minW := int(eff.Board.MinWidth); w < minW {
		w = minW
	}
	a.prefs.BoardWidth = w
	a.preferenceChanged(a.cfg.Board.Width != 0, fmt.Sprintf("Board width: %d", w))
}

// preferenceChanged saves and applies a preference. A value pinned by the config file stays in force.
func (a *App) preferenceChanged(pinned bool, message string) {
	a.savePreferences()
	if pinned {
		a.feedback.OnInfo("Set in the config file")
		return
	}
	a.applySettings()
	a.feedback.OnInfo(message)
}

// undo takes back the last move.
func (a *App) undo() {
	if !a.validator.Undo() {
		return
	}
	a.board.SetPosition(board.Position(a.validator.Position()))
	a.lastFrom, a.lastTo = board.NoSquare, board.NoSquare
	a.targets = nil
	a.dragging = false
	a.saveSnapshot()
}

// ApplyConfig queues a reloaded configuration. Safe to call from any goroutine.
func (a *App) ApplyConfig(cfg *config.Config) {
	select {
	case a.reload <- cfg:
	default:
		// Replace a pending reload that has not been picked up yet.
		select {
		case <-a.reload:
		default:
		}
		a.reload <- cfg
	}
}

// checkReload applies a queued configuration.
func (a *App) checkReload() {
	select {
	case cfg := <-a.reload:
		a.cfg = cfg
		a.applySettings()
		a.log.Info("configuration reloaded")
	default:
	}
}

// Update handles game logic updates.
func (a *App) Update() error {
	a.input.Update()
	a.feedback.Update()
	a.checkReload()

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		a.newGame()
	case IsKeyJustPressed(ebiten.KeyU):
		a.undo()
	case IsKeyJustPressed(ebiten.KeyC):
		a.prefs.ShowCoordinates = !a.prefs.ShowCoordinates
		a.savePreferences()
	case IsKeyJustPressed(ebiten.KeyT):
		a.cycleTheme()
	case IsKeyJustPressed(ebiten.KeyP):
		a.cyclePromotion()
	case IsKeyJustPressed(ebiten.KeyEqual):
		a.stepWidth(widthStep)
	case IsKeyJustPressed(ebiten.KeyMinus):
		a.stepWidth(-widthStep)
	case IsKeyJustPressed(ebiten.KeyS):
		a.showStats()
	}

	a.handleBoardInput()
	return nil
}

// cellUnderPointer maps the pointer to a board cell.
func (a *App) cellUnderPointer() (row, col int, ok bool) {
	mx, my := a.input.MousePosition()
	return a.board.CellAt(float64(mx)-a.originX, float64(my)-a.originY)
}

// handleBoardInput maps pointer presses and releases onto the board's click and drag gestures.
// A press on a piece starts a drag; releasing it on the same cell counts as a click.
func (a *App) handleBoardInput() {
	if a.input.IsLeftJustPressed() {
		a.pressRow, a.pressCol, a.pressOnBoard = a.cellUnderPointer()
		a.dragging = a.pressOnBoard && a.board.DragStart(a.pressRow, a.pressCol)
	}

	if !a.input.IsLeftJustReleased() {
		return
	}

	row, col, onBoard := a.cellUnderPointer()
	sameCell := onBoard && a.pressOnBoard && row == a.pressRow && col == a.pressCol
	target := board.NewSquare(row, col)

	if a.dragging {
		a.dragging = false
		origin, _ := a.board.DragOrigin()
		switch {
		case sameCell:
			a.board.DragEnd()
			a.click(row, col)
		case onBoard:
			out := a.board.Drop(row, col)
			a.board.DragEnd()
			a.handleOutcome(out, origin, target)
		default:
			a.board.DragEnd()
		}
		return
	}

	if sameCell {
		a.click(row, col)
	}
}

// click activates a cell and reacts to the outcome.
func (a *App) click(row, col int) {
	source, _ := a.board.Selected()
	out := a.board.Click(row, col)
	a.handleOutcome(out, source, board.NewSquare(row, col))
}

func (a *App) handleOutcome(out interact.Outcome, source, target board.Square) {
	switch out {
	case interact.Selected:
		sel, _ := a.board.Selected()
		a.targets = a.validator.LegalTargets(sel)
	case interact.Rejected:
		a.feedback.OnRejected(source, target)
		if _, ok := a.board.Selected(); !ok {
			a.targets = nil
		}
	case interact.Accepted, interact.Deselected:
		a.targets = nil
	}
}

// Draw renders the board.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.SetScale(a.scale)
	a.renderer.SetGeometry(a.originX, a.originY, a.board.Width())

	screen.Fill(a.renderer.Theme().Background)

	a.renderer.DrawBoard(screen)
	if king, ok := a.validator.InCheckKing(); ok {
		a.renderer.DrawCheck(screen, king)
	}

	selected, ok := a.board.Selected()
	if !ok {
		selected = board.NoSquare
	}
	a.renderer.DrawHighlights(screen, selected, a.targets, a.lastFrom, a.lastTo)
	if a.prefs.ShowCoordinates {
		a.renderer.DrawCoordinates(screen)
	}

	grid := a.board.Grid()
	dragFrom := board.NoSquare
	if a.dragging {
		dragFrom, _ = a.board.DragOrigin()
	}
	a.renderer.DrawPieces(screen, grid, dragFrom, selected, a.feedback.Animations())
	if a.dragging {
		mx, my := a.input.MousePosition()
		a.renderer.DrawDraggedPiece(screen, grid.At(dragFrom), mx, my)
	}

	a.feedback.Draw(screen, a.renderer, a.originX+a.board.Width()/2, a.originY+toastTop)
}

// Layout sizes the board for the window and returns the device-pixel screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.scale = ebiten.Monitor().DeviceScaleFactor()
	if a.scale < 1.0 {
		a.scale = 1.0
	}
	UIScale = a.scale

	viewport := float64(outsideWidth)
	width := a.board.Resize(viewport-2*boardMargin, viewport)

	a.originX = (viewport - width) / 2
	a.originY = boardMargin
	if free := float64(outsideHeight) - width; free > 2*boardMargin {
		a.originY = free / 2
	}

	return int(viewport * a.scale), int(float64(outsideHeight) * a.scale)
}

// Board returns the board component.
func (a *App) Board() *chessboard.Board {
	return a.board
}

// Close persists preferences and the current game.
func (a *App) Close() {
	a.saveSnapshot()
	a.savePreferences()
}
