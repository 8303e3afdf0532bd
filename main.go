// StarkMate - a chessboard built with Ebitengine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/starkmate/starkmate/internal/board"
	"github.com/starkmate/starkmate/internal/config"
	"github.com/starkmate/starkmate/internal/logging"
	"github.com/starkmate/starkmate/internal/storage"
	"github.com/starkmate/starkmate/internal/textview"
	"github.com/starkmate/starkmate/internal/ui"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
	boardID    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "starkmate",
	Short: "StarkMate - a chessboard you play by clicking or dragging",
	Long: `StarkMate opens a window with a chessboard. Select a piece and click a target,
or drag the piece onto it. Keys: N new game, U undo, C toggle coordinates,
T theme, P promotion piece, + and - board width, S statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			path, err := storage.GetConfigPath()
			if err != nil {
				return err
			}
			configPath = path
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			Verbose:     verbose,
		})
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context())
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the board window (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context())
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [fen|start]",
	Short: "Print the grid derived from a position",
	Long: `Prints the 8x8 grid derived from a FEN string or "start".
Malformed input prints an empty board, as the window would.
With --board the position of a saved game is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos := board.Start
		switch {
		case boardID != "":
			if len(args) == 1 {
				return fmt.Errorf("--board and a position are mutually exclusive")
			}
			snap, err := loadSnapshot(boardID)
			if err != nil {
				return err
			}
			pos = board.Position(snap.Position)
		case len(args) == 1:
			pos = board.Position(args[0])
		}
		g := board.DeriveGrid(pos, logger)
		return textview.Render(cmd.OutOrStdout(), g, textview.Options{
			Selected: board.NoSquare,
			NoColor:  noColor,
		})
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size <container> <viewport>",
	Short: "Print the board width for a container and viewport width",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("container width: %w", err)
		}
		viewport, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("viewport width: %w", err)
		}
		width := cfg.Sizing().RecomputeWidth(container, viewport)
		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(width, 'f', -1, 64))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the recorded game statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.LoadStats()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stats.Summary())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is <data dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	renderCmd.Flags().BoolVar(&noColor, "no-color", false, "plain text output")
	renderCmd.Flags().StringVar(&boardID, "board", "", "print the saved game with this board id")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStorage opens the database named by the config.
func openStorage() (*storage.Storage, error) {
	if cfg.Storage.Disabled {
		return nil, fmt.Errorf("storage is disabled in %s", configPath)
	}
	return storage.Open(storage.Options{Dir: cfg.Storage.Dir, InMemory: cfg.Storage.InMemory})
}

// loadSnapshot reads one saved game.
func loadSnapshot(id string) (*storage.Snapshot, error) {
	store, err := openStorage()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no saved game for board %q", id)
	}
	return snap, err
}

// runPlay opens the window and blocks until it is closed.
func runPlay(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var store *storage.Storage
	if !cfg.Storage.Disabled {
		var err error
		store, err = openStorage()
		if err != nil {
			// Play on without persistence.
			logger.Warn("failed to open storage", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	app, err := ui.NewApp(cfg, store, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	go func() {
		if err := config.Watch(ctx, configPath, logger.Named("config"), app.ApplyConfig); err != nil {
			logger.Warn("config watch stopped", zap.Error(err))
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting", zap.String("board", app.Board().ID()))
	return ebiten.RunGame(app)
}
