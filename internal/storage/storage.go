package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("not found")

// Storage keys
const (
	keyPreferences    = "preferences"
	keyStats          = "stats"
	keyFirstLaunch    = "first_launch"
	keySnapshotPrefix = "snapshot/"
)

// Preferences stores the player's board settings
type Preferences struct {
	Theme           string    `json:"theme"`
	BoardWidth      int       `json:"board_width"` // 0 means "use the configured maximum"
	Promotion       string    `json:"promotion"`
	ShowCoordinates bool      `json:"show_coordinates"`
	LastPlayed      time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:           "starkmate",
		Promotion:       "q",
		ShowCoordinates: true,
		LastPlayed:      time.Now(),
	}
}

// Snapshot is the saved state of one board: where the game started and the moves played since.
type Snapshot struct {
	BoardID  string    `json:"board_id"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Position string    `json:"position"`
	SavedAt  time.Time `json:"saved_at"`
}

// Stats stores game statistics
type Stats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Draws         int           `json:"draws"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// GameResult is a completed game as reported by the move validator.
type GameResult struct {
	Outcome  string // "1-0", "0-1" or "1/2-1/2"
	Duration time.Duration
}

// Options selects where the database lives.
type Options struct {
	Dir      string // database directory; empty uses GetDatabaseDir
	InMemory bool
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database.
func Open(o Options) (*Storage, error) {
	var opts badger.Options
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := o.Dir
		if dir == "" {
			var err error
			dir, err = GetDatabaseDir()
			if err != nil {
				return nil, err
			}
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	if errors.Is(err, ErrNotFound) {
		return prefs, nil
	}
	return prefs, err
}

// SaveSnapshot stores the state of a board under its id.
func (s *Storage) SaveSnapshot(snap *Snapshot) error {
	if snap.BoardID == "" {
		return errors.New("snapshot without board id")
	}
	snap.SavedAt = time.Now()
	return s.put(keySnapshotPrefix+snap.BoardID, snap)
}

// LoadSnapshot returns the saved state of a board, or ErrNotFound.
func (s *Storage) LoadSnapshot(boardID string) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := s.get(keySnapshotPrefix+boardID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// LatestSnapshot returns the most recently saved snapshot of any board, or ErrNotFound.
func (s *Storage) LatestSnapshot() (*Snapshot, error) {
	var latest *Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keySnapshotPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			snap := &Snapshot{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, snap)
			}); err != nil {
				return err
			}
			if latest == nil || snap.SavedAt.After(latest.SavedAt) {
				latest = snap
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

// DeleteSnapshot removes a board's saved state.
func (s *Storage) DeleteSnapshot(boardID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keySnapshotPrefix + boardID))
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	err := s.get(keyStats, stats)
	if errors.Is(err, ErrNotFound) {
		return stats, nil
	}
	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	switch result.Outcome {
	case "1-0":
		stats.WhiteWins++
	case "0-1":
		stats.BlackWins++
	case "1/2-1/2":
		stats.Draws++
	default:
		return fmt.Errorf("unfinished game outcome %q", result.Outcome)
	}

	return s.put(keyStats, stats)
}

// DrawRate returns the share of drawn games as a percentage (0-100)
func (s *Stats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

// Summary formats the statistics on one line.
func (s *Stats) Summary() string {
	if s.GamesPlayed == 0 {
		return "No games played yet"
	}
	return fmt.Sprintf("%d games: %d white wins, %d black wins, %d draws (%.0f%%), %s played",
		s.GamesPlayed, s.WhiteWins, s.BlackWins, s.Draws, s.DrawRate(), s.TotalPlayTime.Round(time.Second))
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
