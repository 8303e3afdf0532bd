package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTest(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := s.LoadPreferences()
		require.NoError(t, err)
		assert.Equal(t, "starkmate", prefs.Theme)
		assert.Equal(t, "q", prefs.Promotion)
		assert.Zero(t, prefs.BoardWidth)
		assert.True(t, prefs.ShowCoordinates)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.BoardWidth = 480
		prefs.ShowCoordinates = false
		require.NoError(t, s.SavePreferences(prefs))

		got, err := s.LoadPreferences()
		require.NoError(t, err)
		assert.Equal(t, 480, got.BoardWidth)
		assert.False(t, got.ShowCoordinates)
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, s.MarkFirstLaunchComplete())
	first, err = s.IsFirstLaunch()
	require.NoError(t, err)
	assert.False(t, first)
}

func TestSnapshots(t *testing.T) {
	s := openTest(t)

	_, err := s.LoadSnapshot("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LatestSnapshot()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.SaveSnapshot(&Snapshot{}))

	require.NoError(t, s.SaveSnapshot(&Snapshot{BoardID: "a", Moves: []string{"e2e4"}, Position: "p1"}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, s.SaveSnapshot(&Snapshot{BoardID: "b", Moves: []string{"d2d4"}, Position: "p2"}))

	a, err := s.LoadSnapshot("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"e2e4"}, a.Moves)

	latest, err := s.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "b", latest.BoardID)

	require.NoError(t, s.DeleteSnapshot("b"))
	latest, err = s.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "a", latest.BoardID)
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	require.NoError(t, s.RecordGame(GameResult{Outcome: "1-0", Duration: time.Minute}))
	require.NoError(t, s.RecordGame(GameResult{Outcome: "1/2-1/2", Duration: time.Minute}))
	assert.Error(t, s.RecordGame(GameResult{Outcome: "*"}))

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 1, stats.WhiteWins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 2*time.Minute, stats.TotalPlayTime)
	assert.InDelta(t, 50, stats.DrawRate(), 1e-9)
	assert.Zero(t, (&Stats{}).DrawRate())
	assert.Equal(t, "2 games: 1 white wins, 0 black wins, 1 draws (50%), 2m0s played", stats.Summary())
	assert.Equal(t, "No games played yet", (&Stats{}).Summary())
}

func TestOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(&Snapshot{BoardID: "x", Position: "8/8/8/8/8/8/8/8"}))
	require.NoError(t, s.Close())

	s, err = Open(Options{Dir: dir})
	require.NoError(t, err)
	defer s.Close()
	snap, err := s.LoadSnapshot("x")
	require.NoError(t, err)
	assert.Equal(t, "8/8/8/8/8/8/8/8", snap.Position)
}

func TestDataPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	_, err = os.Stat(dbDir)
	assert.NoError(t, err)

	cfg, err := GetConfigPath()
	require.NoError(t, err)
	assert.Contains(t, cfg, "config.yaml")
}
