package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != DifficultyMedium {
			t.Errorf("Expected medium difficulty")
		}
		if prefs.EngineColor != ColorWhite {
			t.Errorf("Expected engine to play white by default")
		}
		if prefs.MateAware {
			t.Errorf("Expected mate scoring off by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Username != "Player" {
		t.Errorf("missing preferences should load defaults, got %+v", prefs)
	}

	prefs.Username = "alice"
	prefs.SearchDepth = 4
	prefs.EngineColor = ColorBlack
	prefs.MateAware = true
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Username != "alice" || got.SearchDepth != 4 || got.EngineColor != ColorBlack || !got.MateAware {
		t.Errorf("loaded %+v", got)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTestStorage(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	first, err = s.IsFirstLaunch()
	if err != nil || first {
		t.Errorf("IsFirstLaunch after marking = %v, %v; want false", first, err)
	}
}

func TestRecordResult(t *testing.T) {
	s := openTestStorage(t)

	results := []GameResult{
		{Won: true, Difficulty: DifficultyEasy, Duration: time.Minute},
		{Won: true, Difficulty: DifficultyHard, Duration: time.Minute},
		{Draw: true, Duration: time.Minute},
		{Duration: time.Minute},
		{Won: true, Difficulty: DifficultyHard, Duration: time.Minute},
	}
	for _, r := range results {
		if err := s.RecordResult(r); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 5 || stats.Wins != 3 || stats.Draws != 1 || stats.Losses != 1 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if stats.LongestWinStrk != 2 || stats.CurrentStreak != 1 {
		t.Errorf("streaks = %d/%d, want 2/1", stats.LongestWinStrk, stats.CurrentStreak)
	}
	if stats.WinsByDiff["hard"] != 2 || stats.WinsByDiff["easy"] != 1 {
		t.Errorf("WinsByDiff = %v", stats.WinsByDiff)
	}
	if stats.TotalPlayTime != 5*time.Minute {
		t.Errorf("TotalPlayTime = %v", stats.TotalPlayTime)
	}
}

func TestSavedGames(t *testing.T) {
	s := openTestStorage(t)

	games := []*SavedGame{
		{Name: "scholar", StartFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", Moves: []string{"e2e4", "e7e5"}, PGN: "1. e4 e5 *", Result: "*"},
		{Name: "endgame", StartFEN: "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", Moves: []string{"e4d5"}, Result: "*"},
	}
	for _, g := range games {
		if err := s.SaveGame(g); err != nil {
			t.Fatalf("SaveGame(%s): %v", g.Name, err)
		}
	}

	names, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"endgame", "scholar"}; !slices.Equal(names, want) {
		t.Errorf("ListGames = %v, want %v", names, want)
	}

	got, err := s.LoadGame("scholar")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if got.StartFEN != games[0].StartFEN || !slices.Equal(got.Moves, games[0].Moves) || got.PGN != games[0].PGN {
		t.Errorf("LoadGame = %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	if err := s.DeleteGame("scholar"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := s.LoadGame("scholar"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete error = %v, want ErrGameNotFound", err)
	}
	if err := s.DeleteGame("scholar"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("DeleteGame twice error = %v, want ErrGameNotFound", err)
	}
	if err := s.SaveGame(&SavedGame{Name: "  "}); err == nil {
		t.Error("SaveGame accepted an empty name")
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveGame(&SavedGame{Name: "persisted", StartFEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadGame("persisted"); err != nil {
		t.Errorf("LoadGame after reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	override := t.TempDir()
	t.Setenv(dataDirEnv, override)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != override {
		t.Errorf("GetDataDir = %q, want %q", dataDir, override)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
