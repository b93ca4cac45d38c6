package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, r Result) {
	t.Helper()
	if _, err := store.SaveScore(r); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, Result{GameID: "tilefall", Score: 42})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tilefall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("Expected 42 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "tilefall", Player: "ann", Score: 100, Level: 2, Moves: 30})
	save(t, store, Result{GameID: "tilefall", Player: "bob", Score: 50, Level: 1, Moves: 12})
	save(t, store, Result{GameID: "tilefall", Player: "ann", Score: 200, Level: 4, Moves: 61})
	save(t, store, Result{GameID: "tilefall_endless", Score: 500})

	scores, err := store.TopScores("tilefall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	top := scores[0]
	if top.Player != "ann" || top.Level != 4 || top.Moves != 61 || top.GameID != "tilefall" {
		t.Errorf("Top entry fields not round-tripped: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	endless, err := store.TopScores("tilefall_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, Result{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreTiesKeepInsertOrder(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "tilefall", Player: "first", Score: 70})
	save(t, store, Result{GameID: "tilefall", Player: "second", Score: 70})

	scores, err := store.TopScores("tilefall", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "first" || scores[1].Player != "second" {
		t.Errorf("Tie order = %s, %s; want first, second", scores[0].Player, scores[1].Player)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tilefall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, Result{GameID: "tilefall", Score: 100})
	save(t, store, Result{GameID: "tilefall", Score: 300})
	save(t, store, Result{GameID: "tilefall", Score: 200})

	high, err = store.HighScore("tilefall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStorePlayerBest(t *testing.T) {
	store := openTestStore(t)

	best, err := store.PlayerBest("tilefall", "ann")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil for unknown player, got %+v", best)
	}

	save(t, store, Result{GameID: "tilefall", Player: "ann", Score: 80, Level: 2})
	save(t, store, Result{GameID: "tilefall", Player: "ann", Score: 120, Level: 3})
	save(t, store, Result{GameID: "tilefall", Player: "bob", Score: 999})

	best, err = store.PlayerBest("tilefall", "ann")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best == nil || best.Score != 120 || best.Level != 3 {
		t.Errorf("Unexpected best entry: %+v", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Result{GameID: "tilefall", Score: 100})
	save(t, store, Result{GameID: "tilefall", Score: 200})
	save(t, store, Result{GameID: "tilefall_endless", Score: 300})

	if err := store.ClearScores("tilefall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("tilefall", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	endless, _ := store.TopScores("tilefall_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, Result{GameID: "test", Score: i * 10})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tilefall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty game: %+v", empty)
	}

	save(t, store, Result{GameID: "tilefall", Score: 10, Level: 1})
	save(t, store, Result{GameID: "tilefall", Score: 30, Level: 5})
	save(t, store, Result{GameID: "tilefall_endless", Score: 7})

	stats, err := store.GetGameStats("tilefall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.BestLevel != 5 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["tilefall_endless"].HighScore != 7 {
		t.Errorf("Unexpected all-games stats: %v", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := store.SaveScore(Result{GameID: "tilefall", Score: n}); err != nil {
				t.Errorf("SaveScore() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	scores, err := store.AllScores("tilefall")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 8 {
		t.Errorf("Expected 8 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
