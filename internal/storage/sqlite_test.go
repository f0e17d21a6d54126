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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 5, 20} {
		if _, err := store.SaveScore("bee", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different game id
	if _, err := store.SaveScore("other", 50); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bee", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 20 || scores[1].Score != 10 || scores[2].Score != 5 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].GameID != "bee" {
		t.Errorf("Expected game id bee, got %q", scores[0].GameID)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("bee", (i+1)*10)
	}

	scores, err := store.TopScores("bee", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to 10
	all, err := store.TopScores("bee", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected default limit to return all 5, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bee")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("bee", 10)
	store.SaveScore("bee", 30)
	store.SaveScore("bee", 20)

	high, err = store.HighScore("bee")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bee", 10)
	store.SaveScore("bee", 20)
	store.SaveScore("other", 30)
	store.SaveBest(BestKey, 20)

	if err := store.ClearScores("bee"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("bee", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Error("Other game should not be affected by clearing bee")
	}
	if best, _ := store.LoadBest(BestKey); best != 20 {
		t.Errorf("ClearScores() should keep the best, got %d", best)
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("bee", i)
	}

	scores, err := store.AllScores("bee")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("bee")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("bee", 2)
	store.SaveScore("bee", 4)
	store.SaveScore("bee", 9)

	stats, err := store.GetGameStats("bee")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 9 || stats.TotalScore != 15 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 5 {
		t.Errorf("Expected average 5, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}

func TestStoreBestIsMonotonic(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest(BestKey)
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 before any save, got %d", best)
	}

	steps := []struct {
		save     int
		expected int
	}{
		{7, 7},
		{3, 7},
		{7, 7},
		{12, 12},
	}
	for _, step := range steps {
		got, err := store.SaveBest(BestKey, step.save)
		if err != nil {
			t.Fatalf("SaveBest(%d) failed: %v", step.save, err)
		}
		if got != step.expected {
			t.Errorf("SaveBest(%d) = %d, expected %d", step.save, got, step.expected)
		}
	}

	if best, _ := store.LoadBest(BestKey); best != 12 {
		t.Errorf("LoadBest() = %d, expected 12", best)
	}
	if other, _ := store.LoadBest("other"); other != 0 {
		t.Errorf("Keys should be independent, got %d", other)
	}
}

func TestStoreBestPersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveBest(BestKey, 42)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if best, _ := store.LoadBest(BestKey); best != 42 {
		t.Errorf("LoadBest() after reopen = %d, expected 42", best)
	}
}

func TestStoreBestWatch(t *testing.T) {
	store := openTestStore(t)

	var seen []int
	cancel := store.Watch(BestKey, func(best int) { seen = append(seen, best) })

	store.SaveBest(BestKey, 5)
	store.SaveBest(BestKey, 2) // no change, no notification
	store.SaveBest("other", 100)
	store.SaveBest(BestKey, 9)
	if err := store.ResetBest(BestKey); err != nil {
		t.Fatalf("ResetBest() failed: %v", err)
	}

	cancel()
	cancel()
	store.SaveBest(BestKey, 20)

	expected := []int{5, 9, 0}
	if len(seen) != len(expected) {
		t.Fatalf("notifications = %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("notifications = %v, expected %v", seen, expected)
			break
		}
	}
}

func TestStoreBestConcurrentWritesNotifyInOrder(t *testing.T) {
	store := openTestStore(t)

	var (
		mu   sync.Mutex
		seen []int
	)
	cancel := store.Watch(BestKey, func(best int) {
		mu.Lock()
		seen = append(seen, best)
		mu.Unlock()
	})
	defer cancel()

	const writers = 20
	var wg sync.WaitGroup
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveBest(BestKey, score); err != nil {
				t.Errorf("SaveBest(%d) failed: %v", score, err)
			}
		}(i)
	}
	wg.Wait()

	if best, _ := store.LoadBest(BestKey); best != writers {
		t.Errorf("LoadBest() = %d, expected %d", best, writers)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 || seen[len(seen)-1] != writers {
		t.Fatalf("last notification should be %d, got %v", writers, seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Errorf("notifications must rise strictly, got %v", seen)
			break
		}
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
