package storage

import (
	"os"
	"path/filepath"
	"testing"

	"fire-ca/internal/sweep"
)

func testResult(model string, paramID, runID, fires int) sweep.Result {
	return sweep.Result{
		Params: sweep.RunParams{
			Model: model, L: 64, P: 0.01, F: 0.0001, Steps: 100,
			ParamID: paramID, RunID: runID,
		},
		NumFires:       fires,
		MeanSize:       12.5,
		MaxSize:        200,
		RemainingTrees: 1500,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "summaries.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "summaries.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveResult(testResult("forest", 0, 0, 10)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(testResult("forest", 0, 1, 12)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(testResult("oakpine", 0, 0, 3)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	rows, err := store.Summaries("forest", 10)
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d forest summaries, want 2", len(rows))
	}
	// Newest first.
	if rows[0].RunID != 1 || rows[1].RunID != 0 {
		t.Fatalf("unexpected order: run ids %d, %d", rows[0].RunID, rows[1].RunID)
	}
	if rows[0].NumFires != 12 || rows[0].MeanSize != 12.5 || rows[0].MaxSize != 200 {
		t.Fatalf("summary fields lost in round trip: %+v", rows[0])
	}
}

func TestStoreCreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "summaries.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}
