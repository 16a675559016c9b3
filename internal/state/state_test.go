package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// swap points the package at a temp state file and restores it afterwards.
func swap(t *testing.T, file string, s *State) {
	t.Helper()
	originalPath := path
	originalCurrent := current
	path = file
	current = s
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})
}

func TestInitWithDir(t *testing.T) {
	tmpDir := t.TempDir()
	swap(t, "", nil)

	err := InitWithDir(filepath.Join(tmpDir, ".config", "notecards"))
	if err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}

	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if current.PreviewMode != "" {
		t.Errorf("default PreviewMode = %q, want empty", current.PreviewMode)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	swap(t, filepath.Join(t.TempDir(), "nonexistent", "state.json"), nil)

	if err := Load(); err != nil {
		t.Fatalf("Load() for non-existent file should return nil, got %v", err)
	}
	if current == nil {
		t.Error("current should be initialized with defaults")
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "state.json")
	swap(t, stateFile, nil)

	data, _ := json.Marshal(State{PreviewMode: PreviewPlain, GridColumns: 2})
	if err := os.WriteFile(stateFile, data, 0644); err != nil {
		t.Fatalf("failed to write test state file: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if current.PreviewMode != PreviewPlain {
		t.Errorf("PreviewMode = %q, want plain", current.PreviewMode)
	}
	if current.GridColumns != 2 {
		t.Errorf("GridColumns = %d, want 2", current.GridColumns)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "state.json")
	swap(t, stateFile, nil)

	if err := os.WriteFile(stateFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("failed to write invalid JSON: %v", err)
	}

	if err := Load(); err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestSave_CreateDirectories(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "deep", "nested", "notecards", "state.json")
	swap(t, stateFile, &State{GridColumns: 4})

	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(stateFile)
	if err != nil {
		t.Fatalf("state file not created: %v", err)
	}
	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal saved state: %v", err)
	}
	if loaded.GridColumns != 4 {
		t.Errorf("saved GridColumns = %d, want 4", loaded.GridColumns)
	}
}

func TestSave_NilCurrent(t *testing.T) {
	swap(t, "/tmp/nonexistent/state.json", nil)

	if err := Save(); err != nil {
		t.Fatalf("Save() with nil current should not error, got %v", err)
	}
}

func TestGetters_NilCurrent(t *testing.T) {
	swap(t, "", nil)

	if got := GetPreviewMode(); got != "" {
		t.Errorf("GetPreviewMode() with nil current = %q, want empty", got)
	}
	if got := GetGridColumns(); got != 0 {
		t.Errorf("GetGridColumns() with nil current = %d, want 0", got)
	}
}

func TestSetters_InitializeNilState(t *testing.T) {
	swap(t, filepath.Join(t.TempDir(), "state.json"), nil)

	if err := SetPreviewMode(PreviewMarkdown); err != nil {
		t.Fatalf("SetPreviewMode() failed: %v", err)
	}
	if err := SetGridColumns(5); err != nil {
		t.Fatalf("SetGridColumns() failed: %v", err)
	}
	if GetPreviewMode() != PreviewMarkdown {
		t.Errorf("GetPreviewMode() = %q, want markdown", GetPreviewMode())
	}
	if GetGridColumns() != 5 {
		t.Errorf("GetGridColumns() = %d, want 5", GetGridColumns())
	}
}

func TestConcurrentAccess(t *testing.T) {
	swap(t, filepath.Join(t.TempDir(), "state.json"), &State{})

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := SetGridColumns(n + 1); err != nil {
				errs <- err
			}
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GetGridColumns()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent access error: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	swap(t, filepath.Join(t.TempDir(), "state.json"), &State{PreviewMode: PreviewPlain})

	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	current = nil
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if current.PreviewMode != PreviewPlain {
		t.Errorf("round-trip PreviewMode = %q, want plain", current.PreviewMode)
	}
}
