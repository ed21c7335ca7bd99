package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DetectsEdit(t *testing.T) {
	dir := t.TempDir()

	taskFile := filepath.Join(dir, "tasks.toml")
	if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\ntitle = \"First\"\n"), 0644); err != nil {
		t.Fatalf("failed to create task file: %v", err)
	}

	w, err := New(taskFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\ntitle = \"Renamed\"\n"), 0644); err != nil {
		t.Fatalf("failed to update task file: %v", err)
	}

	select {
	case change := <-w.Changes:
		if change.Kind != ChangeModified {
			t.Errorf("expected ChangeModified, got %d", change.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()

	taskFile := filepath.Join(dir, "tasks.toml")
	if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\n"), 0644); err != nil {
		t.Fatalf("failed to create task file: %v", err)
	}

	w, err := New(taskFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Write an unrelated file in the same directory.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change event: %+v", change)
	case <-time.After(300 * time.Millisecond):
		// Expected: sibling files are filtered out.
	}
}

func TestWatcher_DetectsRemoval(t *testing.T) {
	dir := t.TempDir()

	taskFile := filepath.Join(dir, "tasks.toml")
	if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\n"), 0644); err != nil {
		t.Fatalf("failed to create task file: %v", err)
	}

	w, err := New(taskFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(taskFile); err != nil {
		t.Fatalf("failed to remove task file: %v", err)
	}

	select {
	case change := <-w.Changes:
		if change.Kind != ChangeRemoved {
			t.Errorf("expected ChangeRemoved, got %d", change.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcher_CoalescesSaveBurst(t *testing.T) {
	dir := t.TempDir()

	taskFile := filepath.Join(dir, "tasks.toml")
	if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\n"), 0644); err != nil {
		t.Fatalf("failed to create task file: %v", err)
	}

	w, err := New(taskFile)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Simulate an editor save burst: several writes in quick succession.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(taskFile, []byte("[[tasks]]\nid = \"t1\"\n"), 0644); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case change := <-w.Changes:
		if change.Kind != ChangeModified {
			t.Errorf("expected ChangeModified, got %d", change.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for coalesced change event")
	}

	// The burst should settle to at most one more pending notification.
	drained := 0
	for {
		select {
		case <-w.Changes:
			drained++
		case <-time.After(500 * time.Millisecond):
			if drained > 1 {
				t.Errorf("expected the burst to coalesce, got %d extra events", drained+1)
			}
			return
		}
	}
}
