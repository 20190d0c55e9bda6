package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "gamewatch-2026-01-01.log")
	fresh := filepath.Join(dir, "gamewatch-recent.log")
	other := filepath.Join(dir, "keep.txt")
	for _, path := range []string{old, fresh, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(other, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed := CleanupOldLogs(NewNop(), 14, RetentionTarget{Dir: dir, Pattern: "*.log"})
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("old log should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatal("fresh log should remain")
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatal("non-matching file should remain")
	}
}

func TestCleanupOldLogsExcludesActive(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, LogFileName)
	if err := os.WriteFile(active, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -60)
	if err := os.Chtimes(active, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed := CleanupOldLogs(nil, 14, RetentionTarget{Dir: dir, Pattern: "*.log", Exclude: []string{active}})
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if _, err := os.Stat(active); err != nil {
		t.Fatal("excluded file should remain")
	}
}

func TestCleanupDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -60)
	if err := os.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if removed := CleanupOldLogs(nil, 0, RetentionTarget{Dir: dir, Pattern: "*.log"}); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}
