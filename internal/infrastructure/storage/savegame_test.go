package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedTime = time.Date(2026, time.March, 1, 12, 30, 0, 0, time.UTC)

type sampleState struct {
	Turn   int
	Name   string
	Counts map[int]int
	Blob   []byte
}

func TestSaveService_RoundTrip(t *testing.T) {
	s := NewSaveService(filepath.Join(t.TempDir(), "saves", DefaultSaveFile))
	want := sampleState{Turn: 12, Name: "forest", Counts: map[int]int{1: 2, 3: 4}, Blob: []byte{9, 8, 7}}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists() {
		t.Fatal("save file missing after Save")
	}

	var got sampleState
	if err := s.Load(&got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch:\n%s", diff)
	}
	if !s.Exists() {
		t.Fatal("Load must leave the file in place")
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Exists() {
		t.Error("save file still exists after Remove")
	}
	if err := s.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestSaveService_Missing(t *testing.T) {
	s := NewSaveService(filepath.Join(t.TempDir(), "nothing.sav"))
	var st sampleState
	if err := s.Load(&st); !errors.Is(err, ErrNoSave) {
		t.Errorf("Load() = %v, want ErrNoSave", err)
	}
}

func TestSaveService_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.sav")
	s := NewSaveService(path)
	if err := s.Save(sampleState{Turn: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0o644); err != nil {
		t.Fatal(err)
	}

	var st sampleState
	if err := s.Load(&st); err == nil {
		t.Fatal("expected error for truncated save")
	}
	if !s.Exists() {
		t.Error("a save that failed to load must not be removed")
	}
}

func TestReplayPath(t *testing.T) {
	got := ReplayPath("replays", fixedTime)
	want := filepath.Join("replays", "replay-2026-03-01T12-30-00.000")
	if got != want {
		t.Errorf("ReplayPath() = %q, want %q", got, want)
	}
}
