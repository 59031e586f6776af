package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	// Given a written league list
	store := NewStore(filepath.Join(t.TempDir(), "cache"))
	leagues := []schedule.League{
		{ID: "98767991310872058", Name: "LCK", Region: "KOREA"},
		{ID: "98767991302996019", Name: "LEC", Region: "EMEA"},
	}
	if err := store.Write("leagues", leagues); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// When the record is read back
	var got []schedule.League
	mtime, err := store.Read("leagues", &got)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	// Then payload and timestamp are usable
	if len(got) != 2 || got[0].Name != "LCK" || got[1].Region != "EMEA" {
		t.Errorf("Read() payload = %+v, want round-tripped leagues", got)
	}
	if time.Since(mtime) > time.Minute {
		t.Errorf("Read() mtime = %v, want recent write time", mtime)
	}
}

func TestStore_ReadMissingKeyIsNotFound(t *testing.T) {
	store := NewStore(t.TempDir())

	var dest []schedule.League
	_, err := store.Read("leagues", &dest)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReadGarbageIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "leagues.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var dest []schedule.League
	_, err := store.Read("leagues", &dest)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Read() error = %v, want ErrCorrupt", err)
	}
}

func TestStore_WriteOverwritesRecord(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Write("k", []string{"a"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Write("k", []string{"b", "c"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got []string
	if _, err := store.Read("k", &got); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[0] != "b" {
		t.Errorf("Read() = %v, want [b c]", got)
	}
}

func TestStore_RejectsPathTraversalKeys(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, key := range []string{"", ".", "..", "a/b", "../etc/passwd"} {
		if err := store.Write(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Write(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestStore_WriteLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store := NewStore(dir)
	if err := store.Write("leagues", []string{"x"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "leagues.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("cache dir contents = %v, want [leagues.json]", names)
	}
}

func TestStore_Remove(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Write("k", "x"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	var dest string
	if _, err := store.Read("k", &dest); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() after Remove error = %v, want ErrNotFound", err)
	}

	// Removing again is not an error.
	if err := store.Remove("k"); err != nil {
		t.Errorf("Remove() of absent key error = %v", err)
	}
}
