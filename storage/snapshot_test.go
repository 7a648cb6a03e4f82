package storage

import (
	"path/filepath"
	"testing"

	"books-scraper/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	snap := NewSnapshot(path)

	books := []*models.Book{
		{Title: "A", Price: 15, Rating: 5, Availability: "In stock", URL: "http://x/a"},
		{Title: "B", Price: 10, Rating: 3, Availability: "In stock", URL: "http://x/b"},
	}
	if err := snap.Write(books); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := snap.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d books, want 2", len(loaded))
	}
	if loaded[0].Title != "A" || loaded[0].Price != 15 || loaded[0].Rating != 5 {
		t.Errorf("first record mismatch: %+v", loaded[0])
	}
}

func TestSnapshotLoadMissingFile(t *testing.T) {
	snap := NewSnapshot(filepath.Join(t.TempDir(), "absent.json"))

	books, err := snap.Load()
	if err != nil {
		t.Fatalf("missing snapshot must not be an error: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("got %d books, want 0", len(books))
	}
}
