package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"books-scraper/models"
)

// Snapshot persists the normalized, pre-dedup record set as a JSON file.
// It is rewritten after each full ingestion run and read back on a fresh
// process start so the catalog can serve queries before the first run.
type Snapshot struct {
	path string
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Write replaces the snapshot with the given books.
func (s *Snapshot) Write(books []*models.Book) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("snapshot: create data dir: %w", err)
	}

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", s.path, err)
	}
	return nil
}

// Load reads the snapshot back. A missing file is not an error: it returns
// an empty catalog.
func (s *Snapshot) Load() ([]*models.Book, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %q: %w", s.path, err)
	}

	var books []*models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("snapshot: parse %q: %w", s.path, err)
	}
	return books, nil
}
