package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"books-scraper/models"
	"books-scraper/utils"
)

// SQLiteStore is the default Store backend, a single SQLite file.
// Writes hold an exclusive lock; reads may run concurrently with each other
// but never with a writer.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	logger *utils.Logger
}

// NewSQLiteStore opens (creating if needed) the database file at path and
// runs the idempotent schema migration. Use ":memory:" for an ephemeral
// store.
func NewSQLiteStore(path string, logger *utils.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

// migrate is create-if-absent and safe to run on every start. It never
// drops data; clearing is Reset's job.
func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT    NOT NULL UNIQUE,
			price        REAL    NOT NULL,
			rating       INTEGER NOT NULL,
			availability TEXT,
			url          TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_books_rating ON books(rating);
		CREATE INDEX IF NOT EXISTS idx_books_price  ON books(price);
	`)
	return err
}

// Reset deletes all books and restarts id assignment from 1.
func (s *SQLiteStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM books`); err != nil {
		return fmt.Errorf("sqlite: reset: %w", err)
	}
	// AUTOINCREMENT keeps its high-water mark in sqlite_sequence, which
	// only exists once the first insert has happened.
	if _, err := s.db.Exec(`DELETE FROM sqlite_sequence WHERE name = 'books'`); err != nil &&
		!strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("sqlite: reset sequence: %w", err)
	}
	return nil
}

// InsertBatch inserts previously-unseen titles and returns how many landed.
func (s *SQLiteStore) InsertBatch(books []*models.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.knownTitles()
	if err != nil {
		return 0, fmt.Errorf("sqlite: load known titles: %w", err)
	}

	inserted := 0
	for _, b := range books {
		if _, dup := known[b.Title]; dup {
			s.logger.Debug("[store] Duplicate title skipped: %q", b.Title)
			continue
		}

		_, err := s.db.Exec(
			`INSERT INTO books (title, price, rating, availability, url) VALUES (?, ?, ?, ?, ?)`,
			b.Title, b.Price, b.Rating, b.Availability, b.URL,
		)
		if err != nil {
			s.logger.Warn("[store] Insert failed for %q: %v", b.Title, err)
			continue
		}

		known[b.Title] = struct{}{}
		inserted++
	}

	s.logger.Info("[store] Inserted %d new books (%d duplicates/failures skipped)",
		inserted, len(books)-inserted)
	return inserted, nil
}

func (s *SQLiteStore) knownTitles() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT title FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		known[title] = struct{}{}
	}
	return known, rows.Err()
}

// GetByID returns the book with the given id, or ErrNotFound.
func (s *SQLiteStore) GetByID(id int64) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := &models.Book{}
	err := s.db.QueryRow(
		`SELECT id, title, price, rating, availability, url FROM books WHERE id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Price, &b.Rating, &b.Availability, &b.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get book %d: %w", id, err)
	}
	return b, nil
}

// Search filters on minimum rating and maximum price. Ordering is rating
// descending, price ascending, with id as the deterministic tiebreak.
func (s *SQLiteStore) Search(minRating int, maxPrice float64) ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, price, rating, availability, url
		FROM books
		WHERE rating >= ? AND price <= ?
		ORDER BY rating DESC, price ASC, id ASC
	`, minRating, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("sqlite: search: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// ListAll returns every stored book in insertion (id) order.
func (s *SQLiteStore) ListAll() ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, price, rating, availability, url
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list all: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Stats aggregates over the stored set without loading it.
func (s *SQLiteStore) Stats() (*models.SummaryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.SummaryStats{}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(AVG(price), 0),
		       COALESCE(MIN(price), 0),
		       COALESCE(MAX(price), 0),
		       COALESCE(AVG(rating), 0)
		FROM books
	`).Scan(&stats.Count, &stats.AvgPrice, &stats.MinPrice, &stats.MaxPrice, &stats.AvgRating)
	if err != nil {
		return nil, fmt.Errorf("sqlite: stats: %w", err)
	}
	return stats, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanBooks(rows *sql.Rows) ([]*models.Book, error) {
	var books []*models.Book
	for rows.Next() {
		b := &models.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.Rating, &b.Availability, &b.URL); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
