package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"books-scraper/models"
	"books-scraper/utils"
)

// PostgresStore implements Store on PostgreSQL, for deployments where the
// catalog is shared between processes. Selected with STORE_DRIVER=postgres.
type PostgresStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore connects to PostgreSQL, waiting for the server to come
// up, and runs the idempotent schema migration.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	s := &PostgresStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id           SERIAL PRIMARY KEY,
			title        TEXT          NOT NULL UNIQUE,
			price        NUMERIC(10,2) NOT NULL,
			rating       INTEGER       NOT NULL,
			availability TEXT          NOT NULL DEFAULT '',
			url          TEXT          NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_books_rating ON books(rating);
		CREATE INDEX IF NOT EXISTS idx_books_price  ON books(price);
	`)
	return err
}

// Reset truncates the table and restarts the id sequence.
func (s *PostgresStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`TRUNCATE books RESTART IDENTITY`); err != nil {
		return fmt.Errorf("postgres: reset: %w", err)
	}
	return nil
}

// InsertBatch inserts previously-unseen titles and returns how many landed.
// Same dedup contract as the SQLite store: the known-title set is loaded
// once up front and extended as rows land.
func (s *PostgresStore) InsertBatch(books []*models.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.knownTitles()
	if err != nil {
		return 0, fmt.Errorf("postgres: load known titles: %w", err)
	}

	inserted := 0
	for _, b := range books {
		if _, dup := known[b.Title]; dup {
			s.logger.Debug("[store] Duplicate title skipped: %q", b.Title)
			continue
		}

		_, err := s.db.Exec(
			`INSERT INTO books (title, price, rating, availability, url) VALUES ($1, $2, $3, $4, $5)`,
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

func (s *PostgresStore) knownTitles() (map[string]struct{}, error) {
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

func (s *PostgresStore) GetByID(id int64) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := &models.Book{}
	err := s.db.QueryRow(
		`SELECT id, title, price, rating, availability, url FROM books WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.Price, &b.Rating, &b.Availability, &b.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get book %d: %w", id, err)
	}
	return b, nil
}

func (s *PostgresStore) Search(minRating int, maxPrice float64) ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, price, rating, availability, url
		FROM books
		WHERE rating >= $1 AND price <= $2
		ORDER BY rating DESC, price ASC, id ASC
	`, minRating, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("postgres: search: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (s *PostgresStore) ListAll() ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, price, rating, availability, url
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list all: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (s *PostgresStore) Stats() (*models.SummaryStats, error) {
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
		return nil, fmt.Errorf("postgres: stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
