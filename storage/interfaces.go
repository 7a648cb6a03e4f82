package storage

import (
	"errors"

	"books-scraper/models"
)

// ErrNotFound is returned by point lookups for ids that do not exist.
var ErrNotFound = errors.New("storage: book not found")

// Store is the persistence contract any backend must satisfy. Titles are the
// natural dedup key; the integer id is assigned at insert time and is the
// addressable key for lookups.
type Store interface {
	// Reset discards all stored books and restarts id assignment from 1.
	Reset() error

	// InsertBatch inserts books whose title is not yet stored and returns
	// the number actually inserted. The known-title set is loaded once at
	// the top of the call and extended as rows land, so the first of
	// several identical new titles in a batch wins and the rest are
	// treated as duplicates. Row-level failures are skipped, logged, and
	// excluded from the count.
	InsertBatch(books []*models.Book) (int, error)

	// GetByID returns the book with the given id, or ErrNotFound.
	GetByID(id int64) (*models.Book, error)

	// Search returns books with rating >= minRating and price <= maxPrice,
	// ordered by rating descending, then price ascending, then id.
	Search(minRating int, maxPrice float64) ([]*models.Book, error)

	// ListAll returns every stored book ordered by id.
	ListAll() ([]*models.Book, error)

	// Stats computes aggregate figures over the stored set. An empty store
	// yields a zero-count result.
	Stats() (*models.SummaryStats, error)

	Close() error
}

// RawWriter is the interface for persisting unprocessed scraped data.
type RawWriter interface {
	WriteRaw(books []*models.RawBook) error
	Close() error
}
