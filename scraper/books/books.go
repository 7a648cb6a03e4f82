package books

import (
	"fmt"
	"strings"
	"time"

	"books-scraper/config"
	"books-scraper/models"
	"books-scraper/utils"
)

// Scraper drives the paginated collection of raw book records from the
// catalog site. It is synchronous: pages are fetched one at a time, in order.
type Scraper struct {
	baseURL string
	fetcher *fetcher
	logger  *utils.Logger
}

// New creates a ready-to-use catalog Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	base := strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	return &Scraper{
		baseURL: base,
		fetcher: newFetcher(time.Duration(cfg.RequestTimeoutMs) * time.Millisecond),
		logger:  logger,
	}
}

// pageURL returns the catalog URL for the given 1-based page number.
func (s *Scraper) pageURL(page int) string {
	return fmt.Sprintf("%scatalogue/page-%d.html", s.baseURL, page)
}

// Collect walks pages 1..maxPages and accumulates raw records in page order.
// It stops at the first non-200 fetch, the first transport failure, or the
// first page with zero entries. Records collected before the stop are always
// returned; the error is non-nil only for transport failures, so callers can
// tell a truncated run from a naturally exhausted catalog.
func (s *Scraper) Collect(maxPages int) ([]*models.RawBook, int, error) {
	var collected []*models.RawBook
	pagesFetched := 0

	for page := 1; page <= maxPages; page++ {
		url := s.pageURL(page)
		s.logger.Info("[books] Scraping page %d — %s", page, url)

		body, outcome, err := s.fetcher.fetchPage(url)
		switch outcome {
		case fetchFailed:
			s.logger.Error("[books] Page %d fetch failed: %v — stopping", page, err)
			return collected, pagesFetched, fmt.Errorf("fetch page %d: %w", page, err)
		case fetchAbsent:
			s.logger.Warn("[books] Page %d not available — stopping", page)
			return collected, pagesFetched, nil
		}
		pagesFetched++

		raw, err := s.extractBooks(body, page)
		if err != nil {
			s.logger.Error("[books] Page %d parse failed: %v — stopping", page, err)
			return collected, pagesFetched, fmt.Errorf("parse page %d: %w", page, err)
		}
		if len(raw) == 0 {
			s.logger.Info("[books] Page %d has no entries — end of catalog", page)
			return collected, pagesFetched, nil
		}

		collected = append(collected, raw...)
		s.logger.Info("[books] Page %d done — %d entries, %d collected so far",
			page, len(raw), len(collected))
	}

	s.logger.Info("[books] Page budget reached — total raw records: %d", len(collected))
	return collected, pagesFetched, nil
}
