package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"books-scraper/models"
	"books-scraper/utils"
)

// ratingWords is the fixed vocabulary the catalog uses for star ratings.
// Matching is exact and case-sensitive.
var ratingWords = map[string]int{
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

// NormalizationError reports which field of a raw record could not be
// converted. The whole record is rejected; no partially-typed record is
// ever forwarded to storage.
type NormalizationError struct {
	Field string
	Value string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s: unparseable value %q", e.Field, e.Value)
}

// Normalizer converts raw scraped records into typed, validated Books.
type Normalizer struct {
	logger  *utils.Logger
	baseURL *url.URL
}

// NewNormalizer creates a Normalizer resolving relative detail links against
// the given base URL.
func NewNormalizer(baseURL string, logger *utils.Logger) (*Normalizer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("normalizer: parse base URL %q: %w", baseURL, err)
	}
	return &Normalizer{logger: logger, baseURL: base}, nil
}

// Normalize converts one raw record. It either returns a fully typed Book
// or a NormalizationError naming the offending field.
func (n *Normalizer) Normalize(raw *models.RawBook) (*models.Book, error) {
	price, err := n.parsePrice(raw.PriceText)
	if err != nil {
		return nil, err
	}

	rating, ok := ratingWords[raw.RatingText]
	if !ok {
		return nil, &NormalizationError{Field: "rating", Value: raw.RatingText}
	}

	detailURL, err := n.resolveURL(raw.URL)
	if err != nil {
		return nil, err
	}

	return &models.Book{
		Title:        raw.Title,
		Price:        price,
		Rating:       rating,
		Availability: raw.Availability,
		URL:          detailURL,
	}, nil
}

// NormalizeAll converts a batch, dropping records that fail. Failures are
// logged and never abort the batch.
func (n *Normalizer) NormalizeAll(raw []*models.RawBook) []*models.Book {
	result := make([]*models.Book, 0, len(raw))
	for _, r := range raw {
		book, err := n.Normalize(r)
		if err != nil {
			n.logger.Warn("[normalizer] Dropping %q: %v", r.Title, err)
			continue
		}
		result = append(result, book)
	}

	n.logger.Info("[normalizer] Normalized %d → %d records (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice strips the currency glyph and its common double-encoded
// byte-artifact form ("Â£") before parsing the remainder as a non-negative
// decimal. Parsing a glyph-free numeric string is a no-op strip.
func (n *Normalizer) parsePrice(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, "Â£", "")
	cleaned = strings.ReplaceAll(cleaned, "£", "")
	cleaned = strings.TrimSpace(cleaned)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0, &NormalizationError{Field: "price", Value: raw}
	}
	return price, nil
}

// resolveURL passes absolute URLs through and resolves relative ones
// against the base.
func (n *Normalizer) resolveURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &NormalizationError{Field: "url", Value: raw}
	}
	if u.IsAbs() {
		return raw, nil
	}
	return n.baseURL.ResolveReference(u).String(), nil
}
