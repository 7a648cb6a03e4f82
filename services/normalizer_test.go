package services

import (
	"errors"
	"testing"

	"books-scraper/models"
	"books-scraper/utils"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("http://books.toscrape.com/", utils.NewLogger())
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	return n
}

func TestNormalizerParsePrice(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		raw  string
		want float64
	}{
		{"£51.77", 51.77},
		{"Â£51.77", 51.77}, // double-encoded glyph artifact stripped
		{"£0.00", 0},
		{"51.77", 51.77}, // already normalized: stripping is a no-op
		{" £12.50 ", 12.50},
	}

	for _, tt := range tests {
		got, err := n.parsePrice(tt.raw)
		if err != nil {
			t.Errorf("parsePrice(%q) returned error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizerParsePriceRejectsGarbage(t *testing.T) {
	n := newTestNormalizer(t)

	for _, raw := range []string{"", "free", "£", "£-3.00", "£twelve"} {
		_, err := n.parsePrice(raw)
		if err == nil {
			t.Errorf("parsePrice(%q): expected error, got none", raw)
			continue
		}
		var nerr *NormalizationError
		if !errors.As(err, &nerr) || nerr.Field != "price" {
			t.Errorf("parsePrice(%q): expected price NormalizationError, got %v", raw, err)
		}
	}
}

func TestNormalizerRatingVocabulary(t *testing.T) {
	n := newTestNormalizer(t)

	words := map[string]int{"One": 1, "Two": 2, "Three": 3, "Four": 4, "Five": 5}
	for word, want := range words {
		book, err := n.Normalize(&models.RawBook{
			Title: "t", PriceText: "£1.00", RatingText: word, URL: "x/index.html",
		})
		if err != nil {
			t.Errorf("rating %q: unexpected error %v", word, err)
			continue
		}
		if book.Rating != want {
			t.Errorf("rating %q: got %d, want %d", word, book.Rating, want)
		}
	}

	// Exact, case-sensitive matching: anything else is rejected.
	for _, word := range []string{"one", "Six", "", "3", "FIVE"} {
		_, err := n.Normalize(&models.RawBook{
			Title: "t", PriceText: "£1.00", RatingText: word, URL: "x/index.html",
		})
		var nerr *NormalizationError
		if !errors.As(err, &nerr) || nerr.Field != "rating" {
			t.Errorf("rating %q: expected rating NormalizationError, got %v", word, err)
		}
	}
}

func TestNormalizerResolvesRelativeURL(t *testing.T) {
	n := newTestNormalizer(t)

	book, err := n.Normalize(&models.RawBook{
		Title: "t", PriceText: "£1.00", RatingText: "One",
		URL: "catalogue/a-book_1/index.html",
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := "http://books.toscrape.com/catalogue/a-book_1/index.html"
	if book.URL != want {
		t.Errorf("URL: got %q, want %q", book.URL, want)
	}

	abs := "http://elsewhere.example/catalogue/a-book_1/index.html"
	book, err = n.Normalize(&models.RawBook{
		Title: "t", PriceText: "£1.00", RatingText: "One", URL: abs,
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if book.URL != abs {
		t.Errorf("absolute URL must pass through: got %q", book.URL)
	}
}

func TestNormalizeAllDropsOnlyBadRecords(t *testing.T) {
	n := newTestNormalizer(t)

	raw := []*models.RawBook{
		{Title: "Good", PriceText: "£10.00", RatingText: "Four", URL: "a/index.html"},
		{Title: "Bad price", PriceText: "n/a", RatingText: "Four", URL: "b/index.html"},
		{Title: "Bad rating", PriceText: "£10.00", RatingText: "Eleven", URL: "c/index.html"},
		{Title: "Also good", PriceText: "Â£9.99", RatingText: "One", URL: "d/index.html"},
	}

	books := n.NormalizeAll(raw)
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if books[0].Title != "Good" || books[1].Title != "Also good" {
		t.Errorf("wrong records survived: %q, %q", books[0].Title, books[1].Title)
	}
}
