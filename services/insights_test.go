package services

import (
	"testing"

	"books-scraper/models"
	"books-scraper/utils"
)

func sampleBooks() []*models.Book {
	return []*models.Book{
		{Title: "A", Price: 15, Rating: 5, Availability: "In stock"},
		{Title: "B", Price: 10, Rating: 3, Availability: "In stock"},
		{Title: "C", Price: 18, Rating: 4, Availability: "In stock"},
	}
}

func TestSummaryStats(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	stats := svc.Summary(sampleBooks())

	if stats.Count != 3 {
		t.Errorf("Count: got %d, want 3", stats.Count)
	}
	if stats.AvgPrice != 14.33 {
		t.Errorf("AvgPrice: got %.2f, want 14.33", stats.AvgPrice)
	}
	if stats.MinPrice != 10 {
		t.Errorf("MinPrice: got %.2f, want 10", stats.MinPrice)
	}
	if stats.MaxPrice != 18 {
		t.Errorf("MaxPrice: got %.2f, want 18", stats.MaxPrice)
	}
	if stats.AvgRating != 4 {
		t.Errorf("AvgRating: got %.2f, want 4", stats.AvgRating)
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	stats := svc.Summary(nil)

	if stats.Count != 0 {
		t.Errorf("Count: got %d, want 0", stats.Count)
	}
	if stats.AvgPrice != 0 || stats.AvgRating != 0 {
		t.Errorf("empty input must yield zero averages, got %+v", stats)
	}
}

func TestBestValue(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	best := svc.BestValue(sampleBooks(), 4, 1)
	if len(best) != 1 {
		t.Fatalf("got %d books, want 1", len(best))
	}
	if best[0].Title != "A" {
		t.Errorf("best value: got %q, want %q (cheapest with rating >= 4)", best[0].Title, "A")
	}
}

func TestBestValueOrdering(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	best := svc.BestValue(sampleBooks(), 4, 5)
	if len(best) != 2 {
		t.Fatalf("got %d books, want 2", len(best))
	}
	if best[0].Title != "A" || best[1].Title != "C" {
		t.Errorf("order: got [%q, %q], want [A, C]", best[0].Title, best[1].Title)
	}
}

func TestBestValueNeverPads(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	if got := svc.BestValue(sampleBooks(), 5, 10); len(got) != 1 {
		t.Errorf("n beyond available: got %d, want 1", len(got))
	}
	if got := svc.BestValue(nil, 1, 3); len(got) != 0 {
		t.Errorf("empty input: got %d, want 0", len(got))
	}
}
