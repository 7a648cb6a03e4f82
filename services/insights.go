package services

import (
	"fmt"
	"sort"
	"strings"

	"books-scraper/models"
	"books-scraper/utils"
)

// InsightService computes read-only aggregates over a normalized book set.
// It never mutates its input and works equally over the in-memory catalog
// or records fetched back from the store.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Summary computes aggregate price and rating figures. An empty input
// yields a zero-count report; no field is ever NaN.
func (s *InsightService) Summary(books []*models.Book) *models.SummaryStats {
	stats := &models.SummaryStats{}
	if len(books) == 0 {
		return stats
	}

	stats.Count = len(books)
	stats.MinPrice = books[0].Price
	stats.MaxPrice = books[0].Price

	var priceTotal, ratingTotal float64
	for _, b := range books {
		priceTotal += b.Price
		ratingTotal += float64(b.Rating)
		if b.Price < stats.MinPrice {
			stats.MinPrice = b.Price
		}
		if b.Price > stats.MaxPrice {
			stats.MaxPrice = b.Price
		}
	}

	stats.AvgPrice = round2(priceTotal / float64(len(books)))
	stats.AvgRating = round2(ratingTotal / float64(len(books)))
	return stats
}

// BestValue returns up to n books with rating >= minRating, cheapest first.
// The sort is stable, so equally priced books keep their input order. Fewer
// than n matches returns what there is.
func (s *InsightService) BestValue(books []*models.Book, minRating, n int) []*models.Book {
	var matched []*models.Book
	for _, b := range books {
		if b.Rating >= minRating {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Price < matched[j].Price
	})

	if len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

// Print renders the summary block after a run.
func (s *InsightService) Print(stats *models.SummaryStats, best []*models.Book) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📚 BOOK CATALOG INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Summary\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total books : \033[1m%d\033[0m\n", stats.Count)
	if stats.Count > 0 {
		fmt.Printf("  Average price : \033[1;32m£%.2f\033[0m\n", stats.AvgPrice)
		fmt.Printf("  Minimum price : \033[1;32m£%.2f\033[0m\n", stats.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m£%.2f\033[0m\n", stats.MaxPrice)
		fmt.Printf("  Average rating: \033[1;32m%.2f ★\033[0m\n", stats.AvgRating)
	} else {
		fmt.Printf("  No data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Best Value (high rating, low price)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(best) == 0 {
		fmt.Printf("  No matching books\n")
	} else {
		for i, b := range best {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m£%.2f\033[0m  %d ★\n",
				i+1, truncate(b.Title, 38), b.Price, b.Rating)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
