package models

// RawBook holds unprocessed scraped data exactly as it appears in the page
// markup. This is written to CSV before any normalization.
type RawBook struct {
	Title        string `json:"title"`
	PriceText    string `json:"price"`
	Availability string `json:"availability"`
	RatingText   string `json:"rating"`
	URL          string `json:"url"`
	Page         int    `json:"page"`
}

// Book is the normalized, validated record ready for storage.
// ID is assigned by the store at insert time and is zero until then.
type Book struct {
	ID           int64   `json:"id,omitempty"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	Availability string  `json:"availability"`
	URL          string  `json:"url"`
}

// SummaryStats holds the aggregate figures computed over a book set.
// Count 0 means all other fields are zero.
type SummaryStats struct {
	Count     int
	AvgPrice  float64
	MinPrice  float64
	MaxPrice  float64
	AvgRating float64
}

// RunResult reports the outcome of one ingestion run.
type RunResult struct {
	PagesFetched int
	Seen         int // normalized records produced by the run
	Inserted     int // records newly stored (post-dedup)
}
