package main

import (
	"fmt"
	"os"

	"books-scraper/config"
	"books-scraper/scraper/books"
	"books-scraper/services"
	"books-scraper/storage"
	"books-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Book Catalog Scraping System starting ===")
	logger.Info("Config — base: %s | pages: %d | store: %s | timeout: %dms",
		cfg.BaseURL, cfg.PagesToScrape, cfg.StoreDriver, cfg.RequestTimeoutMs)

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to open store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Every process start begins from a clean store; the JSON snapshot is
	// what carries data across restarts.
	if err := store.Reset(); err != nil {
		logger.Error("Store reset failed: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	snapshot := storage.NewSnapshot(cfg.SnapshotPath)

	normalizer, err := services.NewNormalizer(cfg.BaseURL, logger)
	if err != nil {
		logger.Error("Failed to create normalizer: %v", err)
		os.Exit(1)
	}

	// Repopulate the catalog from the last snapshot so queries have data
	// even if this run comes up empty.
	previous, err := snapshot.Load()
	if err != nil {
		logger.Warn("Could not load previous snapshot: %v", err)
	} else if len(previous) > 0 {
		logger.Info("Loaded %d records from previous snapshot", len(previous))
	}

	scraper := books.New(cfg, logger)
	ingestor := services.NewIngestor(scraper, normalizer, store, snapshot, csvWriter, logger)

	result, catalog, err := ingestor.Run(cfg.PagesToScrape)
	if err != nil {
		logger.Error("Ingestion failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Ingested %d records (%d new) across %d pages",
		result.Seen, result.Inserted, result.PagesFetched)

	if len(catalog) == 0 {
		if len(previous) == 0 {
			logger.Error("No records scraped and no snapshot to fall back on. Exiting.")
			os.Exit(1)
		}
		logger.Warn("Run produced no records — falling back to snapshot catalog")
		catalog = previous
	}

	insightSvc := services.NewInsightService(logger)
	stats := insightSvc.Summary(catalog)
	best := insightSvc.BestValue(catalog, cfg.MinRating, cfg.BestValueN)
	insightSvc.Print(stats, best)

	fmt.Printf("  Done. Raw CSV → %s | Snapshot → %s | Store → %s\n\n",
		cfg.CSVOutputPath, cfg.SnapshotPath, cfg.StoreDriver)
}

func openStore(cfg *config.Config, logger *utils.Logger) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return storage.NewPostgresStore(cfg.DSN(), logger)
	default:
		return storage.NewSQLiteStore(cfg.SQLitePath(), logger)
	}
}
