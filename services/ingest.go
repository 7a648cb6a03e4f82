package services

import (
	"books-scraper/models"
	"books-scraper/storage"
	"books-scraper/utils"
)

// Collector is the pagination side of the pipeline, satisfied by the
// catalog scraper.
type Collector interface {
	Collect(maxPages int) ([]*models.RawBook, int, error)
}

// Ingestor runs one ingestion pass: collect raw records, dump them, then
// normalize, snapshot and store. It is the single entry point the
// presentation layer needs to trigger ingestion.
type Ingestor struct {
	collector  Collector
	normalizer *Normalizer
	store      storage.Store
	snapshot   *storage.Snapshot
	rawWriter  storage.RawWriter
	logger     *utils.Logger
}

// NewIngestor wires the pipeline together. snapshot and rawWriter may be
// nil to skip those outputs.
func NewIngestor(collector Collector, normalizer *Normalizer, store storage.Store,
	snapshot *storage.Snapshot, rawWriter storage.RawWriter, logger *utils.Logger) *Ingestor {
	return &Ingestor{
		collector:  collector,
		normalizer: normalizer,
		store:      store,
		snapshot:   snapshot,
		rawWriter:  rawWriter,
		logger:     logger,
	}
}

// IngestOutcome is the result handoff for asynchronous runs.
type IngestOutcome struct {
	Result  *models.RunResult
	Catalog []*models.Book
	Err     error
}

// Run executes one ingestion pass over up to maxPages pages and returns the
// run counters together with the normalized catalog the run produced. The
// catalog is an explicit value: callers hold it, nothing ambient does.
//
// A fetch failure mid-run truncates the page walk but is not fatal; records
// collected before the failure still flow through the rest of the pipeline.
func (ing *Ingestor) Run(maxPages int) (*models.RunResult, []*models.Book, error) {
	raw, pages, err := ing.collector.Collect(maxPages)
	if err != nil {
		ing.logger.Warn("[ingest] Run truncated after %d pages: %v", pages, err)
	}

	if ing.rawWriter != nil && len(raw) > 0 {
		if err := ing.rawWriter.WriteRaw(raw); err != nil {
			ing.logger.Warn("[ingest] Raw CSV dump failed: %v", err)
		}
	}

	catalog := ing.normalizer.NormalizeAll(raw)

	// An empty run keeps the previous snapshot so a fresh start can still
	// repopulate the catalog from it.
	if ing.snapshot != nil && len(catalog) > 0 {
		if err := ing.snapshot.Write(catalog); err != nil {
			ing.logger.Warn("[ingest] Snapshot write failed: %v", err)
		}
	}

	inserted, err := ing.store.InsertBatch(catalog)
	if err != nil {
		return nil, catalog, err
	}

	result := &models.RunResult{
		PagesFetched: pages,
		Seen:         len(catalog),
		Inserted:     inserted,
	}
	ing.logger.Info("[ingest] Run complete — pages: %d, seen: %d, inserted: %d",
		result.PagesFetched, result.Seen, result.Inserted)
	return result, catalog, nil
}

// RunAsync runs Run on a dedicated goroutine and delivers the outcome once
// on the returned channel. Callers wait on the channel instead of polling
// shared state.
func (ing *Ingestor) RunAsync(maxPages int) <-chan IngestOutcome {
	ch := make(chan IngestOutcome, 1)
	go func() {
		defer close(ch)
		result, catalog, err := ing.Run(maxPages)
		ch <- IngestOutcome{Result: result, Catalog: catalog, Err: err}
	}()
	return ch
}
