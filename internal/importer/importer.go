package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/ingest"
	"github.com/finnpalmer/readtrack/internal/logger"
	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage"
)

// Entry is one record bound for the store. SourceName, when set, overrides
// the run-level source for that record (CSV rows may carry their own).
type Entry struct {
	ingest.Record
	SourceName string
}

// Options configures a single import run.
type Options struct {
	ReaderID string
	Source   models.Source
	// Fresh clears the reader's existing logs and import batches before
	// importing. Clearing and importing are separate runs against the
	// store; a crash in between leaves the reader empty, never mixed.
	Fresh     bool
	DryRun    bool
	CreatedBy string
}

// Summary reports what an import run did (or, for a dry run, would do).
type Summary struct {
	BatchID  string
	Imported int
	Skipped  int
	Cleared  int
	Totals   models.TypeTotals
	DryRun   bool
}

// Importer streams validated records into the store in bounded write
// batches and records a batch summary document once all entries are
// committed.
type Importer struct {
	store storage.Provider
}

func New(store storage.Provider) *Importer {
	return &Importer{store: store}
}

// Run imports entries for opts.ReaderID. Entries are committed in chunks of
// at most the store's batch limit; each chunk commits before the next is
// started. The ImportBatch summary is written last, so a run that died
// half-way is detectable: its log entries reference a batch id with no
// matching summary document.
func (im *Importer) Run(entries []Entry, warnings []ingest.Warning, opts Options) (Summary, error) {
	now := time.Now().UTC()
	summary := Summary{
		// Time-derived so batch ids sort by run order
		BatchID: fmt.Sprintf("import-%d", now.UnixMilli()),
		Skipped: len(warnings),
		DryRun:  opts.DryRun,
	}

	for _, w := range warnings {
		logger.Warn("skipped row", "reader", opts.ReaderID, "detail", w.String())
	}

	for _, e := range entries {
		summary.Totals.Add(e.LogType, e.Value)
	}
	summary.Imported = len(entries)

	if opts.DryRun {
		return summary, nil
	}

	if opts.Fresh {
		cleared, err := im.clear(opts.ReaderID)
		if err != nil {
			return summary, fmt.Errorf("failed to clear existing logs: %w", err)
		}
		summary.Cleared = cleared
	}

	batch := im.store.NewWriteBatch()
	for _, e := range entries {
		entry, err := im.buildLogEntry(e, summary.BatchID, now, opts)
		if err != nil {
			return summary, err
		}
		batch.SetLog(opts.ReaderID, entry)

		if batch.Len() >= constants.MaxBatchOps {
			if err := batch.Commit(); err != nil {
				return summary, fmt.Errorf("failed to commit import batch: %w", err)
			}
			batch = im.store.NewWriteBatch()
		}
	}
	if err := batch.Commit(); err != nil {
		return summary, fmt.Errorf("failed to commit import batch: %w", err)
	}

	fingerprint, err := hashstructure.Hash(entries, hashstructure.FormatV2, nil)
	if err != nil {
		// A missing fingerprint only weakens duplicate detection.
		logger.Warn("failed to fingerprint import", "err", err)
	}

	record := models.ImportBatch{
		BatchID:     summary.BatchID,
		ReaderID:    opts.ReaderID,
		Source:      opts.Source,
		TotalRows:   len(entries) + len(warnings),
		ErrorRows:   len(warnings),
		Totals:      summary.Totals,
		Fingerprint: fingerprint,
		ProcessedAt: now,
		CreatedBy:   opts.CreatedBy,
	}
	if err := im.store.PutImportBatch(opts.ReaderID, record); err != nil {
		return summary, fmt.Errorf("failed to record import batch: %w", err)
	}

	logger.Info("import complete",
		"reader", opts.ReaderID, "batch", summary.BatchID,
		"imported", summary.Imported, "skipped", summary.Skipped)

	return summary, nil
}

// FindDuplicate reports the id of a prior batch whose fingerprint matches
// entries, or empty when none does.
func (im *Importer) FindDuplicate(readerID string, entries []Entry) (string, error) {
	fingerprint, err := hashstructure.Hash(entries, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	batches, err := im.store.GetImportBatches(readerID)
	if err != nil {
		return "", err
	}
	for _, b := range batches {
		if b.Fingerprint != 0 && b.Fingerprint == fingerprint {
			return b.BatchID, nil
		}
	}
	return "", nil
}

func (im *Importer) buildLogEntry(e Entry, batchID string, now time.Time, opts Options) (models.LogEntry, error) {
	day, err := dates.ParseUTC(e.LogDateString)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid date %q at row %d: %w", e.LogDateString, e.Row, err)
	}

	source := opts.Source
	if e.SourceName != "" {
		source.Name = e.SourceName
	}

	return models.LogEntry{
		ID:              uuid.NewString(),
		ReaderID:        opts.ReaderID,
		LogDate:         day,
		LogDateString:   e.LogDateString,
		LogType:         e.LogType,
		Value:           e.Value,
		BookTitle:       e.BookTitle,
		BookAuthor:      e.BookAuthor,
		Source:          source,
		ImportBatchID:   batchID,
		ImportSourceRow: e.Row,
		CreatedAt:       now,
		CreatedBy:       opts.CreatedBy,
	}, nil
}

// clear removes every log entry and import batch document for readerID,
// committing deletes in bounded chunks.
func (im *Importer) clear(readerID string) (int, error) {
	logs, err := im.store.GetAllLogs(readerID)
	if err != nil {
		return 0, err
	}

	batch := im.store.NewWriteBatch()
	for _, entry := range logs {
		batch.DeleteLog(readerID, entry.ID)
		if batch.Len() >= constants.MaxBatchOps {
			if err := batch.Commit(); err != nil {
				return 0, err
			}
			batch = im.store.NewWriteBatch()
		}
	}
	if err := batch.Commit(); err != nil {
		return 0, err
	}

	existing, err := im.store.GetImportBatches(readerID)
	if err != nil {
		return 0, err
	}
	for _, b := range existing {
		if err := im.store.DeleteImportBatch(readerID, b.BatchID); err != nil {
			return 0, err
		}
	}

	logger.Info("cleared reader data", "reader", readerID, "logs", len(logs), "batches", len(existing))
	return len(logs), nil
}
