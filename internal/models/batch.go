package models

import "time"

// ImportBatch summarizes one bulk-ingestion run. It is written once, after
// the run's log entries have all been committed; a run that died half-way is
// recognizable by log entries referencing a batch id with no matching
// ImportBatch document.
type ImportBatch struct {
	BatchID     string     `json:"batch_id"`
	ReaderID    string     `json:"reader_id"`
	Source      Source     `json:"source"`
	TotalRows   int        `json:"total_rows"`
	ErrorRows   int        `json:"error_rows"`
	Totals      TypeTotals `json:"totals"`
	Fingerprint uint64     `json:"fingerprint,omitempty"`
	ProcessedAt time.Time  `json:"processed_at"`
	CreatedBy   string     `json:"created_by"`
}
