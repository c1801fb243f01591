package postgres

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/finnpalmer/readtrack/internal/models"
)

func (s *Store) PutImportBatch(readerID string, batch models.ImportBatch) error {
	batch.ReaderID = readerID

	// uint64 fingerprints can exceed the signed integer range, so they are
	// stored as text.
	var fingerprint sql.NullString
	if batch.Fingerprint != 0 {
		fingerprint = sql.NullString{String: strconv.FormatUint(batch.Fingerprint, 10), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO import_batches (
			batch_id, reader_id, source_name, source_details,
			total_rows, error_rows, total_minutes, total_pages, total_books,
			fingerprint, processed_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (batch_id) DO UPDATE SET
			reader_id = EXCLUDED.reader_id,
			source_name = EXCLUDED.source_name,
			source_details = EXCLUDED.source_details,
			total_rows = EXCLUDED.total_rows,
			error_rows = EXCLUDED.error_rows,
			total_minutes = EXCLUDED.total_minutes,
			total_pages = EXCLUDED.total_pages,
			total_books = EXCLUDED.total_books,
			fingerprint = EXCLUDED.fingerprint,
			processed_at = EXCLUDED.processed_at,
			created_by = EXCLUDED.created_by`,
		batch.BatchID, batch.ReaderID,
		batch.Source.Name, nullString(batch.Source.Details),
		batch.TotalRows, batch.ErrorRows,
		batch.Totals.Minutes, batch.Totals.Pages, batch.Totals.Books,
		fingerprint, batch.ProcessedAt.UTC().Format(time.RFC3339),
		nullString(batch.CreatedBy),
	)
	return err
}

func (s *Store) GetImportBatches(readerID string) ([]models.ImportBatch, error) {
	rows, err := s.db.Query(`
		SELECT batch_id, reader_id, source_name, source_details,
		       total_rows, error_rows, total_minutes, total_pages, total_books,
		       fingerprint, processed_at, created_by
		FROM import_batches WHERE reader_id = $1
		ORDER BY processed_at`, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []models.ImportBatch
	for rows.Next() {
		var (
			b                                models.ImportBatch
			processedAt                      string
			sourceDetails, fingerprint, user sql.NullString
		)
		err := rows.Scan(
			&b.BatchID, &b.ReaderID, &b.Source.Name, &sourceDetails,
			&b.TotalRows, &b.ErrorRows,
			&b.Totals.Minutes, &b.Totals.Pages, &b.Totals.Books,
			&fingerprint, &processedAt, &user,
		)
		if err != nil {
			return nil, err
		}

		b.Source.Details = sourceDetails.String
		b.CreatedBy = user.String
		if fingerprint.Valid {
			if b.Fingerprint, err = strconv.ParseUint(fingerprint.String, 10, 64); err != nil {
				return nil, fmt.Errorf("invalid fingerprint for batch %s: %w", b.BatchID, err)
			}
		}
		if b.ProcessedAt, err = time.Parse(time.RFC3339, processedAt); err != nil {
			return nil, fmt.Errorf("invalid processed_at for batch %s: %w", b.BatchID, err)
		}

		batches = append(batches, b)
	}

	return batches, rows.Err()
}

func (s *Store) DeleteImportBatch(readerID, batchID string) error {
	_, err := s.db.Exec(
		`DELETE FROM import_batches WHERE reader_id = $1 AND batch_id = $2`,
		readerID, batchID)
	return err
}
