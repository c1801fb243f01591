package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finnpalmer/readtrack/internal/models"
)

const logColumns = `id, reader_id, log_date, log_date_string, log_type, value,
       book_title, book_author, source_name, source_details,
       import_batch_id, import_source_row, created_at, created_by`

func (s *Store) AddLog(readerID string, entry models.LogEntry) (string, error) {
	entry.ReaderID = readerID
	if err := execInsertLog(s.db, entry); err != nil {
		return "", fmt.Errorf("failed to insert log: %w", err)
	}
	return entry.ID, nil
}

func (s *Store) GetAllLogs(readerID string) ([]models.LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logColumns+` FROM logs WHERE reader_id = ?`, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// execer covers both *sql.DB and *sql.Tx so batch commits reuse the same
// insert statement as single-row adds.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func execInsertLog(e execer, entry models.LogEntry) error {
	_, err := e.Exec(`
		INSERT OR REPLACE INTO logs (
			id, reader_id, log_date, log_date_string, log_type, value,
			book_title, book_author, source_name, source_details,
			import_batch_id, import_source_row, created_at, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ReaderID,
		entry.LogDate.UTC().Format(time.RFC3339), entry.LogDateString,
		string(entry.LogType), entry.Value,
		nullString(entry.BookTitle), nullString(entry.BookAuthor),
		entry.Source.Name, nullString(entry.Source.Details),
		nullString(entry.ImportBatchID), nullInt(entry.ImportSourceRow),
		entry.CreatedAt.UTC().Format(time.RFC3339), nullString(entry.CreatedBy),
	)
	return err
}

func execDeleteLog(e execer, readerID, logID string) error {
	_, err := e.Exec(`DELETE FROM logs WHERE reader_id = ? AND id = ?`, readerID, logID)
	return err
}

func scanLog(rows *sql.Rows) (models.LogEntry, error) {
	var (
		entry                                               models.LogEntry
		logDate, createdAt, logType                         string
		bookTitle, bookAuthor, sourceDetails, batchID, user sql.NullString
		sourceRow                                           sql.NullInt64
	)

	err := rows.Scan(
		&entry.ID, &entry.ReaderID, &logDate, &entry.LogDateString,
		&logType, &entry.Value,
		&bookTitle, &bookAuthor, &entry.Source.Name, &sourceDetails,
		&batchID, &sourceRow, &createdAt, &user,
	)
	if err != nil {
		return models.LogEntry{}, err
	}

	entry.LogType = models.LogType(logType)
	entry.BookTitle = bookTitle.String
	entry.BookAuthor = bookAuthor.String
	entry.Source.Details = sourceDetails.String
	entry.ImportBatchID = batchID.String
	entry.ImportSourceRow = int(sourceRow.Int64)
	entry.CreatedBy = user.String

	if entry.LogDate, err = time.Parse(time.RFC3339, logDate); err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid log_date for log %s: %w", entry.ID, err)
	}
	if entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid created_at for log %s: %w", entry.ID, err)
	}

	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
