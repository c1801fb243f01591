package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finnpalmer/readtrack/internal/models"
)

func (s *Store) GetReader(id string) (models.Reader, error) {
	row := s.db.QueryRow(
		`SELECT id, display_name, full_name, created_at FROM readers WHERE id = ?`, id)
	return scanReader(row.Scan)
}

func (s *Store) GetAllReaders() ([]models.Reader, error) {
	rows, err := s.db.Query(
		`SELECT id, display_name, full_name, created_at FROM readers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readers []models.Reader
	for rows.Next() {
		r, err := scanReader(rows.Scan)
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}

	return readers, rows.Err()
}

func (s *Store) PutReader(reader models.Reader) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO readers (id, display_name, full_name, created_at)
		VALUES (?, ?, ?, ?)`,
		reader.ID, reader.DisplayName, nullString(reader.FullName),
		reader.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func scanReader(scan func(...any) error) (models.Reader, error) {
	var (
		r         models.Reader
		fullName  sql.NullString
		createdAt string
	)
	if err := scan(&r.ID, &r.DisplayName, &fullName, &createdAt); err != nil {
		return models.Reader{}, err
	}
	r.FullName = fullName.String

	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Reader{}, fmt.Errorf("invalid created_at for reader %s: %w", r.ID, err)
	}
	return r, nil
}
