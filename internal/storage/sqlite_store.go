package storage

import (
	"database/sql"
	"errors"

	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage/sqlite"
)

// SQLiteStore wraps sqlite.Store behind the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
}

// NewSQLiteStore creates a new SQLite store backed by the file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

// Lifecycle methods
func (s *SQLiteStore) Init() error           { return s.store.Init() }
func (s *SQLiteStore) Load() error           { return s.store.Load() }
func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }

// Log methods
func (s *SQLiteStore) AddLog(readerID string, entry models.LogEntry) (string, error) {
	return s.store.AddLog(readerID, entry)
}
func (s *SQLiteStore) GetAllLogs(readerID string) ([]models.LogEntry, error) {
	return s.store.GetAllLogs(readerID)
}
func (s *SQLiteStore) NewWriteBatch() WriteBatch { return s.store.NewWriteBatch() }

// Import batch methods
func (s *SQLiteStore) PutImportBatch(readerID string, batch models.ImportBatch) error {
	return s.store.PutImportBatch(readerID, batch)
}
func (s *SQLiteStore) GetImportBatches(readerID string) ([]models.ImportBatch, error) {
	return s.store.GetImportBatches(readerID)
}
func (s *SQLiteStore) DeleteImportBatch(readerID, batchID string) error {
	return s.store.DeleteImportBatch(readerID, batchID)
}

// Reader methods
func (s *SQLiteStore) GetReader(id string) (models.Reader, error) {
	r, err := s.store.GetReader(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reader{}, ErrNotFound
	}
	return r, err
}
func (s *SQLiteStore) GetAllReaders() ([]models.Reader, error) { return s.store.GetAllReaders() }
func (s *SQLiteStore) PutReader(reader models.Reader) error    { return s.store.PutReader(reader) }
