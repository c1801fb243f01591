package storage

import (
	"database/sql"
	"errors"

	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage/postgres"
)

// PostgresStore wraps postgres.Store behind the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

// NewPostgresStore creates a new Postgres store for the given connection
// string. The string is validated lazily, on Init or Load.
func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{store: postgres.NewStore(connStr)}
}

// Lifecycle methods
func (s *PostgresStore) Init() error           { return s.store.Init() }
func (s *PostgresStore) Load() error           { return s.store.Load() }
func (s *PostgresStore) Close() error          { return s.store.Close() }
func (s *PostgresStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for diagnostics.
func (s *PostgresStore) GetDB() *sql.DB { return s.store.GetDB() }

// Log methods
func (s *PostgresStore) AddLog(readerID string, entry models.LogEntry) (string, error) {
	return s.store.AddLog(readerID, entry)
}
func (s *PostgresStore) GetAllLogs(readerID string) ([]models.LogEntry, error) {
	return s.store.GetAllLogs(readerID)
}
func (s *PostgresStore) NewWriteBatch() WriteBatch { return s.store.NewWriteBatch() }

// Import batch methods
func (s *PostgresStore) PutImportBatch(readerID string, batch models.ImportBatch) error {
	return s.store.PutImportBatch(readerID, batch)
}
func (s *PostgresStore) GetImportBatches(readerID string) ([]models.ImportBatch, error) {
	return s.store.GetImportBatches(readerID)
}
func (s *PostgresStore) DeleteImportBatch(readerID, batchID string) error {
	return s.store.DeleteImportBatch(readerID, batchID)
}

// Reader methods
func (s *PostgresStore) GetReader(id string) (models.Reader, error) {
	r, err := s.store.GetReader(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reader{}, ErrNotFound
	}
	return r, err
}
func (s *PostgresStore) GetAllReaders() ([]models.Reader, error) { return s.store.GetAllReaders() }
func (s *PostgresStore) PutReader(reader models.Reader) error    { return s.store.PutReader(reader) }
