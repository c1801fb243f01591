package storage

import (
	"errors"

	"github.com/finnpalmer/readtrack/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Provider is the storage contract shared by the SQLite, Postgres and JSON
// backends. All methods operate on the reader-scoped document model: log
// entries and import batches always belong to exactly one reader.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Logs
	AddLog(readerID string, entry models.LogEntry) (string, error)
	GetAllLogs(readerID string) ([]models.LogEntry, error)

	// Write batches
	NewWriteBatch() WriteBatch

	// Import batches
	PutImportBatch(readerID string, batch models.ImportBatch) error
	GetImportBatches(readerID string) ([]models.ImportBatch, error)
	DeleteImportBatch(readerID, batchID string) error

	// Readers
	GetReader(id string) (models.Reader, error)
	GetAllReaders() ([]models.Reader, error)
	PutReader(reader models.Reader) error
}

// WriteBatch accumulates log-entry writes and deletes and applies them in a
// single transaction on Commit. A batch holding more than
// constants.MaxBatchOps operations refuses to commit; callers chunk their
// work and commit each chunk before starting the next.
type WriteBatch interface {
	SetLog(readerID string, entry models.LogEntry)
	DeleteLog(readerID, logID string)
	Len() int
	Commit() error
}
