package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/models"
)

// Store is the on-disk document layout of the JSON backend. Logs and batches
// are keyed by reader, then by their own id, mirroring the per-reader
// collections of the database backends.
type Store struct {
	Version int                                      `json:"version"`
	Readers map[string]models.Reader                 `json:"readers"`
	Logs    map[string]map[string]models.LogEntry    `json:"logs"`    // readerID -> logID -> entry
	Batches map[string]map[string]models.ImportBatch `json:"batches"` // readerID -> batchID -> batch
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Readers: make(map[string]models.Reader),
		Logs:    make(map[string]map[string]models.LogEntry),
		Batches: make(map[string]map[string]models.ImportBatch),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'readtrack init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Readers == nil {
		s.store.Readers = make(map[string]models.Reader)
	}
	if s.store.Logs == nil {
		s.store.Logs = make(map[string]map[string]models.LogEntry)
	}
	if s.store.Batches == nil {
		s.store.Batches = make(map[string]map[string]models.ImportBatch)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

// Log methods

func (s *JSONStore) AddLog(readerID string, entry models.LogEntry) (string, error) {
	entry.ReaderID = readerID
	if s.store.Logs[readerID] == nil {
		s.store.Logs[readerID] = make(map[string]models.LogEntry)
	}
	s.store.Logs[readerID][entry.ID] = entry
	if err := s.save(); err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (s *JSONStore) GetAllLogs(readerID string) ([]models.LogEntry, error) {
	logs := s.store.Logs[readerID]
	entries := make([]models.LogEntry, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, entry)
	}
	return entries, nil
}

// Import batch methods

func (s *JSONStore) PutImportBatch(readerID string, batch models.ImportBatch) error {
	batch.ReaderID = readerID
	if s.store.Batches[readerID] == nil {
		s.store.Batches[readerID] = make(map[string]models.ImportBatch)
	}
	s.store.Batches[readerID][batch.BatchID] = batch
	return s.save()
}

func (s *JSONStore) GetImportBatches(readerID string) ([]models.ImportBatch, error) {
	stored := s.store.Batches[readerID]
	batches := make([]models.ImportBatch, 0, len(stored))
	for _, b := range stored {
		batches = append(batches, b)
	}
	return batches, nil
}

func (s *JSONStore) DeleteImportBatch(readerID, batchID string) error {
	if s.store.Batches[readerID] != nil {
		delete(s.store.Batches[readerID], batchID)
	}
	return s.save()
}

// Reader methods

func (s *JSONStore) GetReader(id string) (models.Reader, error) {
	reader, ok := s.store.Readers[id]
	if !ok {
		return models.Reader{}, ErrNotFound
	}
	return reader, nil
}

func (s *JSONStore) GetAllReaders() ([]models.Reader, error) {
	readers := make([]models.Reader, 0, len(s.store.Readers))
	for _, r := range s.store.Readers {
		readers = append(readers, r)
	}
	return readers, nil
}

func (s *JSONStore) PutReader(reader models.Reader) error {
	s.store.Readers[reader.ID] = reader
	return s.save()
}

// Write batches

type jsonBatchOp struct {
	readerID string
	entry    models.LogEntry
	logID    string
	isDelete bool
}

// jsonWriteBatch stages log writes in memory and persists them with a single
// save on Commit.
type jsonWriteBatch struct {
	store *JSONStore
	ops   []jsonBatchOp
}

func (s *JSONStore) NewWriteBatch() WriteBatch {
	return &jsonWriteBatch{store: s}
}

func (b *jsonWriteBatch) SetLog(readerID string, entry models.LogEntry) {
	entry.ReaderID = readerID
	b.ops = append(b.ops, jsonBatchOp{readerID: readerID, entry: entry})
}

func (b *jsonWriteBatch) DeleteLog(readerID, logID string) {
	b.ops = append(b.ops, jsonBatchOp{readerID: readerID, logID: logID, isDelete: true})
}

func (b *jsonWriteBatch) Len() int {
	return len(b.ops)
}

func (b *jsonWriteBatch) Commit() error {
	if len(b.ops) > constants.MaxBatchOps {
		return fmt.Errorf("write batch has %d operations, maximum is %d", len(b.ops), constants.MaxBatchOps)
	}
	if len(b.ops) == 0 {
		return nil
	}

	for _, op := range b.ops {
		if op.isDelete {
			if b.store.store.Logs[op.readerID] != nil {
				delete(b.store.store.Logs[op.readerID], op.logID)
			}
			continue
		}
		if b.store.store.Logs[op.readerID] == nil {
			b.store.store.Logs[op.readerID] = make(map[string]models.LogEntry)
		}
		b.store.store.Logs[op.readerID][op.entry.ID] = op.entry
	}

	if err := b.store.save(); err != nil {
		return err
	}

	b.ops = nil
	return nil
}
