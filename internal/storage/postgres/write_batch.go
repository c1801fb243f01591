package postgres

import (
	"fmt"

	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/models"
)

type batchOp struct {
	readerID string
	entry    models.LogEntry
	logID    string
	isDelete bool
}

// WriteBatch applies all queued ops in one transaction. It satisfies
// storage.WriteBatch.
type WriteBatch struct {
	store *Store
	ops   []batchOp
}

func (s *Store) NewWriteBatch() *WriteBatch {
	return &WriteBatch{store: s}
}

func (b *WriteBatch) SetLog(readerID string, entry models.LogEntry) {
	entry.ReaderID = readerID
	b.ops = append(b.ops, batchOp{readerID: readerID, entry: entry})
}

func (b *WriteBatch) DeleteLog(readerID, logID string) {
	b.ops = append(b.ops, batchOp{readerID: readerID, logID: logID, isDelete: true})
}

func (b *WriteBatch) Len() int {
	return len(b.ops)
}

func (b *WriteBatch) Commit() error {
	if len(b.ops) > constants.MaxBatchOps {
		return fmt.Errorf("write batch has %d operations, maximum is %d", len(b.ops), constants.MaxBatchOps)
	}
	if len(b.ops) == 0 {
		return nil
	}

	tx, err := b.store.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, op := range b.ops {
		if op.isDelete {
			err = execDeleteLog(tx, op.readerID, op.logID)
		} else {
			err = execInsertLog(tx, op.entry)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply batch operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	b.ops = nil
	return nil
}
