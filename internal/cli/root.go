package cli

import (
	"fmt"
	"strings"

	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage"
)

type Context struct {
	Store storage.Provider

	// CreatedBy is stamped on records written during this invocation.
	CreatedBy string
}

// LoadLogs fetches every log entry for readerID after validating the id.
// Reader ids are explicit on every command; there is no ambient default.
func (c *Context) LoadLogs(readerID string) ([]models.LogEntry, error) {
	if err := ValidateReaderID(readerID); err != nil {
		return nil, err
	}
	return c.Store.GetAllLogs(readerID)
}

// ValidateReaderID rejects empty or whitespace-only reader ids before any
// store I/O happens.
func ValidateReaderID(readerID string) error {
	if strings.TrimSpace(readerID) == "" {
		return fmt.Errorf("reader id must not be empty")
	}
	return nil
}
