package importer

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnpalmer/readtrack/internal/constants"
	"github.com/finnpalmer/readtrack/internal/ingest"
	"github.com/finnpalmer/readtrack/internal/models"
	"github.com/finnpalmer/readtrack/internal/storage"
)

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "readtrack.json"))
	require.NoError(t, store.Init())
	return store
}

func testEntry(row int, date string, lt models.LogType, value float64) Entry {
	return Entry{Record: ingest.Record{
		BookTitle:     "The Phantom Tollbooth",
		LogDateString: date,
		LogType:       lt,
		Value:         value,
		Row:           row,
	}}
}

func TestRunImportsEntries(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	entries := []Entry{
		testEntry(2, "2024-03-05", models.LogTypePages, 42),
		testEntry(3, "2024-03-06", models.LogTypeMinutes, 20),
		testEntry(4, "2024-03-06", models.LogTypeBooks, 1),
	}
	warnings := []ingest.Warning{{Row: 5, Reason: "missing value"}}

	summary, err := im.Run(entries, warnings, Options{
		ReaderID:  "milo",
		Source:    models.Source{Name: "csv-import", Details: "logs.csv"},
		CreatedBy: "cli",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)

	// Batch ids are derived from the run time so they sort by import order
	var millis int64
	_, err = fmt.Sscanf(summary.BatchID, "import-%d", &millis)
	require.NoError(t, err)
	assert.Positive(t, millis)
	assert.Equal(t, 42.0, summary.Totals.Pages)
	assert.Equal(t, 20.0, summary.Totals.Minutes)
	assert.Equal(t, 1.0, summary.Totals.Books)

	logs, err := store.GetAllLogs("milo")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for _, entry := range logs {
		assert.Equal(t, summary.BatchID, entry.ImportBatchID)
		assert.Equal(t, "milo", entry.ReaderID)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, entry.LogDateString, entry.LogDate.UTC().Format(constants.DateFormat))
	}

	batches, err := store.GetImportBatches("milo")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, summary.BatchID, batches[0].BatchID)
	assert.Equal(t, 4, batches[0].TotalRows)
	assert.Equal(t, 1, batches[0].ErrorRows)
	assert.NotZero(t, batches[0].Fingerprint)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	summary, err := im.Run(
		[]Entry{testEntry(2, "2024-03-05", models.LogTypePages, 42)},
		nil,
		Options{ReaderID: "milo", DryRun: true})
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Imported)

	logs, err := store.GetAllLogs("milo")
	require.NoError(t, err)
	assert.Empty(t, logs)

	batches, err := store.GetImportBatches("milo")
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestRunFreshClearsExisting(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	_, err := im.Run(
		[]Entry{
			testEntry(2, "2024-01-01", models.LogTypePages, 10),
			testEntry(3, "2024-01-02", models.LogTypePages, 10),
		},
		nil,
		Options{ReaderID: "milo"})
	require.NoError(t, err)

	summary, err := im.Run(
		[]Entry{testEntry(2, "2024-03-05", models.LogTypeMinutes, 30)},
		nil,
		Options{ReaderID: "milo", Fresh: true})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Cleared)

	logs, err := store.GetAllLogs("milo")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.LogTypeMinutes, logs[0].LogType)

	// Only the new run's batch document remains
	batches, err := store.GetImportBatches("milo")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, summary.BatchID, batches[0].BatchID)
}

func TestRunChunksLargeImports(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	var entries []Entry
	for i := 0; i < constants.MaxBatchOps+25; i++ {
		e := testEntry(i+2, "2024-03-05", models.LogTypePages, 1)
		e.BookTitle = fmt.Sprintf("Book %d", i)
		entries = append(entries, e)
	}

	summary, err := im.Run(entries, nil, Options{ReaderID: "milo"})
	require.NoError(t, err)
	assert.Equal(t, constants.MaxBatchOps+25, summary.Imported)

	logs, err := store.GetAllLogs("milo")
	require.NoError(t, err)
	assert.Len(t, logs, constants.MaxBatchOps+25)
}

func TestRunRejectsInvalidDate(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	_, err := im.Run(
		[]Entry{testEntry(2, "March 5, 2024", models.LogTypePages, 42)},
		nil,
		Options{ReaderID: "milo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestFindDuplicate(t *testing.T) {
	store := newTestStore(t)
	im := New(store)

	entries := []Entry{
		testEntry(2, "2024-03-05", models.LogTypePages, 42),
		testEntry(3, "2024-03-06", models.LogTypeMinutes, 20),
	}

	summary, err := im.Run(entries, nil, Options{ReaderID: "milo"})
	require.NoError(t, err)

	dup, err := im.FindDuplicate("milo", entries)
	require.NoError(t, err)
	assert.Equal(t, summary.BatchID, dup)

	dup, err = im.FindDuplicate("milo", entries[:1])
	require.NoError(t, err)
	assert.Empty(t, dup)
}
