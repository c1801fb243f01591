package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnpalmer/readtrack/internal/models"
)

func TestParseCSVRoundTrip(t *testing.T) {
	input := "Date,Log Type,Log Value,Title,Author,Source\n" +
		"3/5/2024,Pages,42,The Borrowers,Mary Norton,school\n"

	res, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Warnings)

	rec := res.Records[0]
	assert.Equal(t, "2024-03-05", rec.LogDateString)
	assert.Equal(t, models.LogTypePages, rec.LogType)
	assert.Equal(t, float64(42), rec.Value)
	assert.Equal(t, "The Borrowers", rec.BookTitle)
	assert.Equal(t, "Mary Norton", rec.BookAuthor)
	assert.Equal(t, "school", rec.SourceName)
	assert.Equal(t, 2, rec.Row)
}

func TestParseCSVOptionalColumnsAbsent(t *testing.T) {
	input := "Date,Log Type,Log Value\n" +
		"12/31/2023,Minutes,20\n"

	res, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "2023-12-31", rec.LogDateString)
	assert.Empty(t, rec.BookTitle)
	assert.Empty(t, rec.BookAuthor)
}

func TestParseCSVBadRowsAreIsolated(t *testing.T) {
	input := "Date,Log Type,Log Value\n" +
		"3/5/2024,Pages,42\n" +
		"3/6/2024,Pages,not-a-number\n" +
		"3/7/2024,Chapters,10\n" +
		"13/1/2024,Minutes,15\n" +
		"3/8/2024,Minutes,-5\n" +
		"2/31/2024,Minutes,20\n" +
		"3/9/2024,Minutes,30\n"

	res, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "2024-03-05", res.Records[0].LogDateString)
	assert.Equal(t, "2024-03-09", res.Records[1].LogDateString)

	require.Len(t, res.Warnings, 5)
	// Warnings carry the 1-based row number (header is row 1)
	assert.Equal(t, 3, res.Warnings[0].Row)
	assert.Equal(t, 4, res.Warnings[1].Row)
	assert.Equal(t, 5, res.Warnings[2].Row)
	assert.Equal(t, 6, res.Warnings[3].Row)
	assert.Equal(t, 7, res.Warnings[4].Row)
}

func TestParseCSVFractionalValue(t *testing.T) {
	input := "Date,Log Type,Log Value\n" +
		"6/1/2024,Books,0.5\n"

	res, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 0.5, res.Records[0].Value)
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	input := "Date,Log Value\n3/5/2024,42\n"

	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Log Type")
}

func TestParseCSVEmptyBody(t *testing.T) {
	input := "Date,Log Type,Log Value\n"

	res, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Warnings)
}
