package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnpalmer/readtrack/internal/dates"
	"github.com/finnpalmer/readtrack/internal/models"
)

func TestParseLinesDateOnlyForm(t *testing.T) {
	lines := []string{
		"Some Title",
		"Some Author",
		"March 5, 2024 Minutes 30",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Warnings)

	rec := res.Records[0]
	assert.Equal(t, "Some Title", rec.BookTitle)
	assert.Equal(t, "Some Author", rec.BookAuthor)
	assert.Equal(t, "2024-03-05", rec.LogDateString)
	assert.Equal(t, models.LogTypeMinutes, rec.LogType)
	assert.Equal(t, float64(30), rec.Value)
}

func TestParseLinesCombinedFormCompletesTitle(t *testing.T) {
	// No buffered text: the prefix becomes the whole title
	lines := []string{
		"The Hobbit January 12, 2024 Pages 42",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "The Hobbit", rec.BookTitle)
	assert.Empty(t, rec.BookAuthor)
	assert.Equal(t, "2024-01-12", rec.LogDateString)
	assert.Equal(t, models.LogTypePages, rec.LogType)
	assert.Equal(t, float64(42), rec.Value)
}

func TestParseLinesCombinedFormCompletesAuthor(t *testing.T) {
	// Title already buffered: the prefix on the metadata line is the author
	lines := []string{
		"A Wrinkle in Time",
		"Madeleine L'Engle February 1, 2024 Minutes 25",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "A Wrinkle in Time", rec.BookTitle)
	assert.Equal(t, "Madeleine L'Engle", rec.BookAuthor)
	assert.Equal(t, "2024-02-01", rec.LogDateString)
}

func TestParseLinesWrappedTitle(t *testing.T) {
	// Three text lines before the metadata line: the first two are wrapped
	// title text, the last one (immediately before the date line) is the
	// author. Only the lookahead makes that distinction.
	lines := []string{
		"The Very Long Title of a",
		"Book That Wraps Across Lines",
		"Jane Novelist",
		"April 20, 2024 Pages 15",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "The Very Long Title of a Book That Wraps Across Lines", rec.BookTitle)
	assert.Equal(t, "Jane Novelist", rec.BookAuthor)
}

func TestParseLinesMultipleRecords(t *testing.T) {
	lines := []string{
		"First Book",
		"First Author",
		"March 1, 2024 Minutes 20",
		"Second Book",
		"Second Author",
		"March 2, 2024 Pages 33",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "First Book", res.Records[0].BookTitle)
	assert.Equal(t, "Second Book", res.Records[1].BookTitle)
	assert.Equal(t, "Second Author", res.Records[1].BookAuthor)
}

func TestParseLinesMalformedEntryDoesNotBleed(t *testing.T) {
	// The middle entry has an unknown log type word. It must be skipped with
	// a warning, and its buffered title/author must not leak into the
	// following record.
	lines := []string{
		"Good Book One",
		"Author One",
		"March 1, 2024 Minutes 20",
		"Broken Book",
		"Broken Author",
		"March 2, 2024 Chapters 7",
		"Good Book Two",
		"Author Two",
		"March 3, 2024 Pages 10",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 2)
	require.Len(t, res.Warnings, 1)

	assert.Equal(t, "Good Book One", res.Records[0].BookTitle)
	assert.Equal(t, "Good Book Two", res.Records[1].BookTitle)
	assert.Equal(t, "Author Two", res.Records[1].BookAuthor)
	assert.Contains(t, res.Warnings[0].Reason, "unknown log type")
}

func TestParseLinesMissingTitle(t *testing.T) {
	lines := []string{
		"March 5, 2024 Minutes 30",
	}

	res := ParseLines(lines)

	assert.Empty(t, res.Records)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Reason, "missing title")
}

func TestParseLinesUnknownMonth(t *testing.T) {
	lines := []string{
		"Some Book",
		"Smarch 5, 2024 Minutes 30",
	}

	res := ParseLines(lines)

	assert.Empty(t, res.Records)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Reason, "unknown month")
}

func TestParseLinesImpossibleCalendarDay(t *testing.T) {
	// A date whose day does not exist in its month must be caught here, as a
	// row warning; every record that leaves the parser must be storable
	lines := []string{
		"Bad Book",
		"Bad Author",
		"February 30, 2024 Minutes 30",
		"Good Book",
		"Good Author",
		"March 5, 2024 Minutes 30",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Reason, "February 30, 2024")

	// Whatever leaves the parser is storable
	rec := res.Records[0]
	assert.Equal(t, "Good Book", rec.BookTitle)
	_, err := dates.ParseUTC(rec.LogDateString)
	assert.NoError(t, err)
}

func TestParseLinesValueWithThousandsSeparator(t *testing.T) {
	lines := []string{
		"Long Book",
		"Patient Author",
		"June 30, 2024 Pages 1,234",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	assert.Equal(t, float64(1234), res.Records[0].Value)
}

func TestReadLinesFiltersBoilerplate(t *testing.T) {
	input := strings.Join([]string{
		"The Log",
		"Title & Author",
		"Some Title",
		"Some Author",
		"March 5, 2024 Minutes 30",
		"-- 1 of 3 --",
		"Page 2",
		"Summary - March 2024",
		"Books Completed: 2",
		"Your Beanstack site is in Sandbox mode",
		"",
		"   ",
	}, "\n")

	lines, err := ReadLines(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Some Title", "Some Author", "March 5, 2024 Minutes 30"}, lines)
}

func TestParseText(t *testing.T) {
	input := strings.Join([]string{
		"The Log",
		"Charlotte's Web",
		"E.B. White",
		"May 14, 2024 Minutes 45",
		"-- 1 of 1 --",
	}, "\n")

	res, err := ParseText(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Charlotte's Web", res.Records[0].BookTitle)
	assert.Equal(t, "E.B. White", res.Records[0].BookAuthor)
	assert.Equal(t, "2024-05-14", res.Records[0].LogDateString)
}

func TestParseLinesSingularTypeWords(t *testing.T) {
	lines := []string{
		"Short Story",
		"Quick Author",
		"July 4, 2024 Book 1",
	}

	res := ParseLines(lines)

	require.Len(t, res.Records, 1)
	assert.Equal(t, models.LogTypeBooks, res.Records[0].LogType)
}
