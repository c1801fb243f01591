package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/finnpalmer/readtrack/internal/logger"
	"github.com/finnpalmer/readtrack/internal/models"
)

// CSV column headers as produced by the spreadsheet export.
const (
	colDate   = "Date"
	colType   = "Log Type"
	colValue  = "Log Value"
	colTitle  = "Title"
	colAuthor = "Author"
	colSource = "Source"
)

// CSVRecord extends Record with the per-row source tag the CSV export may
// carry.
type CSVRecord struct {
	Record
	SourceName string
}

// CSVResult is the outcome of a CSV parse.
type CSVResult struct {
	Records  []CSVRecord
	Warnings []Warning
}

// ParseCSV reads the export's comma-separated rows. Each row is parsed
// independently; a row that fails validation is recorded as a warning and
// skipped. Only a structurally unreadable stream (bad header, I/O error) is
// fatal.
func ParseCSV(r io.Reader) (CSVResult, error) {
	var res CSVResult

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows may omit trailing optional columns
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDate, colType, colValue} {
		if _, ok := index[required]; !ok {
			return res, fmt.Errorf("CSV header missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// Row numbers are 1-based including the header, so data starts at row 2
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{Row: rowNum, Reason: fmt.Sprintf("unreadable row: %v", err)})
			continue
		}

		rec, warn := parseCSVRow(row, field, rowNum)
		if warn != nil {
			logger.Warn("Skipping CSV row", "row", warn.Row, "reason", warn.Reason)
			res.Warnings = append(res.Warnings, *warn)
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

func parseCSVRow(row []string, field func([]string, string) string, rowNum int) (CSVRecord, *Warning) {
	dateStr, err := FormatSlashDate(field(row, colDate))
	if err != nil {
		return CSVRecord{}, &Warning{Row: rowNum, Reason: err.Error()}
	}

	logType, err := models.ParseLogType(field(row, colType))
	if err != nil {
		return CSVRecord{}, &Warning{Row: rowNum, Reason: err.Error()}
	}

	value, err := ParseFloatValue(field(row, colValue))
	if err != nil {
		return CSVRecord{}, &Warning{Row: rowNum, Reason: err.Error()}
	}

	return CSVRecord{
		Record: Record{
			BookTitle:     field(row, colTitle),
			BookAuthor:    field(row, colAuthor),
			LogDateString: dateStr,
			LogType:       logType,
			Value:         value,
			Row:           rowNum,
		},
		SourceName: field(row, colSource),
	}, nil
}
