package ingest

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/finnpalmer/readtrack/internal/logger"
	"github.com/finnpalmer/readtrack/internal/models"
)

// Boilerplate the reader-log export wraps around the actual records. These
// lines carry no data and are filtered before parsing.
var headerStrings = map[string]struct{}{
	"The Log":        {},
	"Title & Author": {},
	"Title & Author \tAdded On \tLog Type Log Value": {},
	"Added On":  {},
	"Log Type":  {},
	"Log Value": {},
}

var footerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^--\s*\d+\s+of\s+\d+\s*--$`),
	regexp.MustCompile(`(?i)^Page\s+\d+`),
}

// dateLineRe matches a pure metadata line: long-form date, type word(s),
// numeric value, nothing else.
var dateLineRe = regexp.MustCompile(`^(?P<date>[A-Za-z]+ \d{1,2}, \d{4})\s+(?P<type>[A-Za-z ]+?)\s+(?P<value>[\d,.]+)$`)

// combinedLineRe matches a line that carries trailing title/author text
// before the same date/type/value suffix.
var combinedLineRe = regexp.MustCompile(`^(?P<prefix>.+?)\s+(?P<date>[A-Za-z]+ \d{1,2}, \d{4})\s+(?P<type>[A-Za-z ]+?)\s+(?P<value>[\d,.]+)$`)

// shouldSkipLine reports whether a line is export boilerplate.
func shouldSkipLine(line string) bool {
	if line == "" {
		return true
	}
	if _, ok := headerStrings[line]; ok {
		return true
	}
	if strings.HasPrefix(line, "Summary -") {
		return true
	}
	if strings.HasPrefix(line, "Books Completed") {
		return true
	}
	if strings.Contains(line, "Your Beanstack site is in Sandbox") {
		return true
	}
	for _, p := range footerPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isMetadataLine reports whether line matches either date pattern. Used by
// the lookahead that distinguishes author lines from title continuations.
func isMetadataLine(line string) bool {
	return dateLineRe.MatchString(line) || combinedLineRe.MatchString(line)
}

// ReadLines extracts the trimmed, non-empty, non-boilerplate lines from the
// text dump of a PDF report.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ReplaceAll(scanner.Text(), "\f", ""))
		if line == "" || shouldSkipLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ParseLines reconstructs log records from the interleaved line stream.
//
// The stream has no fixed field order: title and author text wrap across
// lines, and the date/type/value metadata either trails the last text line
// (combined form) or stands alone after separately accumulated title/author
// lines (date-only form). Two append-only buffers collect text until a
// metadata line flushes them into a record. A plain line is classified as
// author only when the title buffer already has text, the author buffer is
// still empty, and the *next* line is a metadata line — positionally, that
// is the only thing distinguishing an author line from a wrapped title.
func ParseLines(lines []string) Result {
	var res Result
	var titleParts, authorParts []string

	reset := func() {
		titleParts = nil
		authorParts = nil
	}

	warnSkip := func(row int, line, reason string) {
		logger.Warn("Skipping text entry", "line", row, "reason", reason)
		res.Warnings = append(res.Warnings, Warning{Row: row, Line: line, Reason: reason})
		reset()
	}

	for i, line := range lines {
		row := i + 1

		if m := combinedLineRe.FindStringSubmatch(line); m != nil {
			prefix := strings.TrimSpace(m[1])
			date := strings.TrimSpace(m[2])
			rawType := strings.TrimSpace(m[3])
			rawValue := strings.TrimSpace(m[4])

			title := strings.TrimSpace(strings.Join(titleParts, " "))
			author := strings.TrimSpace(strings.Join(authorParts, " "))

			// The prefix completes whichever buffer is still open
			if title == "" {
				title = prefix
			} else if author == "" {
				author = prefix
			}

			rec, reason := buildRecord(title, author, date, rawType, rawValue, row)
			if reason != "" {
				warnSkip(row, line, reason)
				continue
			}
			res.Records = append(res.Records, rec)
			reset()
			continue
		}

		if m := dateLineRe.FindStringSubmatch(line); m != nil {
			date := strings.TrimSpace(m[1])
			rawType := strings.TrimSpace(m[2])
			rawValue := strings.TrimSpace(m[3])

			title := strings.TrimSpace(strings.Join(titleParts, " "))
			author := strings.TrimSpace(strings.Join(authorParts, " "))

			if title == "" {
				warnSkip(row, line, "missing title before date "+date)
				continue
			}

			rec, reason := buildRecord(title, author, date, rawType, rawValue, row)
			if reason != "" {
				warnSkip(row, line, reason)
				continue
			}
			res.Records = append(res.Records, rec)
			reset()
			continue
		}

		// Plain text line: title continuation or the author line
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if len(titleParts) > 0 && len(authorParts) == 0 && isMetadataLine(next) {
			authorParts = append(authorParts, line)
		} else {
			titleParts = append(titleParts, line)
		}
	}

	return res
}

// ParseText is the full unstructured-text front end: boilerplate filtering
// followed by record reconstruction.
func ParseText(r io.Reader) (Result, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return Result{}, err
	}
	return ParseLines(lines), nil
}

// buildRecord validates the extracted fields. It returns a non-empty reason
// string instead of a record when any field fails.
func buildRecord(title, author, date, rawType, rawValue string, row int) (Record, string) {
	logType, err := models.ParseLogType(rawType)
	if err != nil {
		return Record{}, err.Error()
	}

	value, err := ParseIntValue(rawValue)
	if err != nil {
		return Record{}, err.Error()
	}

	dateStr, err := FormatLongDate(date)
	if err != nil {
		return Record{}, err.Error()
	}

	return Record{
		BookTitle:     title,
		BookAuthor:    author,
		LogDateString: dateStr,
		LogType:       logType,
		Value:         float64(value),
		Row:           row,
	}, ""
}
