package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one CSV record keyed by trimmed header name.
type Row map[string]string

// ParseCSV reads a headered CSV document into rows. It strips a UTF-8 BOM,
// sniffs the delimiter (Brazilian bank exports use ';' as often as ','),
// trims headers and values and skips blank lines.
func ParseCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty csv document")
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty csv document")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, value := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				empty = false
			}
			row[headers[i]] = trimmed
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header line has more semicolons than
// commas.
func sniffDelimiter(text string) rune {
	header := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		header = text[:idx]
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// PickAlias returns the first non-empty value among the given header
// aliases, compared case-insensitively.
func PickAlias(row Row, aliases ...string) string {
	lowered := make(map[string]string, len(row))
	for key, value := range row {
		lowered[strings.ToLower(strings.TrimSpace(key))] = value
	}
	for _, alias := range aliases {
		if value := lowered[strings.ToLower(strings.TrimSpace(alias))]; value != "" {
			return value
		}
	}
	return ""
}
