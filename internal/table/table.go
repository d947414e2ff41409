// Package table is the CSV-backed row store for the enrichment pipeline:
// whole-file load at start, batch-at-a-time appends for checkpointing.
package table

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Row maps column name to value. A missing or empty value is "null" for the
// purposes of the completion predicate.
type Row map[string]string

// Table is an in-memory ordered table. Row identity is positional: the
// index into Rows is the row's identity for the whole run.
type Table struct {
	Header []string
	Rows   []Row
}

// Load reads an entire CSV file into memory. The first record is the
// header; rows shorter than the header get empty strings for the missing
// columns.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "table: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("table: csv has no header row")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// EnsureColumns appends any missing columns to the header and fills them
// with empty values. Runs once, before any batch work.
func (t *Table) EnsureColumns(names []string) {
	existing := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		existing[col] = true
	}
	for _, name := range names {
		if existing[name] {
			continue
		}
		t.Header = append(t.Header, name)
		existing[name] = true
		for _, row := range t.Rows {
			row[name] = ""
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Write replaces the file at path with the full table: header plus every row.
func Write(path string, header []string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "table: create csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	for _, row := range rows {
		if err := w.Write(record(header, row)); err != nil {
			return eris.Wrap(err, "table: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "table: flush csv")
	}
	return nil
}

// record projects a row onto the header's column order.
func record(header []string, row Row) []string {
	out := make([]string, len(header))
	for i, col := range header {
		out[i] = row[col]
	}
	return out
}
