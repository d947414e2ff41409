package table

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// BatchWriter appends fully-resolved batches to the output CSV. The first
// Append truncates the file and writes the header; later Appends add rows
// only. Each call opens, flushes and closes the file, so every completed
// batch is durable before the next one starts.
type BatchWriter struct {
	path        string
	wroteHeader bool
}

// NewBatchWriter creates a writer targeting path. Nothing is written until
// the first Append.
func NewBatchWriter(path string) *BatchWriter {
	return &BatchWriter{path: path}
}

// Append writes one batch of rows in header column order.
func (bw *BatchWriter) Append(header []string, rows []Row) error {
	flags := os.O_WRONLY | os.O_CREATE
	if bw.wroteHeader {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(bw.path, flags, 0o644)
	if err != nil {
		return eris.Wrap(err, "table: open output csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if !bw.wroteHeader {
		if err := w.Write(header); err != nil {
			return eris.Wrap(err, "table: write header")
		}
	}
	for _, row := range rows {
		if err := w.Write(record(header, row)); err != nil {
			return eris.Wrap(err, "table: append row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "table: flush batch")
	}
	if err := f.Sync(); err != nil {
		return eris.Wrap(err, "table: sync batch")
	}

	bw.wroteHeader = true
	return nil
}
