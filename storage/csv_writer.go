package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"housing-dashboard/models"
)

// CSVWriter writes views as CSV with a header row taken from the schema.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return &CSVWriter{closer: f, writer: csv.NewWriter(f)}, nil
}

// NewCSVStreamWriter writes to w, for example an HTTP response. Close
// flushes but leaves w open.
func NewCSVStreamWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// Write emits the header followed by every record of v. Missing cells are
// written empty.
func (c *CSVWriter) Write(v models.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	schema := v.Schema()
	if err := c.writer.Write(schema.Names()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	row := make([]string, schema.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		for col := range row {
			row[col] = r.Value(col).Format(schema.Column(col).Kind)
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file, if any.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}
