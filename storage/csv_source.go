package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"housing-dashboard/models"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

// CSVSource loads the dataset from a CSV file with a header row.
type CSVSource struct {
	path    string
	cleaner *services.Cleaner
	logger  *utils.Logger
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string, logger *utils.Logger) *CSVSource {
	return &CSVSource{path: path, cleaner: services.NewCleaner(logger), logger: logger}
}

// Load reads and cleans the whole file.
func (s *CSVSource) Load(_ context.Context) (*models.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open dataset: %w", err)
	}
	defer f.Close()

	header, rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", s.path, err)
	}
	table, err := s.cleaner.Clean(header, rows)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", s.path, err)
	}
	s.logger.Info("[csv] Loaded %d records with %d columns from %s", table.Len(), table.Schema().Len(), s.path)
	return table, nil
}

// Close is a no-op; the file is closed after Load.
func (s *CSVSource) Close() error { return nil }

// ReadCSV splits r into its header and data rows. Rows may have varying
// lengths; the cleaner rejects those that do not match the header.
func ReadCSV(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err = cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	rows, err = cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return header, rows, nil
}
