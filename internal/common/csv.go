// Package common provides the CSV file helpers shared by the CSV store and
// the export command.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/finsight/internal/fileutils"
	"fjacquet/finsight/internal/logging"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates CSV columns unless configured otherwise.
const DefaultDelimiter = ','

// ReadCSVFile reads CSV data into a slice of structs using gocsv. TRow is the
// struct type that maps to the CSV columns through its csv tags. A file with
// only a header, or an empty file, yields an empty slice.
func ReadCSVFile[TRow any](filePath string, delimiter rune, logger logging.Logger) ([]TRow, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	logger.Debug("Reading CSV file", logging.F(logging.FieldPath, filePath))

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []TRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) || errors.Is(err, io.EOF) {
			return []TRow{}, nil
		}
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Debug("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteCSV marshals rows as CSV with a header line to w.
func WriteCSV[TRow any](w io.Writer, rows []TRow, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCSVFile writes rows to filePath, creating parent directories. The file
// is written to a temporary sibling first and renamed into place so that a
// failed write never truncates existing data.
func WriteCSVFile[TRow any](filePath string, rows []TRow, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	err := fileutils.WriteFileAtomic(filePath, 0o600, func(w io.Writer) error {
		return WriteCSV(w, rows, delimiter)
	})
	if err != nil {
		return fmt.Errorf("error writing CSV file %s: %w", filePath, err)
	}

	logger.Debug("Wrote CSV file",
		logging.F(logging.FieldPath, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}
