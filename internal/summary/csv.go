package summary

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/yashgyy/ISPASS-Results/internal/errors"
)

// CSVWriter writes summary tables as CSV files under an output directory
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at the given output directory
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the table to fileName inside the output directory and
// returns the full path. An empty table writes nothing and returns "".
func (w *CSVWriter) WriteTable(fileName string, table *Table, options WriteOptions) (string, error) {
	if table.Empty() {
		w.logger.Debug("skipping empty table", slog.String("file", fileName))
		return "", nil
	}

	fullPath := filepath.Join(w.outDir, fileName)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", table.Len()))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", apperrors.NewStorageError("failed to open output file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Columns()); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range table.Rows() {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return fullPath, writer.Error()
}
