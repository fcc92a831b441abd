package summary

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/yashgyy/ISPASS-Results/internal/errors"
)

const (
	sheetName   = "Parsed_Data"
	maxColWidth = 50.0
)

// ExcelWriter writes summary tables as xlsx workbooks under an output
// directory. Cells keep their native types so spreadsheet formulas work on
// the numbers directly; designated columns get a percentage display format.
type ExcelWriter struct {
	outDir string
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at the given output directory
func NewExcelWriter(outDir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{outDir: outDir, logger: logger}
}

// WriteTable writes the table to fileName inside the output directory and
// returns the full path. Columns named in percentColumns have the 0.00%
// number format applied to their data cells; the stored values are left as
// written. An empty table writes nothing and returns "".
func (w *ExcelWriter) WriteTable(fileName string, table *Table, percentColumns []string) (string, error) {
	if table.Empty() {
		w.logger.Debug("skipping empty table", slog.String("file", fileName))
		return "", nil
	}

	fullPath := filepath.Join(w.outDir, fileName)

	w.logger.Info("writing Excel file",
		slog.String("path", fullPath),
		slog.Int("record_count", table.Len()))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	cols := table.Columns()
	rows := table.RawRows()

	header := make([]interface{}, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to resolve cell for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := w.applyColumnWidths(f, table, cols); err != nil {
		return "", err
	}
	if err := w.applyPercentFormat(f, cols, percentColumns, len(rows)); err != nil {
		return "", err
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", fullPath)
	}
	return fullPath, nil
}

// applyColumnWidths sizes each column to its longest cell, capped so one
// huge value cannot stretch the sheet
func (w *ExcelWriter) applyColumnWidths(f *excelize.File, table *Table, cols []string) error {
	formatted := table.Rows()
	for i, col := range cols {
		width := len(col)
		for _, row := range formatted {
			if len(row[i]) > width {
				width = len(row[i])
			}
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", i, err)
		}
		colWidth := float64(width + 2)
		if colWidth > maxColWidth {
			colWidth = maxColWidth
		}
		if err := f.SetColWidth(sheetName, name, name, colWidth); err != nil {
			return fmt.Errorf("failed to set width for column %s: %w", name, err)
		}
	}
	return nil
}

// applyPercentFormat applies the builtin 0.00% number format to the data
// cells of the named columns
func (w *ExcelWriter) applyPercentFormat(f *excelize.File, cols, percentColumns []string, rowCount int) error {
	if len(percentColumns) == 0 || rowCount == 0 {
		return nil
	}
	styleID, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}
	wanted := make(map[string]bool, len(percentColumns))
	for _, col := range percentColumns {
		wanted[col] = true
	}
	for i, col := range cols {
		if !wanted[col] {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", i, err)
		}
		first := fmt.Sprintf("%s2", name)
		last := fmt.Sprintf("%s%d", name, rowCount+1)
		if err := f.SetCellStyle(sheetName, first, last, styleID); err != nil {
			return fmt.Errorf("failed to style column %s: %w", name, err)
		}
	}
	return nil
}
