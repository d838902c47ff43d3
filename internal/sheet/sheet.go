package sheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jaywantadh/GradeByte/internal/report"
)

// Writer serializes a report table to a file.
type Writer interface {
	Write(path string, t *report.Table) error
}

// ExcelWriter writes the table as a single-sheet .xlsx workbook.
type ExcelWriter struct {
	Sheet string
}

func NewExcelWriter(sheet string) *ExcelWriter {
	if sheet == "" {
		sheet = "Results"
	}
	return &ExcelWriter{Sheet: sheet}
}

func (w *ExcelWriter) Write(path string, t *report.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), w.Sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(w.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.boldHeader(f, len(t.Header)); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, 0, len(row.Values)+1)
		if row.Question > 0 {
			cells = append(cells, row.Question)
			for _, v := range row.Values {
				cells = append(cells, int(v))
			}
		} else {
			cells = append(cells, row.Label)
			for _, v := range row.Values {
				cells = append(cells, v)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(w.Sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.Label, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (w *ExcelWriter) boldHeader(f *excelize.File, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(w.Sheet, "A1", last, style)
}
