// Package sheetio reads survey exports and writes report workbooks in xlsx format.
package sheetio

import (
	"fmt"
	"os"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/xuri/excelize/v2"
)

// ExcelReader implements contract.SheetReader on top of excelize.
type ExcelReader struct{}

var _ contract.SheetReader = &ExcelReader{} // Compile-time check

// NewExcelReader returns a reader for xlsx files.
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// open checks that the path exists before handing it to excelize, so callers get a
// stable error message for missing inputs.
func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return f, nil
}

// ReadRows returns every row of a sheet. Raw cell values are returned so numbers are
// not passed through the cell number format.
func (r *ExcelReader) ReadRows(path string, sheet string) ([][]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("sheet '%s' not found in %s", sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s' of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// SheetNames returns the sheet names in workbook order.
func (r *ExcelReader) SheetNames(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.GetSheetList(), nil
}

// Cell returns the raw value at a column, or "" when the row is shorter.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Row returns the row at an index, or nil when the sheet is shorter.
func Row(rows [][]string, idx int) []string {
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	return rows[idx]
}
