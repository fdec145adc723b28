package sheetio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates with every new file.
const defaultSheet = "Sheet1"

// sheetNamer hands out valid, unique sheet names. Excel compares sheet names
// case-insensitively, so uniqueness is checked on the lowercased name.
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]struct{})}
}

// next returns a safe name for the sheet, suffixed with _2, _3, ... when taken.
func (n *sheetNamer) next(name string) string {
	base := contract.SafeSheetName(name)
	candidate := base
	for i := 2; n.taken(candidate); i++ {
		suffix := fmt.Sprintf("_%d", i)
		runes := []rune(base)
		if keep := schema.MaxSheetNameRunes - len(suffix); len(runes) > keep {
			runes = runes[:keep]
		}
		candidate = string(runes) + suffix
	}
	n.used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (n *sheetNamer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

// addSheet creates a sheet, reusing the default sheet for the first one.
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to rename sheet to '%s': %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet '%s': %w", name, err)
	}
	return nil
}

// setWidths applies column widths starting at column A.
func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set width of column %s in '%s': %w", col, sheet, err)
		}
	}
	return nil
}

// writeRows writes rows from A1 down. Empty rows are left blank and empty strings
// become empty cells.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		if len(row) == 0 {
			continue
		}
		values := make([]any, len(row))
		for i, v := range row {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			values[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of '%s': %w", r+1, sheet, err)
		}
	}
	return nil
}

// ensureParent creates the directory that will hold path.
func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteWorkbook writes the sheets, in order, to an xlsx file at path. Sheet names are
// sanitized and de-duplicated. The names actually used are returned in sheet order.
func WriteWorkbook(path string, sheets []schema.SheetData) ([]string, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	if err := ensureParent(path); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	namer := newSheetNamer()
	names := make([]string, 0, len(sheets))
	for i, sd := range sheets {
		name := namer.next(sd.Name)
		if err := addSheet(f, name, i == 0); err != nil {
			return nil, err
		}
		if err := writeRows(f, name, sd.Rows); err != nil {
			return nil, err
		}
		if err := setWidths(f, name, sd.Widths); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return names, nil
}
