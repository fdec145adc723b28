package sheetio

import (
	"fmt"

	"github.com/huangsam/encuesta/schema"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column widths of the numeric score report.
const (
	questionColumnWidth = 80
	scoreColumnWidth    = 20
)

// reportStyles holds the style IDs registered for the numeric score report.
type reportStyles struct {
	title        int
	header       int
	average      int
	summaryTitle int
	summaryHead  int
	final        int
}

func solidFill(rgb string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rgb}}
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 14}},
		{Font: &excelize.Font{Bold: true}, Fill: solidFill("E0E0E0")},
		{Font: &excelize.Font{Bold: true}, Fill: solidFill("FFF2CC")},
		{Font: &excelize.Font{Bold: true, Size: 16, Color: "000000"}},
		{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: solidFill("4472C4")},
		{Font: &excelize.Font{Bold: true, Size: 12}, Fill: solidFill("C6E0B4")},
	}
	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return reportStyles{}, fmt.Errorf("failed to register report style: %w", err)
		}
		ids[i] = id
	}
	return reportStyles{
		title:        ids[0],
		header:       ids[1],
		average:      ids[2],
		summaryTitle: ids[3],
		summaryHead:  ids[4],
		final:        ids[5],
	}, nil
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// styledSheet writes rows one at a time and styles them as it goes.
type styledSheet struct {
	f     *excelize.File
	sheet string
	row   int
}

// put writes the values at the current row and styles columns A and B when style > 0.
func (s *styledSheet) put(style int, values ...any) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of '%s': %w", s.row, s.sheet, err)
	}
	if style > 0 {
		end, _ := excelize.CoordinatesToCellName(2, s.row)
		if err := s.f.SetCellStyle(s.sheet, cell, end, style); err != nil {
			return fmt.Errorf("failed to style row %d of '%s': %w", s.row, s.sheet, err)
		}
	}
	return nil
}

// skip leaves n blank rows.
func (s *styledSheet) skip(n int) {
	s.row += n
}

// writeProperty lays out the department blocks of a property followed by its summary table.
func writeProperty(s *styledSheet, prop schema.PropertyReport, scoreLabel string, st reportStyles) error {
	for _, dept := range prop.Departments {
		if err := s.put(st.title, dept.Name); err != nil {
			return err
		}
		if err := s.put(st.header, schema.QuestionHeader, scoreLabel); err != nil {
			return err
		}
		for _, entry := range dept.Entries {
			if err := s.put(0, entry.Question, round2(entry.Value)); err != nil {
				return err
			}
		}
		if err := s.put(st.average, schema.DepartmentAverageLabel, round2(dept.Average)); err != nil {
			return err
		}
		s.skip(1)
	}

	if len(prop.Departments) == 0 {
		return nil
	}
	s.skip(1)
	if err := s.put(st.summaryTitle, schema.PropertySummaryTitle); err != nil {
		return err
	}
	if err := s.put(st.summaryHead, "Departamento", "Calificación"); err != nil {
		return err
	}
	for _, dept := range prop.Departments {
		if err := s.put(0, dept.Name, round2(dept.Average)); err != nil {
			return err
		}
	}
	return s.put(st.final, schema.PropertyFinalLabel, round2(prop.Average))
}

// WriteScoreReport writes the numeric score report: one styled sheet per property.
func WriteScoreReport(path string, reports []schema.PropertyReport, scoreLabel string) error {
	if len(reports) == 0 {
		return fmt.Errorf("score report %s has no properties", path)
	}
	if err := ensureParent(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}

	namer := newSheetNamer()
	for i, prop := range reports {
		name := namer.next(prop.Name)
		if err := addSheet(f, name, i == 0); err != nil {
			return err
		}
		if err := f.SetColWidth(name, "A", "A", questionColumnWidth); err != nil {
			return err
		}
		if err := f.SetColWidth(name, "B", "B", scoreColumnWidth); err != nil {
			return err
		}
		if err := writeProperty(&styledSheet{f: f, sheet: name}, prop, scoreLabel, styles); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
