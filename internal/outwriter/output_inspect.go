package outwriter

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// inspectionCSV is one CSV line per inspected column.
type inspectionCSV struct {
	File   string `csv:"file"`
	Sheet  string `csv:"sheet"`
	Index  int    `csv:"index"`
	Header string `csv:"header"`
	Sample string `csv:"sample"`
}

// PrintInspections outputs the header layout of every inspected file.
func PrintInspections(inspections []schema.SheetInspection, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, inspections)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			var records []inspectionCSV
			for _, in := range inspections {
				for _, c := range in.Columns {
					records = append(records, inspectionCSV{File: in.File, Sheet: in.Sheet, Index: c.Index, Header: c.Header, Sample: c.Sample})
				}
			}
			return writeCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for inspection")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for _, in := range inspections {
				if err := writeInspectionTable(in, cfg, w); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote table")
	}
}

// formatIndices renders column indices as a comma separated list, or "none".
func formatIndices(indices []int) string {
	if len(indices) == 0 {
		return "none"
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// writeInspectionTable writes one file's columns followed by its key columns.
func writeInspectionTable(in schema.SheetInspection, cfg *contract.Config, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "📄 %s (%s)\n", in.File, in.Sheet); err != nil {
		return err
	}
	textWidth := getMaxTextWidth(cfg, 10) / 2
	rows := make([][]string, 0, len(in.Columns))
	for _, c := range in.Columns {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			contract.TruncateText(c.Header, textWidth),
			contract.TruncateText(c.Sample, textWidth),
		})
	}
	if err := writeTable(w, []string{"Index", "Header", "Sample"}, rows, tw.AlignLeft); err != nil {
		return err
	}

	keywords := make([]string, 0, len(in.KeyColumns))
	for k := range in.KeyColumns {
		keywords = append(keywords, k)
	}
	slices.Sort(keywords)
	lines := make([]string, 0, len(keywords)+1)
	for _, k := range keywords {
		lines = append(lines, fmt.Sprintf("%s: %s", k, formatIndices(in.KeyColumns[k])))
	}
	lines = append(lines, "")
	return footer(w, lines...)
}
