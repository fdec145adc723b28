package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// propertyReportCSV is one CSV line of the report summary.
type propertyReportCSV struct {
	Property    string `csv:"property"`
	Departments int    `csv:"departments"`
	Entries     int    `csv:"entries"`
	Average     string `csv:"average"`
	Label       string `csv:"label"`
}

// countEntries counts the question lines of a property.
func countEntries(r schema.PropertyReport) int {
	n := 0
	for _, d := range r.Departments {
		n += len(d.Entries)
	}
	return n
}

// PrintPropertyReports outputs the property averages of the numeric report.
func PrintPropertyReports(reports []schema.PropertyReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			records := make([]propertyReportCSV, len(reports))
			for i, r := range reports {
				records[i] = propertyReportCSV{
					Property:    r.Name,
					Departments: len(r.Departments),
					Entries:     countEntries(r),
					Average:     fmtFloat(r.Average),
					Label:       contract.GetPlainLabel(r.Average),
				}
			}
			return writeCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the report summary")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(reports, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeReportTable lists every department average under its property.
func writeReportTable(reports []schema.PropertyReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, w io.Writer) error {
	nameWidth := getMaxTextWidth(cfg, 40) / 2
	var rows [][]string
	for _, r := range reports {
		for _, d := range r.Departments {
			rows = append(rows, []string{
				contract.TruncateText(r.Name, nameWidth),
				contract.TruncateText(d.Name, nameWidth),
				fmt.Sprintf(intFmt, len(d.Entries)),
				fmtFloat(d.Average),
				contract.GetColorLabel(d.Average),
			})
		}
		rows = append(rows, []string{
			contract.TruncateText(r.Name, nameWidth),
			schema.PropertyFinalLabel,
			fmt.Sprintf(intFmt, countEntries(r)),
			fmtFloat(r.Average),
			contract.GetColorLabel(r.Average),
		})
	}
	headers := []string{"Property", "Department", "Questions", "Average", "Label"}
	if err := writeTable(w, headers, rows, tw.AlignLeft); err != nil {
		return err
	}
	return footer(w, fmt.Sprintf("Report of %d properties completed in %v", len(reports), duration))
}
