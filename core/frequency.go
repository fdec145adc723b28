package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/outwriter"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
)

// Headers of the frequency report sheets.
var (
	frequencySummaryHeader = []any{"Pregunta/Código", "Total Respuestas", "Valores Únicos", "Respuesta Más Común", "Frecuencia Top"}
	frequencyDetailHeader  = []any{"Pregunta", "Respuesta", "Cantidad", "Porcentaje"}
)

// Sheet names of the frequency report.
const (
	FrequencySummarySheet = "Resumen General"
	FrequencyDetailSheet  = "Detalle Frecuencias"
)

// AnalyzeFrequencies counts the answers of every non-blank header column over the rows
// that follow the header row. The top answer is the first to reach the highest count.
func AnalyzeFrequencies(data [][]string, headerRow int) []schema.ColumnFrequency {
	headers := sheetio.Row(data, headerRow)
	var rows [][]string
	if headerRow+1 < len(data) {
		rows = data[headerRow+1:]
	}

	var result []schema.ColumnFrequency
	for col, header := range headers {
		if isBlank(header) {
			continue
		}
		freq := schema.ColumnFrequency{Header: header, TopAnswer: schema.NotAvailable}
		index := make(map[string]int)
		for _, row := range rows {
			value := strings.TrimSpace(sheetio.Cell(row, col))
			if value == "" {
				continue
			}
			freq.Total++
			if i, ok := index[value]; ok {
				freq.Counts[i].Count++
				continue
			}
			index[value] = len(freq.Counts)
			freq.Counts = append(freq.Counts, schema.ValueCount{Value: value, Count: 1})
		}
		for _, c := range freq.Counts {
			if c.Count > freq.TopCount {
				freq.TopCount = c.Count
				freq.TopAnswer = c.Value
			}
		}
		result = append(result, freq)
	}
	return result
}

// FrequencyWorkbook lays out the summary and detail sheets of the frequency report.
func FrequencyWorkbook(freqs []schema.ColumnFrequency) []schema.SheetData {
	summary := [][]any{frequencySummaryHeader}
	detail := [][]any{frequencyDetailHeader}
	for i, f := range freqs {
		summary = append(summary, []any{f.Header, f.Total, len(f.Counts), f.TopAnswer, f.TopCount})
		if i > 0 {
			detail = append(detail, []any{"", "", "", ""})
		}
		for _, c := range f.Counts {
			detail = append(detail, []any{f.Header, c.Value, c.Count, FormatPercent(float64(c.Count) / float64(f.Total) * 100)})
		}
	}
	return []schema.SheetData{
		{Name: FrequencySummarySheet, Rows: summary, Widths: schema.FrequencyColumnWidths},
		{Name: FrequencyDetailSheet, Rows: detail, Widths: schema.FrequencyColumnWidths[:4]},
	}
}

// ExecuteFrequency writes the answer frequency report of a survey export.
func ExecuteFrequency(ctx context.Context, cfg *contract.Config, reader contract.SheetReader) error {
	start := time.Now()
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("an input file is required")
	}
	input := cfg.ResolveInput(cfg.Jobs[0].Input)
	data, err := reader.ReadRows(input, cfg.Geometry.Sheet)
	if err != nil {
		return err
	}
	if len(data) <= cfg.Geometry.HeaderRow {
		return fmt.Errorf("%s has no header row at index %d", input, cfg.Geometry.HeaderRow)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	freqs := AnalyzeFrequencies(data, cfg.Geometry.HeaderRow)
	path := filepath.Join(cfg.OutputDir, schema.FrequencyReportFile)
	if _, err := sheetio.WriteWorkbook(path, FrequencyWorkbook(freqs)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", path)

	return outwriter.PrintFrequencies(freqs, cfg, time.Since(start))
}
