package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/outwriter"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
)

// EmptyCell is shown for cells past the end of a row.
const EmptyCell = "[Empty]"

// inspectKeywords are the header words that locate the grouping and filter columns.
var inspectKeywords = []string{"Departamento", "Propiedad", "Género"}

// InspectRows describes the first columns of a survey export: each header next to the
// first data value, plus the columns whose header names a key field.
func InspectRows(data [][]string, geometry schema.SheetGeometry, columns int) schema.SheetInspection {
	header := sheetio.Row(data, geometry.HeaderRow)
	first := sheetio.Row(data, geometry.DataStartRow)

	inspection := schema.SheetInspection{Sheet: geometry.Sheet, KeyColumns: make(map[string][]int)}
	for i := 0; i < columns; i++ {
		sample := schema.ColumnSample{Index: i, Header: EmptyCell, Sample: EmptyCell}
		if i < len(header) {
			sample.Header = header[i]
		}
		if i < len(first) {
			sample.Sample = first[i]
		}
		inspection.Columns = append(inspection.Columns, sample)
	}

	for _, keyword := range inspectKeywords {
		needle := foldName(keyword)
		matches := []int{}
		for i, h := range header {
			if strings.Contains(foldName(h), needle) {
				matches = append(matches, i)
			}
		}
		inspection.KeyColumns[keyword] = matches
	}
	return inspection
}

// ExecuteInspect prints the header layout of every input file. Unreadable files are
// logged and skipped.
func ExecuteInspect(ctx context.Context, cfg *contract.Config, reader contract.SheetReader) error {
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}
	var inspections []schema.SheetInspection
	for _, job := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := cfg.ResolveInput(job.Input)
		data, err := reader.ReadRows(path, cfg.Geometry.Sheet)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot inspect %s", path), err)
			continue
		}
		inspection := InspectRows(data, cfg.Geometry, cfg.Columns)
		inspection.File = path
		inspections = append(inspections, inspection)
	}
	return outwriter.PrintInspections(inspections, cfg)
}
