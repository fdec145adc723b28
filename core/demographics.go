package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/encuesta/schema"
)

// AnalyzeDemographics counts the distinct non-blank values of each demographic column.
// Options keep the order in which they first appear.
func AnalyzeDemographics(rows [][]string, columns []schema.DemographicColumn) []schema.DemographicTable {
	tables := make([]schema.DemographicTable, 0, len(columns))
	for _, c := range columns {
		table := schema.DemographicTable{Name: c.Name}
		index := make(map[string]int)
		for _, row := range rows {
			if c.Column < 0 || c.Column >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[c.Column])
			if value == "" {
				continue
			}
			table.Total++
			if i, ok := index[value]; ok {
				table.Options[i].Count++
				continue
			}
			index[value] = len(table.Options)
			table.Options = append(table.Options, schema.DemographicOption{Option: value, Count: 1})
		}
		for i := range table.Options {
			table.Options[i].Percent = round2(float64(table.Options[i].Count) / float64(table.Total) * 100)
		}
		tables = append(tables, table)
	}
	return tables
}

// FormatPercent renders a percentage with two decimals, e.g. 12.5 -> "12.50%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", round2(v))
}

// demographicRows lays out demographic tables as sheet rows.
func demographicRows(tables []schema.DemographicTable) [][]any {
	var rows [][]any
	for _, t := range tables {
		rows = append(rows,
			[]any{strings.ToUpper(t.Name), "", ""},
			[]any{schema.OptionHeader, schema.CountHeader, schema.PercentHeader},
		)
		for _, o := range t.Options {
			rows = append(rows, []any{o.Option, o.Count, FormatPercent(o.Percent)})
		}
		rows = append(rows, []any{"", "", ""})
	}
	return rows
}
