package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/outwriter"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
)

// reportEntry converts a baseline score into a report line. Null scores count as 0 and
// non-numeric scores are written as 0 without counting toward the average.
func reportEntry(row schema.BaselineRow) schema.ReportEntry {
	entry := schema.ReportEntry{Question: row.Question}
	switch {
	case !row.Score.Present:
		entry.Counted = true
	case row.Score.Numeric:
		entry.Value = row.Score.Number
		entry.Counted = true
	}
	return entry
}

// BuildScoreReport groups baseline rows by property then department, keeping the order in
// which they first appear, and computes the department and property averages.
func BuildScoreReport(rows []schema.BaselineRow) []schema.PropertyReport {
	var props []schema.PropertyReport
	propIndex := orderedIndex{}
	deptIndex := make([]orderedIndex, 0)

	for _, row := range rows {
		p, seen := propIndex.position(propertyName(row), len(props))
		if !seen {
			props = append(props, schema.PropertyReport{Name: propertyName(row)})
			deptIndex = append(deptIndex, orderedIndex{})
		}
		prop := &props[p]
		d, seen := deptIndex[p].position(departmentName(row), len(prop.Departments))
		if !seen {
			prop.Departments = append(prop.Departments, schema.DepartmentReport{Name: departmentName(row)})
		}
		dept := &prop.Departments[d]
		dept.Entries = append(dept.Entries, reportEntry(row))
	}

	for i := range props {
		averages := make([]float64, 0, len(props[i].Departments))
		for j := range props[i].Departments {
			dept := &props[i].Departments[j]
			var counted []float64
			for _, e := range dept.Entries {
				if e.Counted {
					counted = append(counted, e.Value)
				}
			}
			dept.Average = mean(counted)
			averages = append(averages, dept.Average)
		}
		props[i].Average = mean(averages)
	}
	return props
}

// GroupBaseline builds the grouped JSON report: departments and their results by property.
// Scores keep an existing percent sign, get one appended otherwise, and nulls become N/A.
func GroupBaseline(rows []schema.BaselineRow) map[string]schema.GroupedProperty {
	grouped := make(map[string]schema.GroupedProperty)
	deptIndex := make(map[string]orderedIndex)
	for _, row := range rows {
		propName := propertyName(row)
		prop := grouped[propName]
		if _, ok := deptIndex[propName]; !ok {
			deptIndex[propName] = orderedIndex{}
		}
		d, seen := deptIndex[propName].position(departmentName(row), len(prop.Departments))
		if !seen {
			prop.Departments = append(prop.Departments, schema.GroupedDepartment{Name: departmentName(row)})
		}
		prop.Departments[d].Results = append(prop.Departments[d].Results, schema.GroupedResult{
			Question: row.Question,
			Result:   row.Score.Percent(),
		})
		grouped[propName] = prop
	}
	return grouped
}

// writeGroupedJSON writes the grouped report with four-space indentation.
func writeGroupedJSON(path string, grouped map[string]schema.GroupedProperty) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(grouped); err != nil {
		return fmt.Errorf("failed to encode grouped report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExecuteReport turns a baseline export into the styled numeric report, and optionally
// into the grouped JSON report, then prints the property averages.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	if cfg.BaselinePath == "" {
		return fmt.Errorf("--baseline is required")
	}
	rows, err := LoadBaseline(cfg.BaselinePath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	reports := BuildScoreReport(rows)
	if len(reports) == 0 {
		return fmt.Errorf("no rows found in %s", cfg.BaselinePath)
	}

	path := filepath.Join(cfg.OutputDir, schema.ScoreReportFile)
	if err := sheetio.WriteScoreReport(path, reports, cfg.ScoreLabel); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", path)

	if cfg.JSONOut != "" {
		if err := writeGroupedJSON(cfg.JSONOut, GroupBaseline(rows)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", cfg.JSONOut)
	}

	return outwriter.PrintPropertyReports(reports, cfg, time.Since(start))
}
