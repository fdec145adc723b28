package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"go.uber.org/zap"
)

// exportTable is one element of a phpMyAdmin JSON export.
type exportTable struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// hasPropertyField reports whether the first element of an array looks like a baseline row.
func hasPropertyField(first json.RawMessage) bool {
	var probe struct {
		Property any `json:"Propiedad"`
	}
	if err := json.Unmarshal(first, &probe); err != nil {
		return false
	}
	switch v := probe.Property.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

// ParseBaseline decodes the rows of a baseline export. Three shapes are accepted: an
// array of rows, a phpMyAdmin export whose first "table" element holds the rows in
// "data", and an object with a "data" array. Any other shape yields no rows.
func ParseBaseline(raw []byte) ([]schema.BaselineRow, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("baseline is empty")
	}

	var rowsData json.RawMessage
	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("invalid baseline JSON: %w", err)
		}
		if len(items) == 0 {
			return nil, nil
		}
		if hasPropertyField(items[0]) {
			rowsData = trimmed
			break
		}
		for _, item := range items {
			var table exportTable
			if err := json.Unmarshal(item, &table); err != nil {
				continue
			}
			if table.Type == "table" && isJSONArray(table.Data) {
				rowsData = table.Data
				break
			}
		}
	case '{':
		var obj struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("invalid baseline JSON: %w", err)
		}
		if isJSONArray(obj.Data) {
			rowsData = obj.Data
		}
	default:
		return nil, fmt.Errorf("invalid baseline JSON: unexpected %q", trimmed[0])
	}

	if rowsData == nil {
		return nil, nil
	}
	var rows []schema.BaselineRow
	if err := json.Unmarshal(rowsData, &rows); err != nil {
		return nil, fmt.Errorf("invalid baseline rows: %w", err)
	}
	return rows, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// LoadBaseline reads and decodes a baseline export. An unrecognized shape is not an
// error: it is logged and yields no rows.
func LoadBaseline(path string) ([]schema.BaselineRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	rows, err := ParseBaseline(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		contract.Logger().Warn("No rows found in baseline", zap.String("path", path))
	}
	return rows, nil
}

// propertyName returns the property of a row, or the fallback label when blank.
func propertyName(row schema.BaselineRow) string {
	if name := strings.TrimSpace(row.Property); name != "" {
		return name
	}
	return schema.NoProperty
}

// departmentName returns the department of a row, or the fallback label when blank.
func departmentName(row schema.BaselineRow) string {
	if name := strings.TrimSpace(row.Department); name != "" {
		return name
	}
	return schema.NoDepartment
}

// orderedIndex assigns stable positions to names in first-appearance order.
type orderedIndex map[string]int

// position returns the index of name, adding it at next when unseen.
func (o orderedIndex) position(name string, next int) (int, bool) {
	if i, ok := o[name]; ok {
		return i, true
	}
	o[name] = next
	return next, false
}
