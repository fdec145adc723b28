package schema

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ScoreValue is a Resultado_Actual cell of a baseline export. Exports carry it as a number,
// as a numeric string with or without a percent sign, or as null.
// The zero value is a null score.
type ScoreValue struct {
	Present bool    // false for null or missing
	Text    string  // exported text, untouched
	Number  float64 // parsed value when Numeric
	Numeric bool
}

// NumberScore returns a numeric score.
func NumberScore(n float64) ScoreValue {
	return ScoreValue{Present: true, Text: strconv.FormatFloat(n, 'f', -1, 64), Number: n, Numeric: true}
}

// ParseScoreValue parses an exported score string such as "85.5%" or "85.5".
func ParseScoreValue(text string) ScoreValue {
	v := ScoreValue{Present: true, Text: text}
	clean := strings.TrimSpace(strings.ReplaceAll(text, "%", ""))
	if n, err := strconv.ParseFloat(clean, 64); err == nil {
		v.Number = n
		v.Numeric = true
	}
	return v
}

// UnmarshalJSON accepts numbers, strings and null.
func (s *ScoreValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*s = ScoreValue{}
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*s = ParseScoreValue(text)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			*s = ScoreValue{Present: true, Text: string(trimmed)}
			return nil
		}
		*s = NumberScore(n)
	}
	return nil
}

// MarshalJSON writes numeric scores as numbers and everything else as text.
func (s ScoreValue) MarshalJSON() ([]byte, error) {
	switch {
	case !s.Present:
		return []byte("null"), nil
	case s.Numeric:
		return json.Marshal(s.Number)
	default:
		return json.Marshal(s.Text)
	}
}

// Percent renders the score as a percentage string, or N/A when null.
func (s ScoreValue) Percent() string {
	if !s.Present {
		return NotAvailable
	}
	if strings.Contains(s.Text, "%") {
		return s.Text
	}
	return s.Text + "%"
}

// Cell returns the value to place in a spreadsheet cell.
func (s ScoreValue) Cell() any {
	switch {
	case !s.Present:
		return ""
	case s.Numeric:
		return s.Number
	default:
		return s.Text
	}
}

// BaselineRow is one row of a baseline JSON export.
type BaselineRow struct {
	Property   string     `json:"Propiedad"`
	Department string     `json:"Departamento"`
	Question   string     `json:"Pregunta"`
	Score      ScoreValue `json:"Resultado_Actual"`
}

// ReportEntry is one question line of the numeric report.
type ReportEntry struct {
	Question string  `json:"question"`
	Value    float64 `json:"value"`
	Counted  bool    `json:"counted"` // false when the value did not parse and was written as 0
}

// DepartmentReport is one department block of the numeric report.
type DepartmentReport struct {
	Name    string        `json:"name"`
	Entries []ReportEntry `json:"entries"`
	Average float64       `json:"average"`
}

// PropertyReport is one sheet of the numeric report.
type PropertyReport struct {
	Name        string             `json:"name"`
	Departments []DepartmentReport `json:"departments"`
	Average     float64            `json:"average"`
}

// GroupedResult is one question of the grouped JSON report.
type GroupedResult struct {
	Question string `json:"pregunta"`
	Result   string `json:"resultado_actual"`
}

// GroupedDepartment is one department of the grouped JSON report.
type GroupedDepartment struct {
	Name    string          `json:"nombre"`
	Results []GroupedResult `json:"resultados"`
}

// GroupedProperty is one property of the grouped JSON report.
type GroupedProperty struct {
	Departments []GroupedDepartment `json:"departamentos"`
}
