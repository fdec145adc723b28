package schema

// GroupSummary is one console summary line of an analysis run: a department of a survey workbook.
type GroupSummary struct {
	Rank        int     `json:"rank"`
	Survey      string  `json:"survey"`
	Department  string  `json:"department"`
	Questions   int     `json:"questions"`
	Respondents int     `json:"respondents"`
	Score       float64 `json:"score"`
	Label       string  `json:"label"`
}

// ValueCount is one distinct answer of a column and how often it appears.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnFrequency is the answer frequency of one header column.
type ColumnFrequency struct {
	Header    string       `json:"header"`
	Total     int          `json:"total"`
	TopAnswer string       `json:"top_answer"`
	TopCount  int          `json:"top_count"`
	Counts    []ValueCount `json:"counts"` // First-appearance order
}

// ColumnSample is one inspected column: its header next to the first data value.
type ColumnSample struct {
	Index  int    `json:"index"`
	Header string `json:"header"`
	Sample string `json:"sample"`
}

// SheetInspection describes the header layout of one survey export.
type SheetInspection struct {
	File       string           `json:"file"`
	Sheet      string           `json:"sheet"`
	Columns    []ColumnSample   `json:"columns"`
	KeyColumns map[string][]int `json:"key_columns"` // keyword -> matching column indices
}
