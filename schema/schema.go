// Package schema has configs, models and constants for all parts of encuesta.
package schema

// QuestionStat holds the aggregate of one question column over a set of respondents.
type QuestionStat struct {
	Question       string       `json:"question"`
	Type           QuestionType `json:"type,omitempty"`
	AvgLevel       float64      `json:"avg_level"`       // Mean Likert level (0-4) over recognized answers
	Score100       float64      `json:"score"`           // Calificación (0-100)
	TotalResponses int          `json:"total_responses"` // Recognized answers
	Distribution   [5]int       `json:"distribution"`    // Counts in DistributionKeys order
}

// DemographicOption is one distinct answer of a demographic column.
type DemographicOption struct {
	Option  string  `json:"option"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DemographicTable is the frequency table of one demographic column.
type DemographicTable struct {
	Name    string              `json:"name"`
	Total   int                 `json:"total"`
	Options []DemographicOption `json:"options"`
}

// GroupAnalysis is the analysis of one set of respondents (a department or a whole survey).
type GroupAnalysis struct {
	Name         string             `json:"name"`
	Respondents  int                `json:"respondents"`
	Questions    []QuestionStat     `json:"questions"`
	Demographics []DemographicTable `json:"demographics"`
	Average      float64            `json:"average"` // Mean Score100 over Questions
}

// SurveyAnalysis is everything computed for one output workbook.
type SurveyAnalysis struct {
	Source      string          `json:"source"`     // Input file the rows came from
	Name        string          `json:"name"`       // Job sheet name or property name
	SheetName   string          `json:"sheet_name"` // Name of the per-department sheet
	Kind        JobKind         `json:"kind"`
	General     GroupAnalysis   `json:"general"`
	Departments []GroupAnalysis `json:"departments"`
}

// SheetData is a sheet ready to be written: rows of cells plus column widths.
// Cells are strings, ints or float64s. An empty string is a blank cell.
type SheetData struct {
	Name   string
	Rows   [][]any
	Widths []float64
}

// Workbook is an ordered list of sheets written to one xlsx file.
type Workbook struct {
	FileName string
	Sheets   []SheetData
}
