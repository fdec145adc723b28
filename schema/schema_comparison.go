package schema

// QuestionMapping pairs a baseline (small table) question with its analysis (large table) question.
type QuestionMapping struct {
	Small string `json:"pregunta_tabla_pequena"`
	Large string `json:"pregunta_tabla_grande"`
}

// MappingFile is the comparison JSON document.
type MappingFile struct {
	Mappings []QuestionMapping `json:"comparativo_completo"`
}

// ComparisonRow holds one mapped question with both scores and their delta.
// LargeScore and Delta are nil when the value is N/A.
type ComparisonRow struct {
	SmallQuestion string     `json:"small_question"`
	SmallScore    ScoreValue `json:"small_score"`
	LargeQuestion string     `json:"large_question"`
	LargeScore    *float64   `json:"large_score"`
	Delta         *float64   `json:"delta"` // SmallScore - LargeScore
}

// DepartmentComparison is one department block of the comparative report.
type DepartmentComparison struct {
	Name string          `json:"name"`
	Rows []ComparisonRow `json:"rows"`
}

// PropertyComparison is one sheet of the comparative report.
type PropertyComparison struct {
	Name        string                 `json:"name"`
	Departments []DepartmentComparison `json:"departments"`
}

// ComparisonSummary has high-level counts for one property.
type ComparisonSummary struct {
	Property    string  `json:"property"`
	Departments int     `json:"departments"`
	Rows        int     `json:"rows"`
	Matched     int     `json:"matched"`
	MeanDelta   float64 `json:"mean_delta"` // Over matched rows with a numeric delta
}
