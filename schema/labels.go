package schema

// Sheet names and fixed cell labels of the generated workbooks.
// These strings are read back by the comparative report, so they double as a file format.
const (
	GeneralSheet          = "Analisis General"
	DemographicsSheet     = "Demografía General"
	DeptDemographicsSheet = "Demografía Dept"

	GeneralTitle      = "ANALISIS GENERAL (TODOS LOS DEPARTAMENTOS)"
	DepartmentPrefix  = "DEPARTAMENTO:"
	SummaryLabel      = "PROMEDIO GENERAL"
	QuestionHeader    = "Pregunta"
	BlockSeparator    = "-------------------------"
	NoDepartment      = "Sin Departamento"
	UnknownProperty   = "Desconocida"
	NoProperty        = "Sin Propiedad"
	NotAvailable      = "N/A"
	OptionHeader      = "Opción"
	CountHeader       = "Cantidad"
	PercentHeader     = "Porcentaje"
	MaxSheetNameRunes = 30
)

// Labels of the numeric score report.
const (
	DepartmentAverageLabel = "Calificación Promedio"
	PropertySummaryTitle   = "Resumen General Propiedad"
	PropertyFinalLabel     = "Calificación Final Propiedad"
)

// Output file names of the fixed reports.
const (
	ScoreReportFile      = "Reporte_Encuestas_Numerico.xlsx"
	ComparisonReportFile = "Reporte_Comparativo.xlsx"
	FrequencyReportFile  = "Reporte_Frecuencias.xlsx"
	DefaultScoreLabel    = "Resultado Anterior"
)

// StatsHeader is the header row of every question statistics block.
var StatsHeader = []string{
	QuestionHeader, "Nivel Promedio", "Calificación (0-100)", "Total Respuestas",
	AnswerAlways, AnswerAlmost, AnswerSometimes, AnswerRarely, AnswerNever,
}

// ComparisonHeader is the header row of every comparative block.
var ComparisonHeader = []string{
	"Pregunta Tabla Pequeña", "Resultado Pequeña", "Pregunta Tabla Grande", "Resultado Grande", "Diferencia",
}

// Column widths of the generated sheets.
var (
	StatsColumnWidths       = []float64{50, 15, 20, 15, 10, 10, 10, 10, 10}
	DemographicColumnWidths = []float64{30, 10, 15}
	ComparisonColumnWidths  = []float64{50, 10, 50, 10, 10}
	FrequencyColumnWidths   = []float64{50, 15, 15, 30, 15}
)
