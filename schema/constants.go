package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the console summary.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// JobKind represents how a survey export is grouped.
	JobKind string

	// QuestionType is the +/- marker that drives how a question is scored.
	QuestionType string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All job kinds supported.
const (
	DepartmentJob JobKind = "generic"  // one workbook, grouped by department
	PropertyJob   JobKind = "property" // one workbook per property, grouped by department
)

// Question types read from the type row.
const (
	PositiveQuestion QuestionType = "+" // expects Siempre / Casi siempre
	NegativeQuestion QuestionType = "-" // expects Nunca / Casi nunca
)

// Default sheet geometry of a survey export (0-based rows).
const (
	DefaultDataSheet       = "Worksheet"
	DefaultHeaderRow       = 10
	DefaultDataStartRow    = 11
	DefaultQuestionTypeRow = 9
)

// Distribution buckets, in report column order.
const (
	AnswerAlways    = "Siempre"
	AnswerAlmost    = "Casi siempre"
	AnswerSometimes = "Algunas veces"
	AnswerRarely    = "Casi nunca"
	AnswerNever     = "Nunca"
)

// DistributionKeys lists the distribution buckets in report column order.
var DistributionKeys = []string{AnswerAlways, AnswerAlmost, AnswerSometimes, AnswerRarely, AnswerNever}

// MaxLikertScore is the score of the best answer.
const MaxLikertScore = 4

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidJobKinds lists all valid job kinds.
var ValidJobKinds = map[JobKind]struct{}{
	DepartmentJob: {},
	PropertyJob:   {},
}
