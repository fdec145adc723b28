package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/encuesta/schema"
)

// Default values for configuration.
const (
	DefaultOutputDir   = "analisis"
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultColumnLimit = 20
	MaxColumnLimit     = 500
)

// DefaultJobs mirrors the three survey exports processed on every run.
var DefaultJobs = []map[string]any{
	{"kind": string(schema.DepartmentJob), "input": "estadisticas_encuesta_2_Palacio.xlsx", "sheet-name": "Palacio"},
	{"kind": string(schema.DepartmentJob), "input": "Estadisticas_encuesta_1_Pierre.xlsx", "sheet-name": "Pierre"},
	{"kind": string(schema.PropertyJob), "input": "estadisticas_encuesta_3_Princess.xlsx", "sheet-name": "Princess"},
}

// Job is one survey export to analyze.
type Job struct {
	Kind      schema.JobKind
	Input     string
	SheetName string
}

// Config holds the runtime configuration for all commands.
// This struct is the "final, validated" config.
type Config struct {
	InputDir  string
	OutputDir string
	Geometry  schema.SheetGeometry
	Jobs      []Job

	BaselinePath string
	ScoreLabel   string
	JSONOut      string // Optional grouped JSON output of the numeric report

	MappingsPath  string
	Workbooks     map[string]string // property -> generated analysis workbook
	CompareSheet  string            // Force the sheet read from analysis workbooks
	FuzzyDistance int               // 0 disables fuzzy department matching

	Columns int // Columns shown by inspect

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Verbose    bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// JobRawInput is a job entry of the config file.
type JobRawInput struct {
	Kind      string `mapstructure:"kind"`
	Input     string `mapstructure:"input"`
	SheetName string `mapstructure:"sheet-name"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	InputDir         string `mapstructure:"input-dir"`
	OutputDir        string `mapstructure:"output-dir"`
	DataSheet        string `mapstructure:"data-sheet"`
	HeaderRow        int    `mapstructure:"header-row"`
	DataStartRow     int    `mapstructure:"data-start-row"`
	QuestionTypeRow  int    `mapstructure:"question-type-row"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from analyzeCmd.Flags() and the config file ---
	Jobs      []JobRawInput `mapstructure:"jobs"`
	Kind      string        `mapstructure:"kind"`
	SheetName string        `mapstructure:"sheet-name"`

	// --- Fields from reportCmd.Flags() ---
	Baseline   string `mapstructure:"baseline"`
	ScoreLabel string `mapstructure:"score-label"`
	JSONOut    string `mapstructure:"json-out"`

	// --- Fields from compareCmd.Flags() ---
	Mappings      string            `mapstructure:"mappings"`
	Workbooks     map[string]string `mapstructure:"workbooks"`
	CompareSheet  string            `mapstructure:"compare-sheet"`
	FuzzyDistance int               `mapstructure:"fuzzy-distance"`

	// --- Fields from inspectCmd.Flags() ---
	Columns int `mapstructure:"columns"`

	// This is set manually from positional args, so no tag
	Inputs []string
}

// ResolveInput returns the path of a job input, relative to the input directory.
func (c *Config) ResolveInput(path string) string {
	if filepath.IsAbs(path) || c.InputDir == "" {
		return path
	}
	return filepath.Join(c.InputDir, path)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processGeometry(cfg, input); err != nil {
		return err
	}
	if err := processJobs(cfg, input); err != nil {
		return err
	}
	if err := processCompare(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend maps a raw backend string to a DatabaseBackend. Empty means disabled.
func ParseBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates the run history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputDir = input.InputDir
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	cfg.OutputFile = input.OutputFile
	cfg.Verbose = input.Verbose
	cfg.BaselinePath = strings.TrimSpace(input.Baseline)
	cfg.JSONOut = strings.TrimSpace(input.JSONOut)
	cfg.ScoreLabel = input.ScoreLabel
	if cfg.ScoreLabel == "" {
		cfg.ScoreLabel = schema.DefaultScoreLabel
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Width and column limit ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	if input.Columns <= 0 || input.Columns > MaxColumnLimit {
		return fmt.Errorf("columns must be greater than 0 and cannot exceed %d (received %d)", MaxColumnLimit, input.Columns)
	}
	cfg.Columns = input.Columns

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	return nil
}

// processGeometry validates where the header, question-type and data rows live.
func processGeometry(cfg *Config, input *ConfigRawInput) error {
	geometry := schema.SheetGeometry{
		Sheet:           strings.TrimSpace(input.DataSheet),
		HeaderRow:       input.HeaderRow,
		DataStartRow:    input.DataStartRow,
		QuestionTypeRow: input.QuestionTypeRow,
	}
	if geometry.Sheet == "" {
		geometry.Sheet = schema.DefaultDataSheet
	}
	if geometry.HeaderRow < 0 {
		return fmt.Errorf("header-row cannot be negative (received %d)", geometry.HeaderRow)
	}
	if geometry.DataStartRow <= geometry.HeaderRow {
		return fmt.Errorf("data-start-row (%d) must come after header-row (%d)", geometry.DataStartRow, geometry.HeaderRow)
	}
	// A negative type row disables +/- scoring
	if geometry.QuestionTypeRow >= geometry.DataStartRow {
		return fmt.Errorf("question-type-row (%d) must come before data-start-row (%d)", geometry.QuestionTypeRow, geometry.DataStartRow)
	}
	cfg.Geometry = geometry
	return nil
}

// processJobs builds the job list, either from positional inputs or from the config file.
func processJobs(cfg *Config, input *ConfigRawInput) error {
	raw := input.Jobs
	if len(input.Inputs) > 0 {
		raw = make([]JobRawInput, 0, len(input.Inputs))
		for _, in := range input.Inputs {
			job := JobRawInput{Kind: input.Kind, Input: in}
			if len(input.Inputs) == 1 {
				job.SheetName = input.SheetName
			}
			raw = append(raw, job)
		}
	}

	cfg.Jobs = make([]Job, 0, len(raw))
	for i, r := range raw {
		kind := schema.JobKind(strings.ToLower(strings.TrimSpace(r.Kind)))
		if kind == "" {
			kind = schema.DepartmentJob
		}
		if _, ok := schema.ValidJobKinds[kind]; !ok {
			return fmt.Errorf("job %d: invalid kind '%s'. must be generic, property", i+1, r.Kind)
		}
		in := strings.TrimSpace(r.Input)
		if in == "" {
			return fmt.Errorf("job %d: input is required", i+1)
		}
		name := strings.TrimSpace(r.SheetName)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		}
		cfg.Jobs = append(cfg.Jobs, Job{Kind: kind, Input: in, SheetName: name})
	}
	return nil
}

// processCompare handles the comparative report inputs.
func processCompare(cfg *Config, input *ConfigRawInput) error {
	cfg.MappingsPath = strings.TrimSpace(input.Mappings)
	cfg.CompareSheet = strings.TrimSpace(input.CompareSheet)

	if input.FuzzyDistance < 0 {
		return fmt.Errorf("fuzzy-distance cannot be negative (received %d)", input.FuzzyDistance)
	}
	cfg.FuzzyDistance = input.FuzzyDistance

	cfg.Workbooks = make(map[string]string, len(input.Workbooks))
	for prop, path := range input.Workbooks {
		prop = strings.TrimSpace(prop)
		path = strings.TrimSpace(path)
		if prop == "" || path == "" {
			return fmt.Errorf("invalid workbook mapping %q=%q: property and path are required", prop, path)
		}
		cfg.Workbooks[prop] = path
	}
	return nil
}
