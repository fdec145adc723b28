// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/encuesta/schema"
)

// SheetReader defines the spreadsheet operations the analysis needs.
// This allows the core logic to be tested against in-memory sheets.
type SheetReader interface {
	// ReadRows returns every row of a sheet as positional string cells.
	ReadRows(path string, sheet string) ([][]string, error)

	// SheetNames returns the sheet names of a workbook in workbook order.
	SheetNames(path string) ([]string, error)
}

// StoreManager defines the interface for reaching the run history store.
// This allows the history layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking analysis runs and the scores they produced.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, kind schema.JobKind, source string, configParams map[string]any) (int64, error)

	// RecordGroupScores stores the department scores produced by a run
	RecordGroupScores(runID int64, scores []schema.GroupScoreRecord) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalResponses int) error

	// GetStatus returns status information about the store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves all runs from the store
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllGroupScores retrieves all group scores from the store
	GetAllGroupScores() ([]schema.GroupScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
