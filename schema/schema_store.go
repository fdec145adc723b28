package schema

import "time"

// RunRecord represents a row from the encuesta_runs table.
type RunRecord struct {
	RunID          int64
	RunKey         string
	JobKind        string
	Source         string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalResponses int32
	ConfigParams   *string
}

// GroupScoreRecord represents a row from the encuesta_group_scores table.
type GroupScoreRecord struct {
	RunID         int64
	Survey        string
	Department    string
	QuestionCount int32
	Respondents   int32
	AverageScore  float64
	ScoreLabel    string
}
