package history

import "time"

// Status describes how a run ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Run is the persisted summary of one organize run.
type Run struct {
	ID              string    `json:"id"`
	SourceRoot      string    `json:"source_root"`
	DestinationRoot string    `json:"destination_root"`
	AuditLogPath    string    `json:"audit_log_path,omitempty"`
	Status          Status    `json:"status"`
	Discovered      int       `json:"discovered"`
	Moved           int       `json:"moved"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	ErrorMessage    string    `json:"error,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
