package organizer

import "time"

// Request names the trees a run reads from and writes into.
type Request struct {
	SourceRoot      string
	DestinationRoot string
}

// ProgressFunc receives (completed, total) after every processed entry.
type ProgressFunc func(completed, total int)

// Summary aggregates the outcome of one run. It is returned for failed runs
// too, carrying whatever was counted before the failure.
type Summary struct {
	RunID           string
	SourceRoot      string
	DestinationRoot string
	AuditLogPath    string
	Discovered      int
	Moved           int
	Skipped         int
	Failed          int
	PrunedDirs      int
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Processed returns how many entries were handled.
func (s Summary) Processed() int {
	return s.Moved + s.Skipped + s.Failed
}

// Complete reports whether every discovered entry was handled.
func (s Summary) Complete() bool {
	return s.Processed() == s.Discovered
}

// Destination is the folder a caller would open to inspect the result.
func (s Summary) Destination() string {
	return s.DestinationRoot
}

// ReportPath is the audit log a caller would open to review the run.
func (s Summary) ReportPath() string {
	return s.AuditLogPath
}

// Duration returns the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.Before(s.StartedAt) {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
