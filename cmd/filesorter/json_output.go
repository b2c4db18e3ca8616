package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"filesorter/internal/category"
	"filesorter/internal/organizer"
)

// writeJSON encodes v as indented JSON to the command's stdout. Paths keep
// their literal characters instead of \u escapes.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// summaryView is the --json shape of one organize run.
type summaryView struct {
	RunID           string    `json:"run_id"`
	SourceRoot      string    `json:"source_root"`
	DestinationRoot string    `json:"destination_root"`
	AuditLog        string    `json:"audit_log"`
	Discovered      int       `json:"discovered"`
	Moved           int       `json:"moved"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	PrunedDirs      int       `json:"pruned_dirs"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	DurationMillis  int64     `json:"duration_ms"`
	Error           string    `json:"error,omitempty"`
}

func newSummaryView(summary organizer.Summary, runErr error) summaryView {
	view := summaryView{
		RunID:           summary.RunID,
		SourceRoot:      summary.SourceRoot,
		DestinationRoot: summary.Destination(),
		AuditLog:        summary.ReportPath(),
		Discovered:      summary.Discovered,
		Moved:           summary.Moved,
		Skipped:         summary.Skipped,
		Failed:          summary.Failed,
		PrunedDirs:      summary.PrunedDirs,
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
		DurationMillis:  summary.Duration().Milliseconds(),
	}
	if runErr != nil {
		view.Error = runErr.Error()
	}
	return view
}

type categoryView struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// categoriesView lists categories in match order; Fallback names the folder
// for extensions no category claims.
type categoriesView struct {
	Categories []categoryView `json:"categories"`
	Fallback   string         `json:"fallback"`
}

func newCategoriesView(classifier *category.Classifier) categoriesView {
	table := classifier.Categories()
	view := categoriesView{
		Categories: make([]categoryView, 0, len(table)),
		Fallback:   classifier.Fallback(),
	}
	for _, c := range table {
		view.Categories = append(view.Categories, categoryView{Name: c.Name, Extensions: c.Extensions})
	}
	return view
}
