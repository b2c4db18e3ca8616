package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"filesorter/internal/organizer"
	"filesorter/internal/services"
)

func renderSummary(out io.Writer, summary organizer.Summary, runErr error) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	if runErr != nil && summary.DestinationRoot == "" {
		red.Fprintf(out, "Run rejected (%s): %v\n", services.Kind(runErr), runErr)
		return
	}

	bold.Fprintln(out, "Organize summary")
	fmt.Fprintf(out, "  Source:      %s\n", summary.SourceRoot)
	fmt.Fprintf(out, "  Destination: %s\n", summary.Destination())
	fmt.Fprintf(out, "  Discovered:  %d\n", summary.Discovered)
	green.Fprintf(out, "  Moved:       %d\n", summary.Moved)
	yellow.Fprintf(out, "  Skipped:     %d\n", summary.Skipped)
	if summary.Failed > 0 {
		red.Fprintf(out, "  Failed:      %d\n", summary.Failed)
	} else {
		fmt.Fprintf(out, "  Failed:      %d\n", summary.Failed)
	}
	if summary.PrunedDirs > 0 {
		fmt.Fprintf(out, "  Pruned dirs: %d\n", summary.PrunedDirs)
	}
	fmt.Fprintf(out, "  Duration:    %s\n", summary.Duration().Round(time.Millisecond))
	fmt.Fprintf(out, "  Audit log:   %s\n", summary.ReportPath())

	switch {
	case runErr != nil:
		red.Fprintf(out, "Run stopped after %d of %d files: %v\n", summary.Processed(), summary.Discovered, runErr)
	case summary.Failed > 0:
		yellow.Fprintln(out, "Completed with failures; the audit log lists each one.")
	default:
		green.Fprintln(out, "Completed.")
	}
}
