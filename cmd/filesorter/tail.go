package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filesorter/internal/logs"
)

// printTail writes the last lines of path (all of it when lines is zero or
// less) and, with follow, keeps printing appended lines until the command
// context ends. It reports whether anything was printed before following.
func printTail(cmd *cobra.Command, path string, lines int, follow bool) (bool, error) {
	out := cmd.OutOrStdout()
	emit := func(line string) { fmt.Fprintln(out, line) }

	var (
		offset  int64
		printed bool
		err     error
	)
	if lines > 0 {
		var tail []string
		tail, offset, err = logs.Last(path, lines)
		if err != nil {
			return false, err
		}
		for _, line := range tail {
			emit(line)
		}
		printed = len(tail) > 0
	} else {
		offset, err = logs.ReadFrom(path, 0, func(line string) {
			printed = true
			emit(line)
		})
		if err != nil {
			return false, err
		}
	}

	if !follow {
		return printed, nil
	}
	return printed, logs.Follow(cmd.Context(), path, offset, logs.DefaultPollInterval, emit)
}
