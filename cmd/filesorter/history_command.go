package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filesorter/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent organize runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			var moved, skipped, failed int
			for _, run := range runs {
				moved += run.Moved
				skipped += run.Skipped
				failed += run.Failed
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.SourceRoot,
					run.DestinationRoot,
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					string(run.Status),
					run.Duration().Round(time.Millisecond).String(),
				})
			}
			footer := []string{
				fmt.Sprintf("%d runs", len(runs)), "", "",
				strconv.Itoa(moved), strconv.Itoa(skipped), strconv.Itoa(failed),
			}
			fmt.Fprintln(out, renderTable(historyColumns, rows, footer))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete history rows older than the given number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			if days <= 0 {
				return errors.New("--days must be positive")
			}
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			removed, err := store.Prune(cmd.Context(), time.Now().AddDate(0, 0, -days))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s) older than %d day(s)\n", removed, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 90, "Age threshold in days")
	return cmd
}

func requireHistory(ctx *commandContext) (*history.Store, error) {
	store, err := ctx.openHistory()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("run history is disabled (history.enabled = false)")
	}
	return store, nil
}
