package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"filesorter/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var source, dest string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured directories are usable before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := ctx.resolveRoots(source, dest)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg, req.SourceRoot, req.DestinationRoot)
			ok := color.New(color.FgGreen).Sprint("ok")
			fail := color.New(color.FgRed).Sprint("FAIL")
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := ok
				if !r.Passed {
					status = fail
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(doctorColumns, rows, nil))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			fmt.Fprintln(out, "All checks passed.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source directory (default paths.source_dir)")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory (default paths.destination_dir)")
	return cmd
}
