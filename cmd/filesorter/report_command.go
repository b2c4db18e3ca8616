package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"filesorter/internal/config"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var dest string
	var pathOnly bool
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the audit log of the last run into a destination",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := firstNonEmpty(dest, cfg.Paths.DestinationDir)
			if root == "" {
				return errors.New("destination directory required: pass --dest or set paths.destination_dir")
			}
			root, err = config.ExpandPath(root)
			if err != nil {
				return err
			}
			logPath := filepath.Join(root, cfg.Organize.AuditLogName)
			if pathOnly {
				fmt.Fprintln(cmd.OutOrStdout(), logPath)
				return nil
			}

			if !follow {
				if _, err := os.Stat(logPath); errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("no audit log at %s; run `filesorter organize` first", logPath)
				}
			}
			if _, err := printTail(cmd, logPath, lines, follow); err != nil {
				return fmt.Errorf("read audit log: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory (default paths.destination_dir)")
	cmd.Flags().BoolVar(&pathOnly, "path", false, "Print only the audit log path")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing entries as a run appends them")
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of trailing entries to show (0 for all)")
	return cmd
}
