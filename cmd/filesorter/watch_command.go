package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filesorter/internal/logging"
	"filesorter/internal/notifications"
	"filesorter/internal/organizer"
	"filesorter/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var source, dest string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Organize now and again whenever files arrive in the source",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := ctx.resolveRoots(source, dest)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			org, err := organizer.NewFromConfig(cfg, logger, ctx.recorder(logger))
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg)
			if debounce <= 0 {
				debounce = time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
			}

			var exclude []string
			if rel, err := filepath.Rel(req.SourceRoot, req.DestinationRoot); err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				exclude = append(exclude, req.DestinationRoot)
			}

			out := cmd.OutOrStdout()
			w, err := watch.New(watch.Options{
				Root:       req.SourceRoot,
				Exclude:    exclude,
				Debounce:   debounce,
				RunOnStart: true,
				Logger:     logger,
			}, func(runCtx context.Context) error {
				summary, err := org.Organize(runCtx, req, nil)
				notifyRun(runCtx, logger, notifier, summary, err)
				if err != nil {
					return err
				}
				if summary.Discovered > 0 {
					fmt.Fprintf(out, "%s moved %d, skipped %d, failed %d\n",
						summary.FinishedAt.Format("15:04:05"), summary.Moved, summary.Skipped, summary.Failed)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", req.SourceRoot)
			logger.Info("watch mode started",
				logging.String("source", req.SourceRoot),
				logging.String("destination", req.DestinationRoot),
			)
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source directory (default paths.source_dir)")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory (default paths.destination_dir)")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before a run (default watch.debounce_ms)")
	return cmd
}
