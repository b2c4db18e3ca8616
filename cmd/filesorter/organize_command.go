package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filesorter/internal/config"
	"filesorter/internal/notifications"
	"filesorter/internal/organizer"
)

type organizeOptions struct {
	source     string
	dest       string
	collision  string
	pruneEmpty bool
	noProgress bool
	jsonOutput bool
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var opts organizeOptions

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move files from the source tree into category folders",
		Long: "Walks the source tree and moves every file with an extension into\n" +
			"<dest>/<Category>/. Files without an extension stay where they are.\n" +
			"A log.txt audit log in the destination records every move and failure.",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			return runOrganize(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "Source directory (default paths.source_dir)")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "Destination directory (default paths.destination_dir)")
	cmd.Flags().StringVar(&opts.collision, "collision", "", "Collision policy: overwrite, skip, or rename (default organize.collision_policy)")
	cmd.Flags().BoolVar(&opts.pruneEmpty, "prune-empty", false, "Remove folders left empty in the source (default organize.prune_empty_dirs)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the terminal progress line")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, opts organizeOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	req, err := ctx.resolveRoots(opts.source, opts.dest)
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	runCfg := withRunOverrides(cfg, opts)
	org, err := organizer.NewFromConfig(runCfg, logger, ctx.recorder(logger))
	if err != nil {
		return err
	}

	var bar *progressLine
	if !opts.noProgress && !opts.jsonOutput {
		bar = newProgressLine(cmd.ErrOrStderr())
	}
	summary, runErr := org.Organize(cmd.Context(), req, bar.Update)
	bar.Finish()
	notifyRun(cmd.Context(), logger, notifications.NewService(runCfg), summary, runErr)

	if opts.jsonOutput {
		if err := writeJSON(cmd, newSummaryView(summary, runErr)); err != nil {
			return err
		}
	} else {
		renderSummary(cmd.OutOrStdout(), summary, runErr)
	}

	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) could not be moved; see %s", summary.Failed, summary.ReportPath())
	}
	return nil
}

func withRunOverrides(cfg *config.Config, opts organizeOptions) *config.Config {
	if opts.collision == "" && !opts.pruneEmpty {
		return cfg
	}
	clone := *cfg
	if opts.collision != "" {
		clone.Organize.CollisionPolicy = opts.collision
	}
	if opts.pruneEmpty {
		clone.Organize.PruneEmptyDirs = true
	}
	return &clone
}
