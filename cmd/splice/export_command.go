package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/batchexport"
	"splice/internal/lifecycle"
	"splice/internal/recent"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var projectPath string
	var outputName string
	var format string
	var start, end int64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Plan an unattended batch export of a project",
		Long: "Opens the project, fills the batch export job and writes the render manifest\n" +
			"for the active sequence. Unset --start/--end fall back to the sequence in/out points.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(format) == "" {
				format = cfg.Export.DefaultFormat
			}
			exportFormat, err := batchexport.ParseFormat(format)
			if err != nil {
				return err
			}
			store, err := recent.Open(cfg)
			if err != nil {
				return fmt.Errorf("open recent projects: %w", err)
			}
			defer store.Close()

			opts := lifecycle.OptionsFromConfig(cfg, logger)
			// A batch run must not claim or clear an interactive session's slot.
			opts.Slot = nil
			opts.Recent = store
			controller := lifecycle.New(opts)
			defer controller.Close()

			controller.LoadProjectOnLaunch(projectPath)
			task, err := controller.FinishedInitialize(cmd.Context())
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("no project given")
			}
			if err := task.Wait(cmd.Context()); err != nil {
				return fmt.Errorf("load project: %w", err)
			}

			job := controller.BatchExport()
			job.SetBatchMode(true)
			job.SetStartFrame(start)
			job.SetEndFrame(end)
			job.SetOutputName(outputName)
			job.SetFormat(exportFormat)

			controller.SaveRecoveryNow(cmd.Context())
			controller.SetRenderingState(true)
			defer controller.SetRenderingState(false)

			manifest, err := batchexport.BuildManifest(job.Snapshot(), controller.Project(), time.Now())
			if err != nil {
				return err
			}
			path, err := manifest.Write(cfg.Export.ManifestDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s manifest for %q frames %d-%d (%d clips) to %s\n",
				manifest.Format, manifest.Sequence, manifest.StartFrame, manifest.EndFrame, len(manifest.Clips), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "Project file to export")
	cmd.Flags().StringVarP(&outputName, "name", "n", "", "Output name")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (avi, mpeg4, png, tiff, mp3)")
	cmd.Flags().Int64Var(&start, "start", batchexport.Unset, "First frame (default: sequence in point)")
	cmd.Flags().Int64Var(&end, "end", batchexport.Unset, "Last frame (default: sequence out point)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
