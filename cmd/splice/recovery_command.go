package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/preflight"
	"splice/internal/recovery"
)

var errSlotInUse = errors.New("recovery slot is in use by a running session")

func newRecoveryCommand(ctx *commandContext) *cobra.Command {
	recoveryCmd := &cobra.Command{
		Use:   "recovery",
		Short: "Inspect or manage the autorecovery snapshot",
	}
	recoveryCmd.AddCommand(newRecoveryStatusCommand(ctx))
	recoveryCmd.AddCommand(newRecoveryDiscardCommand(ctx))
	recoveryCmd.AddCommand(newRecoveryExportCommand(ctx))
	return recoveryCmd
}

func openSlot(ctx *commandContext) (*config.Config, *recovery.Slot, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, recovery.NewSlot(cfg.RecoverySlotPath(), logger), nil
}

func newRecoveryStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the autorecovery slot and preflight checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, slot, err := openSlot(ctx)
			if err != nil {
				return err
			}
			held, err := slot.Acquire()
			if err != nil {
				return err
			}
			if held {
				defer slot.Release()
			}

			rows := [][]string{
				{"Slot", slot.Path()},
				{"Enabled", yesNo(cfg.Recovery.Enabled)},
				{"Interval", cfg.RecoveryInterval().String()},
				{"Snapshot present", yesNo(slot.Exists())},
				{"Session running", yesNo(!held)},
			}
			if slot.Exists() {
				meta, err := slot.Meta()
				if err != nil {
					return err
				}
				original := meta.OriginalPath
				if original == "" {
					original = "(unsaved project)"
				}
				rows = append(rows,
					[]string{"Original project", original},
					[]string{"Saved at", meta.SavedAt.Local().Format("2006-01-02 15:04:05")},
					[]string{"Revision", strconv.FormatUint(meta.Revision, 10)},
				)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
			fmt.Fprintln(out, "Preflight:")
			if !writePreflight(out, preflight.RunAll(cfg)) {
				fmt.Fprintln(out, "Autorecovery cannot write snapshots until the failures above are fixed")
			}
			return nil
		},
	}
}

func newRecoveryDiscardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Delete the autorecovery snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, slot, err := openSlot(ctx)
			if err != nil {
				return err
			}
			held, err := slot.Acquire()
			if err != nil {
				return err
			}
			if !held {
				return errSlotInUse
			}
			defer slot.Release()

			out := cmd.OutOrStdout()
			if !slot.Exists() {
				fmt.Fprintln(out, "No autorecovery snapshot present")
				return nil
			}
			if err := slot.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Autorecovery snapshot discarded")
			return nil
		},
	}
}

func newRecoveryExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <destination>",
		Short: "Copy the autorecovery snapshot to a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, slot, err := openSlot(ctx)
			if err != nil {
				return err
			}
			held, err := slot.Acquire()
			if err != nil {
				return err
			}
			if !held {
				return errSlotInUse
			}
			defer slot.Release()

			if !slot.Exists() {
				return errors.New("no autorecovery snapshot present")
			}
			dest, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			if !strings.HasSuffix(dest, cfg.Project.Extension) {
				dest += cfg.Project.Extension
			}
			if fileutil.Exists(dest) {
				return fmt.Errorf("%s already exists", dest)
			}
			if err := fileutil.CopyFileVerified(slot.Path(), dest); err != nil {
				return fmt.Errorf("copy snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied autorecovery snapshot to %s\n", dest)
			return nil
		},
	}
}
