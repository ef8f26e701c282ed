package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/fileutil"
	"splice/internal/recent"
)

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var clearAll bool
	var remove string

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := recent.Open(cfg)
			if err != nil {
				return fmt.Errorf("open recent projects: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			switch {
			case clearAll:
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Recent projects cleared")
				return nil
			case remove != "":
				if err := store.Remove(cmd.Context(), remove); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %s from recent projects\n", remove)
				return nil
			}

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recent projects")
				return nil
			}
			fmt.Fprintln(out, renderRecent(entries))
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent projects")
	cmd.Flags().StringVar(&remove, "remove", "", "Forget one project path")
	return cmd
}

func renderRecent(entries []recent.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.Path,
			e.OpenedAt.Local().Format("2006-01-02 15:04"),
			yesNo(fileutil.Exists(e.Path)),
		})
	}
	return renderTable([]string{"#", "Project", "Last opened", "Exists"}, rows, 0)
}
