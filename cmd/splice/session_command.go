package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"splice/internal/lifecycle"
	"splice/internal/preflight"
	"splice/internal/project"
	"splice/internal/recent"
	"splice/internal/recovery"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "session [project]",
		Short: "Run an interactive editing session",
		Long: "Reads actions line by line from standard input. Dialogs are answered by the\n" +
			"following line, so a session can be scripted. Type \"help\" for the action list.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := recent.Open(cfg)
			if err != nil {
				return fmt.Errorf("open recent projects: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			in := newLineReader(cmd.InOrStdin())
			prompter := &terminalPrompter{in: in, out: out}
			history := &editHistory{}

			opts := lifecycle.OptionsFromConfig(cfg, logger)
			opts.Files = prompter
			opts.Confirm = prompter
			opts.Recent = store
			opts.Undo = history
			opts.UI = &sessionUI{out: out, errOut: cmd.ErrOrStderr()}
			if results := preflight.RunAll(cfg); !preflight.AllPassed(results) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Autorecovery disabled; preflight failed:")
				writePreflight(cmd.ErrOrStderr(), results)
				opts.Slot = nil
			}

			controller := lifecycle.New(opts)
			history.controller = controller
			s := &session{
				controller:  controller,
				history:     history,
				recent:      store,
				in:          in,
				out:         out,
				errOut:      cmd.ErrOrStderr(),
				interactive: isInteractive(cmd.InOrStdin()),
			}
			var launch string
			if len(args) == 1 {
				launch = args[0]
			}
			return s.run(cmd.Context(), launch)
		},
	}
}

type session struct {
	controller  *lifecycle.Controller
	history     *editHistory
	recent      *recent.Store
	in          *lineReader
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

func (s *session) run(ctx context.Context, launch string) error {
	c := s.controller
	if err := c.Start(ctx); err != nil {
		return err
	}

	restored := false
	task, err := c.CheckForAutorecoveryFile(ctx)
	if err != nil {
		s.report(err)
	}
	if task != nil {
		restored = s.await(ctx, task)
	}

	if launch != "" {
		if restored {
			fmt.Fprintf(s.out, "Skipping %s: the autorecovery project was restored instead\n", launch)
		} else {
			c.LoadProjectOnLaunch(launch)
		}
	}
	task, err = c.FinishedInitialize(ctx)
	if err != nil {
		s.report(err)
	}
	s.await(ctx, task)

	for {
		if s.interactive {
			fmt.Fprint(s.out, "> ")
		}
		line, ok := s.in.next()
		if !ok {
			return s.endOfInput(ctx)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		id, rest := strings.ToLower(fields[0]), fields[1:]

		switch id {
		case "help":
			s.help()
			continue
		case "status":
			s.status()
			continue
		case "edit":
			s.edit(rest)
			continue
		case "recent":
			s.listRecent(ctx)
			continue
		}

		outcome, err := c.Dispatch(ctx, id, rest)
		if err != nil {
			s.report(err)
			continue
		}
		if outcome.Task != nil {
			s.await(ctx, outcome.Task)
			continue
		}
		if !outcome.Performed {
			fmt.Fprintf(s.out, "%s cancelled\n", id)
			continue
		}
		if id == "quit" {
			fmt.Fprintln(s.out, "Goodbye")
			return nil
		}
	}
}

// endOfInput quits when nothing would be lost; otherwise the unsaved work is
// left in the recovery slot for the next session.
func (s *session) endOfInput(ctx context.Context) error {
	c := s.controller
	if !c.Modified().IsDirty {
		return c.Close()
	}
	if c.SaveRecoveryNow(ctx) == recovery.TickFailed {
		fmt.Fprintln(s.errOut, "Input ended with unsaved changes and the autorecovery snapshot failed")
	} else {
		fmt.Fprintln(s.errOut, "Input ended with unsaved changes; they are kept for autorecovery")
	}
	return c.Shutdown(true)
}

// await blocks until task completes and reports whether it succeeded.
func (s *session) await(ctx context.Context, task *lifecycle.LoadTask) bool {
	if task == nil {
		return false
	}
	if err := task.Wait(ctx); err != nil {
		// Load failures have already been shown through the UI.
		return false
	}
	req := task.Request()
	switch {
	case req.Recovery:
		fmt.Fprintln(s.out, "Restored autorecovery project")
	case req.Mode == lifecycle.LoadImport:
		// Snapshots taken before the merge would drop the imported content.
		s.history.Clear()
		fmt.Fprintf(s.out, "Imported %s\n", req.Path)
	default:
		fmt.Fprintf(s.out, "Opened %s\n", req.Path)
	}
	return true
}

func (s *session) report(err error) {
	fmt.Fprintf(s.errOut, "error: %v\n", err)
}

func (s *session) help() {
	fmt.Fprintln(s.out, "Actions:")
	for _, id := range lifecycle.ActionIDs() {
		fmt.Fprintf(s.out, "  %s\n", id)
	}
	fmt.Fprintln(s.out, "  edit <sequence> <media-path> [in] [out]")
	fmt.Fprintln(s.out, "  recent")
	fmt.Fprintln(s.out, "  status")
}

func (s *session) status() {
	c := s.controller
	path, _ := c.Identity().Path()
	state := c.Modified()
	schedule := c.Schedule()
	p := c.Project()
	undo, redo := s.history.depth()

	rows := [][]string{
		{"Title", c.Title()},
		{"Path", path},
		{"Unsaved changes", yesNo(state.IsDirty)},
		{"Changed since snapshot", yesNo(state.DirtySinceLastRecovery)},
		{"Autorecovery", yesNo(schedule.Enabled)},
		{"Rendering", yesNo(c.Rendering())},
		{"Sequences", strconv.Itoa(len(p.Sequences))},
		{"Media", strconv.Itoa(len(p.Media))},
		{"Undo / redo", fmt.Sprintf("%d / %d", undo, redo)},
	}
	fmt.Fprintln(s.out, renderTable([]string{"Field", "Value"}, rows))
}

func (s *session) edit(args []string) {
	if len(args) < 2 {
		s.report(fmt.Errorf("usage: edit <sequence> <media-path> [in] [out]"))
		return
	}
	var in, out int64 = 0, 100
	var err error
	if len(args) > 2 {
		if in, err = strconv.ParseInt(args[2], 10, 64); err != nil {
			s.report(fmt.Errorf("in point: %w", err))
			return
		}
	}
	if len(args) > 3 {
		if out, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			s.report(fmt.Errorf("out point: %w", err))
			return
		}
	}

	before := s.controller.Project()
	err = s.controller.Mutate(func(p *project.Project) error {
		media := project.Media{ID: uuid.NewString(), Path: args[1], Kind: "video"}
		p.Media = append(p.Media, media)
		seq, ok := p.Sequence(args[0])
		if !ok {
			p.Sequences = append(p.Sequences, project.Sequence{Name: args[0], FrameRate: 25, Width: 1920, Height: 1080})
			seq = &p.Sequences[len(p.Sequences)-1]
		}
		seq.Clips = append(seq.Clips, project.Clip{MediaID: media.ID, In: in, Out: out})
		seq.OutPoint = max(seq.OutPoint, out)
		if p.ActiveSequence == "" {
			p.ActiveSequence = seq.Name
		}
		return nil
	})
	if err != nil {
		s.report(err)
		return
	}
	s.history.record(before, s.controller.Project())
}

func (s *session) listRecent(ctx context.Context) {
	entries, err := s.recent.Entries(ctx)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Fprintln(s.out, renderRecent(entries))
}
