package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"splice/internal/recovery"
)

// ErrUnknownAction is returned by Dispatch for an unregistered action id.
var ErrUnknownAction = errors.New("unknown action")

// Outcome reports what a dispatched action did.
type Outcome struct {
	// Performed is false when the user cancelled or there was nothing to do.
	Performed bool
	// Task is set by actions that start a load.
	Task *LoadTask
}

// ActionFunc runs one menu action against the controller.
type ActionFunc func(ctx context.Context, c *Controller, args []string) (Outcome, error)

var actions = map[string]ActionFunc{
	"new": func(ctx context.Context, c *Controller, _ []string) (Outcome, error) {
		ok, err := c.RequestNewProject(ctx)
		return Outcome{Performed: ok}, err
	},
	"open": func(ctx context.Context, c *Controller, args []string) (Outcome, error) {
		return taskOutcome(c.RequestOpen(ctx, joinArgs(args)))
	},
	"import": func(ctx context.Context, c *Controller, args []string) (Outcome, error) {
		return taskOutcome(c.ImportProject(ctx, joinArgs(args)))
	},
	"open-recent": func(ctx context.Context, c *Controller, args []string) (Outcome, error) {
		index, err := strconv.Atoi(joinArgs(args))
		if err != nil {
			return Outcome{}, fmt.Errorf("open-recent needs a list position: %w", err)
		}
		return taskOutcome(c.OpenRecent(ctx, index))
	},
	"save": func(ctx context.Context, c *Controller, _ []string) (Outcome, error) {
		ok, err := c.SaveProject(ctx)
		return Outcome{Performed: ok}, err
	},
	"save-as": func(ctx context.Context, c *Controller, _ []string) (Outcome, error) {
		ok, err := c.SaveProjectAs(ctx)
		return Outcome{Performed: ok}, err
	},
	"undo": func(_ context.Context, c *Controller, _ []string) (Outcome, error) {
		return Outcome{Performed: true}, c.Undo()
	},
	"redo": func(_ context.Context, c *Controller, _ []string) (Outcome, error) {
		return Outcome{Performed: true}, c.Redo()
	},
	"clear-undo": func(_ context.Context, c *Controller, _ []string) (Outcome, error) {
		c.ClearUndoStack()
		return Outcome{Performed: true}, nil
	},
	"render-begin": func(_ context.Context, c *Controller, _ []string) (Outcome, error) {
		c.SetRenderingState(true)
		return Outcome{Performed: true}, nil
	},
	"render-end": func(_ context.Context, c *Controller, _ []string) (Outcome, error) {
		c.SetRenderingState(false)
		return Outcome{Performed: true}, nil
	},
	"autorecover-now": func(ctx context.Context, c *Controller, _ []string) (Outcome, error) {
		return Outcome{Performed: c.SaveRecoveryNow(ctx) == recovery.TickWritten}, nil
	},
	"quit": func(ctx context.Context, c *Controller, _ []string) (Outcome, error) {
		ok, err := c.Quit(ctx)
		return Outcome{Performed: ok}, err
	},
}

// Dispatch runs the action registered under id.
func (c *Controller) Dispatch(ctx context.Context, id string, args []string) (Outcome, error) {
	fn, ok := actions[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	return fn(ctx, c, args)
}

// ActionIDs lists the registered action ids in sorted order.
func ActionIDs() []string {
	ids := make([]string, 0, len(actions))
	for id := range actions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func taskOutcome(task *LoadTask, err error) (Outcome, error) {
	return Outcome{Performed: task != nil, Task: task}, err
}

func joinArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " ")
}
