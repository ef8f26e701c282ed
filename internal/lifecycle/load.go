package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"splice/internal/logging"
	"splice/internal/project"
	"splice/internal/recovery"
)

// LoadMode selects how a loaded project is applied.
type LoadMode int

const (
	// LoadReplace swaps the open project for the loaded one.
	LoadReplace LoadMode = iota
	// LoadImport merges the loaded project into the open one.
	LoadImport
)

func (m LoadMode) String() string {
	if m == LoadImport {
		return "import"
	}
	return "replace"
}

// LoadRequest describes one load.
type LoadRequest struct {
	Path string
	Mode LoadMode
	// Recovery marks Path as the autorecovery slot. OriginalPath is the
	// project the snapshot was taken from.
	Recovery     bool
	OriginalPath string
}

// LoadTask is the future for a background load.
type LoadTask struct {
	id   string
	req  LoadRequest
	done chan struct{}
	err  error
}

func newLoadTask(req LoadRequest) *LoadTask {
	return &LoadTask{id: uuid.NewString(), req: req, done: make(chan struct{})}
}

// ID identifies the task in logs.
func (t *LoadTask) ID() string { return t.id }

// Request returns what was asked for.
func (t *LoadTask) Request() LoadRequest { return t.req }

// Done is closed once the result has been applied or rejected.
func (t *LoadTask) Done() <-chan struct{} { return t.done }

// Err returns the load error. It is nil until Done is closed.
func (t *LoadTask) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the load finishes or ctx ends.
func (t *LoadTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *LoadTask) finish(err error) {
	t.err = err
	close(t.done)
}

func (c *Controller) load(ctx context.Context, req LoadRequest) (*LoadTask, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.loading != nil {
		c.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	task := newLoadTask(req)
	c.loading = task
	c.wg.Add(1)
	c.mu.Unlock()

	// Loads are not user-cancellable; keep ctx values but drop its deadline.
	workCtx := logging.WithTaskID(context.WithoutCancel(ctx), task.id)
	go c.runLoad(workCtx, task)
	return task, nil
}

func (c *Controller) runLoad(ctx context.Context, task *LoadTask) {
	defer c.wg.Done()
	logger := logging.WithContext(ctx, c.logger).With(
		logging.String(logging.FieldProjectPath, task.req.Path),
		logging.String("mode", task.req.Mode.String()),
		logging.Bool("recovery", task.req.Recovery))
	logger.Debug("project load started")
	start := time.Now()

	err := c.loadUnderTurn(ctx, task.req)

	c.mu.Lock()
	c.loading = nil
	c.mu.Unlock()

	if err != nil {
		logging.WarnWithContext(logger, "project load failed", "project_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the file exists and is a Splice project"),
			logging.String(logging.FieldImpact, "the open project was left unchanged"))
		c.ui.ShowError(err)
		task.finish(err)
		return
	}

	if !task.req.Recovery {
		if err := c.recent.Add(ctx, task.req.Path); err != nil {
			logging.WarnWithContext(logger, "recent projects update failed", "recent_update_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "project missing from the recent list"))
		}
	}
	c.refreshTitle()
	logger.Info("project loaded", logging.Duration("elapsed", time.Since(start)))
	task.finish(nil)
}

func (c *Controller) loadUnderTurn(ctx context.Context, req LoadRequest) error {
	c.turn.Lock()
	defer c.turn.Unlock()

	loaded, err := c.serializer.Deserialize(ctx, req.Path)
	if err != nil {
		return err
	}
	var recovered string
	if req.Recovery {
		// Never point the identity at the slot or the original file.
		recovered = recovery.DerivePath(req.OriginalPath, c.now(), c.exists)
	}
	c.apply(req, loaded, recovered)
	if req.Mode == LoadReplace {
		c.undo.Clear()
	}
	return nil
}

func (c *Controller) apply(req LoadRequest, loaded *project.Project, recovered string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Mode == LoadImport {
		c.project.Merge(loaded)
		c.mod.MarkModified()
		return
	}

	c.project = loaded
	c.mod.Reset()
	if !req.Recovery {
		c.ident.SetPath(req.Path)
		return
	}

	if recovered != "" {
		c.ident.SetPath(recovered)
	} else {
		c.ident.Clear()
	}
	c.mod.MarkModified()
}
