package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"splice/internal/batchexport"
	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/identity"
	"splice/internal/logging"
	"splice/internal/modified"
	"splice/internal/project"
	"splice/internal/recovery"
)

// AppName is used in window titles.
const AppName = "Splice"

var (
	// ErrLoadInProgress is returned when an operation would race a running load.
	ErrLoadInProgress = errors.New("a project load is already in progress")
	// ErrNoRecentEntry is returned by OpenRecent for an index outside the list.
	ErrNoRecentEntry = errors.New("no recent project at that position")
	// ErrClosed is returned for loads requested after Shutdown.
	ErrClosed = errors.New("project lifecycle is shut down")
)

// Options wires a Controller to its collaborators. Nil collaborators are
// replaced with inert defaults.
type Options struct {
	Serializer project.Serializer
	Files      FileSelector
	Confirm    Confirmer
	Recent     RecentFiles
	Undo       UndoStack
	Audio      AudioForwarder
	UI         UI

	// Slot is the autorecovery location. Nil disables recovery entirely.
	Slot             *recovery.Slot
	RecoveryInterval time.Duration
	RecoveryEnabled  bool

	// Extension is appended to save paths chosen without one.
	Extension string
	AppName   string
	Logger    *slog.Logger
}

// OptionsFromConfig fills the recovery and project settings from cfg.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Slot:             recovery.NewSlot(cfg.RecoverySlotPath(), logger),
		RecoveryInterval: cfg.RecoveryInterval(),
		RecoveryEnabled:  cfg.Recovery.Enabled,
		Extension:        cfg.Project.Extension,
		AppName:          AppName,
		Logger:           logger,
	}
}

// Controller is the project lifecycle owner.
type Controller struct {
	serializer project.Serializer
	files      FileSelector
	confirm    Confirmer
	recent     RecentFiles
	undo       UndoStack
	audio      AudioForwarder
	ui         UI

	slot        *recovery.Slot
	snapshotter *recovery.Snapshotter
	interval    time.Duration
	extension   string
	appName     string
	logger      *slog.Logger
	now         func() time.Time
	exists      func(path string) bool

	// turn is held by a load for its whole run and by a recovery write.
	turn sync.Mutex
	wg   sync.WaitGroup

	mu       sync.Mutex
	project  *project.Project
	ident    identity.Identity
	mod      modified.Tracker
	schedule recovery.Schedule
	batch    *batchexport.State
	loading  *LoadTask

	renderDepth     int
	savedEnabled    bool
	savedForwarding bool

	launchPath          string
	autorecoveryChecked bool
	closed              bool
}

// New constructs a controller holding an empty, unsaved project.
func New(opts Options) *Controller {
	c := &Controller{
		serializer: opts.Serializer,
		files:      opts.Files,
		confirm:    opts.Confirm,
		recent:     opts.Recent,
		undo:       opts.Undo,
		audio:      opts.Audio,
		ui:         opts.UI,
		slot:       opts.Slot,
		interval:   opts.RecoveryInterval,
		extension:  opts.Extension,
		appName:    opts.AppName,
		logger:     logging.NewComponentLogger(opts.Logger, "lifecycle"),
		now:        time.Now,
		exists:     fileutil.Exists,
		project:    project.New(),
		batch:      batchexport.NewState(),
		schedule: recovery.Schedule{
			IntervalSeconds: int((opts.RecoveryInterval + time.Second - 1) / time.Second),
			Enabled:         opts.RecoveryEnabled && opts.Slot != nil && opts.RecoveryInterval > 0,
		},
	}
	if c.serializer == nil {
		c.serializer = project.NewFileSerializer()
	}
	if c.files == nil {
		c.files = noFiles{}
	}
	if c.confirm == nil {
		c.confirm = noConfirm{}
	}
	if c.recent == nil {
		c.recent = noRecent{}
	}
	if c.undo == nil {
		c.undo = noUndo{}
	}
	if c.audio == nil {
		c.audio = NewAudioSwitch()
	}
	if c.ui == nil {
		c.ui = logUI{logger: c.logger}
	}
	if c.slot != nil {
		c.snapshotter = recovery.NewSnapshotter(c.slot, c.serializer, c, opts.RecoveryInterval, opts.Logger)
	}
	return c
}

// Start takes the recovery slot lock and launches the periodic snapshotter.
// When another process owns the slot this session runs without recovery.
func (c *Controller) Start(ctx context.Context) error {
	if c.slot == nil {
		return nil
	}
	held, err := c.slot.Acquire()
	if err != nil {
		return err
	}
	if !held {
		c.mu.Lock()
		c.schedule.Enabled = false
		c.savedEnabled = false
		c.mu.Unlock()
		logging.WarnWithContext(c.logger, "recovery slot in use by another instance", "recovery_slot_busy",
			logging.String("slot", c.slot.Path()),
			logging.String(logging.FieldErrorHint, "close the other Splice instance to re-enable autorecovery"),
			logging.String(logging.FieldImpact, "this session is not protected by autorecovery"))
		return nil
	}
	if c.interval <= 0 {
		return nil
	}
	return c.snapshotter.Start(ctx)
}

// Close stops background work, removes the recovery snapshot and releases
// the slot. It does not ask about unsaved changes; use Quit for that.
func (c *Controller) Close() error {
	return c.Shutdown(false)
}

// Shutdown stops background work and releases the slot. With keepSnapshot
// the recovery file stays behind so the next session offers to restore it.
func (c *Controller) Shutdown(keepSnapshot bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.snapshotter != nil {
		c.snapshotter.Stop()
	}
	c.wg.Wait()

	if c.slot == nil || !c.slot.Held() {
		return nil
	}
	var errs []error
	if !keepSnapshot {
		if err := c.slot.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.slot.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release recovery lock: %w", err))
	}
	c.logger.Info("project lifecycle shut down", logging.Bool("snapshot_kept", keepSnapshot))
	return errors.Join(errs...)
}

// Quit runs the close check and, when it passes, shuts down cleanly.
func (c *Controller) Quit(ctx context.Context) (bool, error) {
	ok, err := c.CanCloseProject(ctx)
	if err != nil || !ok {
		return false, err
	}
	return true, c.Close()
}

// Identity returns a copy of the project identity.
func (c *Controller) Identity() identity.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ident
}

// Modified returns the modified flags.
func (c *Controller) Modified() modified.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mod.State()
}

// Schedule returns the recovery schedule.
func (c *Controller) Schedule() recovery.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schedule
}

// BatchExport returns the batch export job state.
func (c *Controller) BatchExport() *batchexport.State {
	return c.batch
}

// Title renders the current window title.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ident.Title(c.appName, c.mod.IsDirty())
}

// Project returns a copy of the current project content.
func (c *Controller) Project() *project.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project.Clone()
}

// Loading reports whether a load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading != nil
}

// Mutate applies an edit to the project content and marks it modified.
func (c *Controller) Mutate(fn func(p *project.Project) error) error {
	c.mu.Lock()
	if c.loading != nil {
		c.mu.Unlock()
		return ErrLoadInProgress
	}
	if err := fn(c.project); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mod.MarkModified()
	c.mu.Unlock()
	c.refreshTitle()
	return nil
}

// SetModified forces the modified state. true records a mutation, false
// records a save without writing anything.
func (c *Controller) SetModified(modified bool) {
	c.mu.Lock()
	if modified {
		c.mod.MarkModified()
	} else {
		c.mod.MarkSaved()
	}
	c.mu.Unlock()
	c.refreshTitle()
}

// Undo steps the edit history back.
func (c *Controller) Undo() error {
	if c.Loading() {
		return ErrLoadInProgress
	}
	return c.undo.Undo()
}

// Redo steps the edit history forward.
func (c *Controller) Redo() error {
	if c.Loading() {
		return ErrLoadInProgress
	}
	return c.undo.Redo()
}

// ClearUndoStack drops the edit history.
func (c *Controller) ClearUndoStack() {
	c.undo.Clear()
}

func (c *Controller) refreshTitle() {
	c.ui.SetTitle(c.Title())
}
