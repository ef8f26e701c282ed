package recovery

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"splice/internal/failure"
	"splice/internal/logging"
	"splice/internal/project"
)

// Job is one snapshot the Source asked for.
type Job struct {
	Project      *project.Project
	Revision     uint64
	OriginalPath string
}

// Source supplies snapshot work. When BeginRecovery reports true the
// Snapshotter calls FinishRecovery exactly once with the write outcome.
type Source interface {
	BeginRecovery() (Job, bool)
	FinishRecovery(job Job, err error)
}

// TickResult describes what a single tick did.
type TickResult int

const (
	// TickSkipped means a previous tick was still writing.
	TickSkipped TickResult = iota
	// TickIdle means the source had nothing to snapshot.
	TickIdle
	// TickWritten means a snapshot was stored.
	TickWritten
	// TickFailed means the write failed and will be retried next tick.
	TickFailed
)

func (r TickResult) String() string {
	switch r {
	case TickSkipped:
		return "skipped"
	case TickIdle:
		return "idle"
	case TickWritten:
		return "written"
	case TickFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshotter runs the periodic autorecovery task.
type Snapshotter struct {
	slot       *Slot
	serializer project.Serializer
	source     Source
	interval   time.Duration
	logger     *slog.Logger
	now        func() time.Time

	writing atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSnapshotter constructs a snapshotter. interval must be positive.
func NewSnapshotter(slot *Slot, serializer project.Serializer, source Source, interval time.Duration, logger *slog.Logger) *Snapshotter {
	return &Snapshotter{
		slot:       slot,
		serializer: serializer,
		source:     source,
		interval:   interval,
		logger:     logging.NewComponentLogger(logger, "recovery"),
		now:        time.Now,
	}
}

// Start launches the ticker loop. It returns an error if the loop is already
// running.
func (s *Snapshotter) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("recovery interval must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("recovery snapshotter already running")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(loopCtx, s.done)
	s.logger.Info("recovery snapshotter started",
		logging.Duration("interval", s.interval),
		logging.String("slot", s.slot.Path()))
	return nil
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (s *Snapshotter) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("recovery snapshotter stopped")
}

// Running reports whether the loop is active.
func (s *Snapshotter) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Snapshotter) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one snapshot attempt. A tick that finds another tick still
// writing returns TickSkipped without waiting.
func (s *Snapshotter) Tick(ctx context.Context) TickResult {
	if !s.writing.CompareAndSwap(false, true) {
		s.logger.Debug("recovery tick skipped; previous snapshot still writing")
		return TickSkipped
	}
	defer s.writing.Store(false)

	job, ok := s.source.BeginRecovery()
	if !ok {
		return TickIdle
	}

	err := s.slot.Write(ctx, s.serializer, job.Project, Meta{
		OriginalPath: job.OriginalPath,
		SavedAt:      s.now().UTC(),
		Revision:     job.Revision,
	})
	if err != nil && !errors.Is(err, failure.ErrRecoveryWrite) {
		err = failure.Wrap(failure.ErrRecoveryWrite, "recovery", "tick", "", err)
	}
	s.source.FinishRecovery(job, err)

	if err != nil {
		logging.WarnWithContext(s.logger, "autorecovery snapshot failed", "recovery_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space and permissions of the data directory"),
			logging.String(logging.FieldImpact, "unsaved work is not protected until a later snapshot succeeds"))
		return TickFailed
	}
	s.logger.Debug("autorecovery snapshot written",
		logging.Uint64("revision", job.Revision),
		logging.String(logging.FieldProjectPath, job.OriginalPath))
	return TickWritten
}
