package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"splice/internal/failure"
	"splice/internal/fileutil"
	"splice/internal/logging"
	"splice/internal/project"
)

// Meta describes the snapshot currently held in the slot.
type Meta struct {
	OriginalPath string    `json:"original_path"`
	SavedAt      time.Time `json:"saved_at"`
	Revision     uint64    `json:"revision"`
}

// Slot is the autorecovery file location.
type Slot struct {
	path     string
	metaPath string
	logger   *slog.Logger

	mu   sync.Mutex
	lock *flock.Flock
	held bool
}

// NewSlot returns a slot rooted at path. The metadata sidecar and lock file
// live beside it.
func NewSlot(path string, logger *slog.Logger) *Slot {
	return &Slot{
		path:     path,
		metaPath: path + ".meta.json",
		logger:   logging.NewComponentLogger(logger, "recovery-slot"),
		lock:     flock.New(path + ".lock"),
	}
}

// Path returns the snapshot file path.
func (s *Slot) Path() string { return s.path }

// Acquire takes the single-writer lock. It returns false when another process
// already holds it.
func (s *Slot) Acquire() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return true, nil
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire recovery lock: %w", err)
	}
	s.held = ok
	return ok, nil
}

// Held reports whether this process owns the slot.
func (s *Slot) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// Release drops the single-writer lock.
func (s *Slot) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		return nil
	}
	s.held = false
	return s.lock.Unlock()
}

// Exists reports whether a snapshot is present.
func (s *Slot) Exists() bool {
	return fileutil.Exists(s.path)
}

// Write stores p in the slot followed by its metadata.
func (s *Slot) Write(ctx context.Context, ser project.Serializer, p *project.Project, meta Meta) error {
	if !s.Held() {
		return failure.Wrap(failure.ErrRecoveryWrite, "recovery", "write", "slot lock not held", nil)
	}
	if err := ser.Serialize(ctx, p, s.path); err != nil {
		return failure.Wrap(failure.ErrRecoveryWrite, "recovery", "write", s.path, err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return failure.Wrap(failure.ErrRecoveryWrite, "recovery", "write", "marshal metadata", err)
	}
	if err := fileutil.WriteFileAtomic(s.metaPath, data, 0o644); err != nil {
		return failure.Wrap(failure.ErrRecoveryWrite, "recovery", "write", s.metaPath, err)
	}
	return nil
}

// Meta reads the snapshot metadata. A missing sidecar yields a zero Meta.
func (s *Slot) Meta() (Meta, error) {
	data, err := os.ReadFile(s.metaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Meta{}, nil
		}
		return Meta{}, fmt.Errorf("read recovery metadata: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse recovery metadata: %w", err)
	}
	return meta, nil
}

// Clear removes the snapshot and its metadata.
func (s *Slot) Clear() error {
	if err := fileutil.RemoveIfExists(s.path); err != nil {
		return fmt.Errorf("remove recovery file: %w", err)
	}
	if err := fileutil.RemoveIfExists(s.metaPath); err != nil {
		return fmt.Errorf("remove recovery metadata: %w", err)
	}
	s.logger.Debug("recovery slot cleared", logging.String("path", s.path))
	return nil
}
