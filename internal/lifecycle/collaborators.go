package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"splice/internal/failure"
	"splice/internal/logging"
)

// Choice is the answer to the unsaved-changes prompt.
type Choice int

const (
	// ChoiceCancel aborts the operation that asked.
	ChoiceCancel Choice = iota
	// ChoiceSave saves before continuing.
	ChoiceSave
	// ChoiceDiscard drops unsaved changes.
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// FileSelector picks project paths. ok is false when the user cancelled.
type FileSelector interface {
	ChooseOpenPath(ctx context.Context) (path string, ok bool, err error)
	ChooseSavePath(ctx context.Context) (path string, ok bool, err error)
}

// Confirmer asks the user questions.
type Confirmer interface {
	AskSaveDiscardCancel(ctx context.Context) (Choice, error)
	AskYesNo(ctx context.Context, prompt string) (bool, error)
}

// RecentFiles is the most-recently-used project list.
type RecentFiles interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, path string) error
}

// UndoStack is the edit history. The controller only forwards to it.
type UndoStack interface {
	Undo() error
	Redo() error
	Clear()
}

// AudioForwarder controls whether the playback buffer reaches the output device.
type AudioForwarder interface {
	Forwarding() bool
	SetForwarding(enabled bool)
}

// UI receives user-visible notifications.
type UI interface {
	ShowError(err error)
	SetTitle(title string)
}

type noFiles struct{}

func (noFiles) ChooseOpenPath(context.Context) (string, bool, error) { return "", false, nil }
func (noFiles) ChooseSavePath(context.Context) (string, bool, error) { return "", false, nil }

// noConfirm cancels every prompt so unattended callers never lose work.
type noConfirm struct{}

func (noConfirm) AskSaveDiscardCancel(context.Context) (Choice, error) { return ChoiceCancel, nil }
func (noConfirm) AskYesNo(context.Context, string) (bool, error)       { return false, nil }

type noRecent struct{}

func (noRecent) List(context.Context) ([]string, error) { return nil, nil }
func (noRecent) Add(context.Context, string) error      { return nil }

type noUndo struct{}

func (noUndo) Undo() error { return nil }
func (noUndo) Redo() error { return nil }
func (noUndo) Clear()      {}

// AudioSwitch is an in-memory AudioForwarder for front ends without playback.
type AudioSwitch struct {
	mu      sync.Mutex
	enabled bool
}

// NewAudioSwitch returns a switch with forwarding on.
func NewAudioSwitch() *AudioSwitch {
	return &AudioSwitch{enabled: true}
}

// Forwarding reports the current state.
func (a *AudioSwitch) Forwarding() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetForwarding updates the state.
func (a *AudioSwitch) SetForwarding(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

type logUI struct {
	logger *slog.Logger
}

func (u logUI) ShowError(err error) {
	logging.ErrorWithContext(u.logger, "project operation failed", "project_error",
		logging.Error(err),
		logging.String("kind", failure.Kind(err)))
}

func (logUI) SetTitle(string) {}
