package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"splice/internal/logging"
	"splice/internal/project"
)

// CanCloseProject reports whether the open project may be replaced or
// discarded. A dirty project prompts Save/Discard/Cancel; Save returns the
// outcome of SaveProject.
func (c *Controller) CanCloseProject(ctx context.Context) (bool, error) {
	c.mu.Lock()
	dirty := c.mod.IsDirty()
	c.mu.Unlock()
	if !dirty {
		return true, nil
	}

	choice, err := c.confirm.AskSaveDiscardCancel(ctx)
	if err != nil {
		return false, err
	}
	c.logger.Debug("close check answered", logging.String("choice", choice.String()))
	switch choice {
	case ChoiceSave:
		return c.SaveProject(ctx)
	case ChoiceDiscard:
		return true, nil
	default:
		return false, nil
	}
}

// RequestNewProject replaces the open project with an empty, unsaved one.
// It reports false when the close check was declined.
func (c *Controller) RequestNewProject(ctx context.Context) (bool, error) {
	if c.Loading() {
		return false, ErrLoadInProgress
	}
	ok, err := c.CanCloseProject(ctx)
	if err != nil || !ok {
		return false, err
	}

	c.mu.Lock()
	c.project = project.New()
	c.ident.Clear()
	c.mod.Reset()
	c.mu.Unlock()
	c.batch.Reset()
	c.undo.Clear()
	c.refreshTitle()
	c.logger.Info("new project created")
	return true, nil
}

// RequestOpen loads path in place of the open project. An empty path asks
// the file selector. A nil task means the user cancelled.
func (c *Controller) RequestOpen(ctx context.Context, path string) (*LoadTask, error) {
	if c.Loading() {
		return nil, ErrLoadInProgress
	}
	path, ok, err := c.resolveOpenPath(ctx, path)
	if err != nil || !ok {
		return nil, err
	}
	ok, err = c.CanCloseProject(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return c.load(ctx, LoadRequest{Path: path, Mode: LoadReplace})
}

// ImportProject merges path into the open project without a close check.
func (c *Controller) ImportProject(ctx context.Context, path string) (*LoadTask, error) {
	if c.Loading() {
		return nil, ErrLoadInProgress
	}
	path, ok, err := c.resolveOpenPath(ctx, path)
	if err != nil || !ok {
		return nil, err
	}
	return c.load(ctx, LoadRequest{Path: path, Mode: LoadImport})
}

// OpenRecent opens the index-th entry of the recent projects list.
func (c *Controller) OpenRecent(ctx context.Context, index int) (*LoadTask, error) {
	paths, err := c.recent.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	if index < 0 || index >= len(paths) {
		return nil, fmt.Errorf("%w: %d", ErrNoRecentEntry, index)
	}
	return c.RequestOpen(ctx, paths[index])
}

// SaveProjectAs asks for a destination and saves there. It reports false
// when the user cancelled.
func (c *Controller) SaveProjectAs(ctx context.Context) (bool, error) {
	if c.Loading() {
		return false, ErrLoadInProgress
	}
	dest, ok, err := c.files.ChooseSavePath(ctx)
	if err != nil || !ok {
		return false, err
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return false, nil
	}
	if filepath.Ext(dest) == "" && c.extension != "" {
		dest += c.extension
	}
	return c.saveTo(ctx, dest)
}

// SaveProject overwrites the project's file, or behaves as SaveProjectAs
// when the project was never saved.
func (c *Controller) SaveProject(ctx context.Context) (bool, error) {
	if c.Loading() {
		return false, ErrLoadInProgress
	}
	c.mu.Lock()
	path, saved := c.ident.Path()
	c.mu.Unlock()
	if !saved {
		return c.SaveProjectAs(ctx)
	}
	return c.saveTo(ctx, path)
}

func (c *Controller) saveTo(ctx context.Context, dest string) (bool, error) {
	c.mu.Lock()
	snapshot := c.project.Clone()
	c.mu.Unlock()

	if err := c.serializer.Serialize(ctx, snapshot, dest); err != nil {
		return false, err
	}

	c.mu.Lock()
	c.ident.SetPath(dest)
	c.mod.MarkSaved()
	c.mu.Unlock()

	if err := c.recent.Add(ctx, dest); err != nil {
		logging.WarnWithContext(c.logger, "recent projects update failed", "recent_update_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "project missing from the recent list"))
	}
	c.refreshTitle()
	c.logger.Info("project saved", logging.String(logging.FieldProjectPath, dest))
	return true, nil
}

func (c *Controller) resolveOpenPath(ctx context.Context, path string) (string, bool, error) {
	if path = strings.TrimSpace(path); path != "" {
		return path, true, nil
	}
	path, ok, err := c.files.ChooseOpenPath(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	path = strings.TrimSpace(path)
	return path, path != "", nil
}

// CheckForAutorecoveryFile offers to restore the snapshot left by a session
// that did not shut down cleanly. Only the first call in a process does
// anything, and only when this process owns the recovery slot. A nil task
// means there was nothing to restore or the user declined; the snapshot is
// kept in that case.
func (c *Controller) CheckForAutorecoveryFile(ctx context.Context) (*LoadTask, error) {
	c.mu.Lock()
	already := c.autorecoveryChecked
	c.autorecoveryChecked = true
	c.mu.Unlock()
	if already || c.slot == nil || !c.slot.Held() || !c.slot.Exists() {
		return nil, nil
	}

	meta, err := c.slot.Meta()
	if err != nil {
		logging.WarnWithContext(c.logger, "recovery metadata unreadable", "recovery_meta_invalid",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the recovered project will be left unsaved"))
	}

	prompt := "Splice did not shut down cleanly. Load the autorecovery project?"
	if meta.OriginalPath != "" {
		prompt = fmt.Sprintf("Splice did not shut down cleanly. Load the autorecovery copy of %s?", filepath.Base(meta.OriginalPath))
	}
	accept, err := c.confirm.AskYesNo(ctx, prompt)
	if err != nil || !accept {
		return nil, err
	}
	c.logger.Info("restoring autorecovery project",
		logging.String(logging.FieldProjectPath, meta.OriginalPath),
		logging.Any("saved_at", meta.SavedAt))
	return c.load(ctx, LoadRequest{
		Path:         c.slot.Path(),
		Mode:         LoadReplace,
		Recovery:     true,
		OriginalPath: meta.OriginalPath,
	})
}

// LoadProjectOnLaunch records a project to open once FinishedInitialize runs.
func (c *Controller) LoadProjectOnLaunch(path string) {
	c.mu.Lock()
	c.launchPath = strings.TrimSpace(path)
	c.mu.Unlock()
}

// FinishedInitialize opens the launch project, if one was recorded. It
// returns nil when there was none.
func (c *Controller) FinishedInitialize(ctx context.Context) (*LoadTask, error) {
	c.mu.Lock()
	path := c.launchPath
	c.launchPath = ""
	c.mu.Unlock()
	c.refreshTitle()
	if path == "" {
		return nil, nil
	}
	return c.load(ctx, LoadRequest{Path: path, Mode: LoadReplace})
}
