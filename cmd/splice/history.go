package main

import (
	"sync"

	"splice/internal/lifecycle"
	"splice/internal/project"
)

type snapshotPair struct {
	before *project.Project
	after  *project.Project
}

// projectEditor is the part of the controller the history drives.
type projectEditor interface {
	Mutate(fn func(p *project.Project) error) error
}

var _ projectEditor = (*lifecycle.Controller)(nil)

// editHistory is a snapshot-based undo stack for session edits. A step only
// moves between the stacks once its snapshot has been restored.
type editHistory struct {
	mu         sync.Mutex
	controller projectEditor
	undo       []snapshotPair
	redo       []snapshotPair
}

func (h *editHistory) record(before, after *project.Project) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo, snapshotPair{before: before, after: after})
	h.redo = nil
}

func (h *editHistory) Undo() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return nil
	}
	step := h.undo[len(h.undo)-1]
	if err := h.restore(step.before); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, step)
	return nil
}

func (h *editHistory) Redo() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return nil
	}
	step := h.redo[len(h.redo)-1]
	if err := h.restore(step.after); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, step)
	return nil
}

func (h *editHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = nil
	h.redo = nil
}

func (h *editHistory) depth() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo), len(h.redo)
}

func (h *editHistory) restore(p *project.Project) error {
	return h.controller.Mutate(func(dst *project.Project) error {
		*dst = *p.Clone()
		return nil
	})
}
