// Package modified tracks whether the open project has unsaved changes and
// whether it changed since the last autorecovery snapshot.
//
// The two flags are independent: a user save clears only the dirty flag, a
// recovery snapshot clears only the recovery flag. A revision counter lets a
// snapshot that raced with an edit leave the recovery flag set.
//
// Tracker is not safe for concurrent use; its owner serializes access.
package modified

// State is a point-in-time copy of the tracker flags.
type State struct {
	IsDirty                bool
	DirtySinceLastRecovery bool
	Revision               uint64
}

// Tracker holds the modified flags for one project.
type Tracker struct {
	dirty         bool
	sinceRecovery bool
	revision      uint64
}

// MarkModified records a content mutation.
func (t *Tracker) MarkModified() {
	t.dirty = true
	t.sinceRecovery = true
	t.revision++
}

// MarkSaved records a successful user-initiated save.
func (t *Tracker) MarkSaved() {
	t.dirty = false
}

// MarkRecovered clears the recovery flag if no mutation happened after the
// snapshot of revision rev was taken. It reports whether the flag was cleared.
func (t *Tracker) MarkRecovered(rev uint64) bool {
	if rev != t.revision {
		return false
	}
	t.sinceRecovery = false
	return true
}

// Reset returns the tracker to a clean state for a fresh or freshly loaded project.
func (t *Tracker) Reset() {
	t.dirty = false
	t.sinceRecovery = false
	t.revision++
}

// IsDirty reports whether there are unsaved changes.
func (t *Tracker) IsDirty() bool { return t.dirty }

// DirtySinceLastRecovery reports whether a recovery snapshot is due.
func (t *Tracker) DirtySinceLastRecovery() bool { return t.sinceRecovery }

// Revision returns the current content revision.
func (t *Tracker) Revision() uint64 { return t.revision }

// State returns a copy of the current flags.
func (t *Tracker) State() State {
	return State{IsDirty: t.dirty, DirtySinceLastRecovery: t.sinceRecovery, Revision: t.revision}
}
