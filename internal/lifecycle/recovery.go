package lifecycle

import (
	"context"

	"splice/internal/recovery"
)

// BeginRecovery hands the snapshotter a copy of the project when a snapshot
// is due. It holds the turn until FinishRecovery so a load cannot replace the
// project mid-write; a tick that finds a load running is skipped.
func (c *Controller) BeginRecovery() (recovery.Job, bool) {
	if !c.turn.TryLock() {
		return recovery.Job{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.schedule.Enabled || c.renderDepth > 0 || !c.mod.DirtySinceLastRecovery() {
		c.turn.Unlock()
		return recovery.Job{}, false
	}
	original, _ := c.ident.Path()
	return recovery.Job{
		Project:      c.project.Clone(),
		Revision:     c.mod.Revision(),
		OriginalPath: original,
	}, true
}

// FinishRecovery records the outcome of a snapshot started by BeginRecovery.
// A failed write leaves the project due for the next tick.
func (c *Controller) FinishRecovery(job recovery.Job, err error) {
	defer c.turn.Unlock()
	if err != nil {
		return
	}
	c.mu.Lock()
	c.mod.MarkRecovered(job.Revision)
	c.mu.Unlock()
}

// SaveRecoveryNow writes a snapshot immediately if one is due. Front ends
// call it right before entering the rendering state.
func (c *Controller) SaveRecoveryNow(ctx context.Context) recovery.TickResult {
	if c.snapshotter == nil || !c.slot.Held() {
		return recovery.TickIdle
	}
	return c.snapshotter.Tick(ctx)
}
