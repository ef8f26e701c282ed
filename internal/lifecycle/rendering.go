package lifecycle

import "splice/internal/logging"

// SetRenderingState brackets an export. Entering suspends autorecovery and
// audio forwarding; leaving restores them once every entry has been matched.
// Calls nest: true, true, false leaves both still suspended. A false with no
// matching true is ignored.
func (c *Controller) SetRenderingState(rendering bool) {
	c.mu.Lock()
	var restoreAudio, suspendAudio bool
	var forwarding bool
	switch {
	case rendering:
		c.renderDepth++
		if c.renderDepth == 1 {
			c.savedEnabled = c.schedule.Enabled
			c.schedule.Enabled = false
			c.schedule.PendingExportSuppression = true
			suspendAudio = true
		}
	case c.renderDepth == 0:
		c.mu.Unlock()
		c.logger.Debug("rendering end without matching begin ignored")
		return
	default:
		c.renderDepth--
		if c.renderDepth == 0 {
			c.schedule.Enabled = c.savedEnabled
			c.schedule.PendingExportSuppression = false
			restoreAudio = true
			forwarding = c.savedForwarding
		}
	}
	depth := c.renderDepth
	if suspendAudio {
		c.savedForwarding = c.audio.Forwarding()
		c.audio.SetForwarding(false)
	}
	if restoreAudio {
		c.audio.SetForwarding(forwarding)
	}
	c.mu.Unlock()

	c.logger.Debug("rendering state changed",
		logging.Bool("rendering", rendering),
		logging.Int("depth", depth))
}

// Rendering reports whether an export bracket is open.
func (c *Controller) Rendering() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderDepth > 0
}

// SetRecoveryEnabled toggles autorecovery. During an export the value is
// recorded and takes effect when rendering ends.
func (c *Controller) SetRecoveryEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enabled && (c.slot == nil || !c.slot.Held() || c.interval <= 0) {
		enabled = false
	}
	if c.renderDepth > 0 {
		c.savedEnabled = enabled
		return
	}
	c.schedule.Enabled = enabled
}
