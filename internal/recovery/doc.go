// Package recovery writes crash-recovery snapshots of the open project.
//
// A Slot is the single, install-scoped autorecovery file plus a metadata
// sidecar naming the project the snapshot came from. A process takes an
// advisory lock on the slot before writing so two running instances never
// interleave snapshots.
//
// The Snapshotter ticks at a fixed interval and asks its Source for work. The
// Source decides whether a snapshot is due and applies the outcome under its
// own state lock; the Snapshotter only moves bytes. Write failures are logged
// and retried on the next tick, never surfaced to the user.
package recovery
