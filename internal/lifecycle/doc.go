// Package lifecycle owns the open project and orchestrates its new, open,
// import, save and close flows.
//
// A single Controller instance is created at startup and handed to the front
// end. It is the only writer of the project identity, the modified flags, the
// recovery schedule and the batch export job. Interactive calls are expected
// to come from one goroutine; the two background sources of mutation, the
// load worker and the recovery tick, apply their results under the
// controller's state lock.
//
// Loads run on their own goroutine and are observed through a LoadTask. At
// most one load is in flight; a second request fails with ErrLoadInProgress.
// A load holds the controller's turn for its whole duration, and recovery
// ticks that find the turn taken are skipped.
package lifecycle
