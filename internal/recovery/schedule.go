package recovery

// Schedule is the autorecovery timer configuration owned by the lifecycle
// controller. Enabled is forced false while an export runs;
// PendingExportSuppression records that the forcing is in effect.
type Schedule struct {
	IntervalSeconds          int
	Enabled                  bool
	PendingExportSuppression bool
}
