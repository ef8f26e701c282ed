// Package recent persists the most-recently-used project list in SQLite.
//
// Every successful load or save upserts its path with the current time; List
// returns paths newest first, trimmed to the configured maximum. The store
// applies WAL pragmas and retries SQLITE_BUSY with exponential backoff so a
// second running instance sharing the data directory does not fail writes.
package recent
