// Package refresh runs panel refreshes on a schedule.
//
// This package is internal to emojistatus. A [Scheduler] runs a set of
// [Task] values on a bounded worker pool: every task immediately on start,
// then each task again whenever its interval has elapsed. Results are
// delivered on a channel for a single consumer to apply.
//
// Task functions are called within a panic recovery boundary; a panic is
// reported as a failed [Result] with a correlation ID that also appears in
// the logged stack trace.
package refresh
