// Package convert launches compiled conversion commands and tracks their
// progress.
//
// Executor.Launch spawns one ffmpeg child process per container, each writing
// a private progress feed in the scratch directory. Tracker polls all jobs
// from a single goroutine on a fixed cadence: it classifies each job as
// running, completed, errored, or stalled, and folds per-job positions into
// an aggregate that never regresses. There are no callbacks on process exit;
// polling is the only observation mechanism, matching the append-and-rewrite
// behaviour of ffmpeg's -progress output.
package convert
