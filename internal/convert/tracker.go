package convert

import (
	"context"
	"log/slog"
	"os"
	"time"

	"filmpress/internal/logging"
)

// State classifies one job on each poll tick.
type State int

const (
	// StateRunning means the process is alive and the progress feed parsed.
	StateRunning State = iota
	// StateCompleted means the process exited with code 0. Terminal.
	StateCompleted
	// StateErrored means the process exited nonzero. Terminal.
	StateErrored
	// StateStalled means the process is alive but this tick produced no
	// parsable progress value. Transient; the job is retried next tick.
	StateStalled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateErrored:
		return "errored"
	case StateStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateErrored
}

// JobStatus is one job's share of a tracker snapshot.
type JobStatus struct {
	Source         string
	Output         string
	State          State
	ProgressMicros int64
	TotalMicros    int64
	Diagnostics    string
}

// Snapshot is the aggregate view produced by one poll tick.
type Snapshot struct {
	Jobs            []JobStatus
	AggregateMicros int64
	TotalMicros     int64
	Active          int
	Failed          int
}

// Tracker drives the cooperative poll loop over all launched jobs from a
// single goroutine, so no locking is needed around job state or the
// aggregate.
type Tracker struct {
	jobs   []*Job
	logger *slog.Logger
}

// NewTracker wraps the given jobs for polling.
func NewTracker(jobs []*Job, logger *slog.Logger) *Tracker {
	return &Tracker{
		jobs:   jobs,
		logger: logging.NewComponentLogger(logger, "tracker"),
	}
}

// Tick polls every job once and returns the combined snapshot. Terminal jobs
// contribute their full duration to the aggregate so it never regresses when
// a job finishes short of its last observed position.
func (t *Tracker) Tick() Snapshot {
	snapshot := Snapshot{Jobs: make([]JobStatus, 0, len(t.jobs))}
	for _, job := range t.jobs {
		t.poll(job)

		status := JobStatus{
			Source:         job.Source(),
			Output:         job.Output(),
			State:          job.state,
			ProgressMicros: job.progress,
			TotalMicros:    job.TotalMicros(),
		}
		contribution := job.progress
		switch job.state {
		case StateCompleted:
			contribution = job.TotalMicros()
		case StateErrored:
			contribution = job.TotalMicros()
			status.Diagnostics = job.Diagnostics()
			snapshot.Failed++
		default:
			snapshot.Active++
		}
		status.ProgressMicros = contribution
		snapshot.AggregateMicros += contribution
		snapshot.TotalMicros += job.TotalMicros()
		snapshot.Jobs = append(snapshot.Jobs, status)
	}
	return snapshot
}

func (t *Tracker) poll(job *Job) {
	if job.state.Terminal() {
		return
	}

	if exited, code := job.proc.exited(); exited {
		if code == 0 {
			job.state = StateCompleted
			job.progress = job.TotalMicros()
			t.logger.Info("transcode completed", logging.String("source", job.Source()))
		} else {
			job.state = StateErrored
			t.logger.Warn("transcode failed",
				logging.String("source", job.Source()),
				logging.Int("exit_code", code),
			)
		}
		return
	}

	data, err := os.ReadFile(job.feedPath)
	if err != nil {
		// feed not written yet, or torn away mid-read
		job.state = StateStalled
		return
	}
	micros, ok := ParseProgressFeed(data)
	if !ok {
		job.state = StateStalled
		return
	}
	// probed durations are estimates and the feed can report past them;
	// clamp so the aggregate stays within the sum of job totals
	if total := job.TotalMicros(); micros > total {
		micros = total
	}
	// a regression would be a malformed read; ignore rather than rewind
	if micros > job.progress {
		job.progress = micros
	}
	job.state = StateRunning
}

// Run ticks at the given interval until every job is terminal or the context
// is cancelled. Cancellation kills all still-running jobs before returning.
// onTick, if non-nil, observes every snapshot.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, onTick func(Snapshot)) (Snapshot, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snapshot := t.Tick()
		if onTick != nil {
			onTick(snapshot)
		}
		if snapshot.Active == 0 {
			return snapshot, nil
		}
		select {
		case <-ctx.Done():
			t.StopAll()
			return snapshot, ctx.Err()
		case <-ticker.C:
		}
	}
}

// StopAll kills every job that has not reached a terminal state. Killing one
// job does not disturb the accounting of the others.
func (t *Tracker) StopAll() {
	for _, job := range t.jobs {
		if job.state.Terminal() {
			continue
		}
		if err := job.proc.kill(); err != nil {
			t.logger.Warn("failed to stop transcode",
				logging.String("source", job.Source()),
				logging.Error(err),
			)
		}
	}
}

// Close releases every job's progress feed.
func (t *Tracker) Close() {
	for _, job := range t.jobs {
		if err := job.Close(); err != nil {
			t.logger.Warn("failed to remove progress feed",
				logging.String("source", job.Source()),
				logging.Error(err),
			)
		}
	}
}
