package convert

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"filmpress/internal/config"
	"filmpress/internal/container"
	"filmpress/internal/logging"
)

// Executor launches compiled conversion commands as child processes. Each
// launched job owns its process handle and a private progress feed in the
// scratch directory; no two jobs share mutable state.
type Executor struct {
	ffmpeg     string
	encoding   config.Encoding
	scratchDir string
	logger     *slog.Logger
}

// NewExecutor builds an Executor from application config.
func NewExecutor(cfg *config.Config, logger *slog.Logger) *Executor {
	return &Executor{
		ffmpeg:     cfg.FFmpegBinary(),
		encoding:   cfg.Encoding,
		scratchDir: cfg.Paths.ScratchDir,
		logger:     logging.NewComponentLogger(logger, "executor"),
	}
}

// Preview compiles the command a container would be launched with, using a
// placeholder progress feed path. Used for dry runs.
func (e *Executor) Preview(c *container.Container) []string {
	return c.BuildCommand(e.ffmpeg, e.encoding, filepath.Join(e.scratchDir, "progress-preview.log"))
}

// Launch compiles the container and spawns ffmpeg. It returns immediately;
// the returned Job is polled by a Tracker. Spawn failures are wrapped in
// ErrSpawn and leave nothing behind in the scratch directory.
func (e *Executor) Launch(c *container.Container) (*Job, error) {
	if c.Microseconds() <= 0 {
		return nil, fmt.Errorf("launch %s: container has no duration", c.SourcePath)
	}

	feedPath := filepath.Join(e.scratchDir, "progress-"+uuid.NewString()+".log")
	args := c.BuildCommand(e.ffmpeg, e.encoding, feedPath)

	cmd := exec.Command(args[0], args[1:]...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	// Own process group so StopAll can kill ffmpeg and any children it forks.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, args[0], err)
	}

	proc := &osProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		proc.waitErr = cmd.Wait()
		close(proc.done)
	}()

	e.logger.Info("transcode started",
		logging.String("source", c.SourcePath),
		logging.String("output", c.OutputPath()),
		logging.Int("pid", cmd.Process.Pid),
	)

	return &Job{
		container: c,
		feedPath:  feedPath,
		proc:      proc,
		stderr:    stderr,
	}, nil
}

// Job is one launched conversion: the container it was compiled from, the
// running process, and the progress feed ffmpeg writes for it.
type Job struct {
	container *container.Container
	feedPath  string
	proc      processHandle
	stderr    *bytes.Buffer

	state    State
	progress int64
}

// Source returns the input file path.
func (j *Job) Source() string { return j.container.SourcePath }

// Output returns the resolved output file path.
func (j *Job) Output() string { return j.container.OutputPath() }

// TotalMicros returns the job's full duration in microseconds.
func (j *Job) TotalMicros() int64 { return j.container.Microseconds() }

// Progress returns the last observed transcoded position in microseconds.
func (j *Job) Progress() int64 { return j.progress }

// State returns the tracker's current classification of this job.
func (j *Job) State() State { return j.state }

// Diagnostics returns the captured diagnostic stream, populated once the
// process has exited with a failure. When the process died without writing
// anything, for example on a signal, the wait error stands in.
func (j *Job) Diagnostics() string {
	if text := strings.TrimSpace(j.stderr.String()); text != "" {
		return text
	}
	return j.proc.failure()
}

// Close releases the job's progress feed. Safe to call whether or not ffmpeg
// ever created the file.
func (j *Job) Close() error {
	if err := os.Remove(j.feedPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// processHandle abstracts the child process so the tracker state machine can
// be exercised without spawning real transcodes.
type processHandle interface {
	exited() (bool, int)
	failure() string
	kill() error
}

type osProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func (p *osProcess) exited() (bool, int) {
	select {
	case <-p.done:
		if state := p.cmd.ProcessState; state != nil {
			return true, state.ExitCode()
		}
		return true, -1
	default:
		return false, 0
	}
}

func (p *osProcess) failure() string {
	select {
	case <-p.done:
		if p.waitErr != nil {
			return p.waitErr.Error()
		}
		return ""
	default:
		return ""
	}
}

func (p *osProcess) kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := unix.Kill(-p.cmd.Process.Pid, unix.SIGKILL); err != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}
