package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"filmpress/internal/config"
	"filmpress/internal/container"
	"filmpress/internal/convert"
	"filmpress/internal/logging"
	"filmpress/internal/scanner"
	"filmpress/internal/subtext"
)

type convertFlags struct {
	crf              int
	audioBitrate     int
	selection        string
	output           string
	subtitles        []string
	subtitleEncoding []string
	dryRun           bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert input files with ffmpeg",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, flags)
		},
	}

	cmd.Flags().IntVar(&flags.crf, "crf", 0, "Constant rate factor for transcoded video streams")
	cmd.Flags().IntVar(&flags.audioBitrate, "audio-bitrate", 0, "Bitrate in Kib/s for transcoded audio streams")
	cmd.Flags().StringVar(&flags.selection, "select", "", "Comma-separated stream indexes to include")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output filename (single input only)")
	cmd.Flags().StringArrayVar(&flags.subtitles, "subtitle", nil, "Subtitle file to merge in (single input only, repeatable)")
	cmd.Flags().StringArrayVar(&flags.subtitleEncoding, "subtitle-encoding", nil, "Character encoding for the matching --subtitle flag")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the compiled ffmpeg commands without running them")

	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, flags *convertFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	if err := validateConvertFlags(cmd, ctx, flags); err != nil {
		return err
	}

	files, err := scanner.List(ctx.scanOptions())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found")
	}

	containers, failures := probeAll(cmd.Context(), cfg, files)
	errOut := cmd.ErrOrStderr()
	for _, failure := range failures {
		fmt.Fprintf(errOut, "skipped %s: %v\n", failure.Path, failure.Err)
	}
	if len(containers) == 0 {
		return fmt.Errorf("no input files could be probed")
	}

	for _, c := range containers {
		if err := applyOverrides(c, cmd, flags); err != nil {
			return err
		}
		if !c.SelectionComplete() {
			return fmt.Errorf("%w: %s needs at least one audio and one video stream selected",
				container.ErrInvalidSelection, c.SourcePath)
		}
	}

	executor := convert.NewExecutor(cfg, logger)

	if flags.dryRun {
		out := cmd.OutOrStdout()
		for _, c := range containers {
			fmt.Fprintln(out, strings.Join(executor.Preview(c), " "))
		}
		return nil
	}

	lock := flock.New(filepath.Join(cfg.Paths.ScratchDir, "filmpress.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire scratch lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another filmpress convert is already running")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release scratch lock", logging.Error(err))
		}
	}()

	var jobs []*convert.Job
	spawnFailures := 0
	for _, c := range containers {
		job, err := executor.Launch(c)
		if err != nil {
			fmt.Fprintf(errOut, "failed to start %s: %v\n", c.SourcePath, err)
			spawnFailures++
			continue
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no conversions could be started")
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := convert.NewTracker(jobs, logger)
	defer tracker.Close()

	interval := time.Duration(cfg.Convert.PollIntervalMS) * time.Millisecond
	onTick, finish := progressDisplay(cmd.OutOrStdout(), jobs)
	snapshot, runErr := tracker.Run(runCtx, interval, onTick)
	finish()

	if runErr != nil {
		return fmt.Errorf("conversion interrupted: %w", runErr)
	}

	return reportResults(cmd.OutOrStdout(), errOut, snapshot, spawnFailures)
}

// validateConvertFlags rejects flag combinations before any work starts. The
// per-file overrides only make sense when exactly one input file is named.
func validateConvertFlags(cmd *cobra.Command, ctx *commandContext, flags *convertFlags) error {
	perFile := flags.selection != "" || flags.output != "" || len(flags.subtitles) > 0
	if perFile && !ctx.singleInput() {
		return fmt.Errorf("--select, --output, and --subtitle require --file")
	}
	if len(flags.subtitleEncoding) > len(flags.subtitles) {
		return fmt.Errorf("more --subtitle-encoding flags than --subtitle flags")
	}
	if cmd.Flags().Changed("crf") {
		if flags.crf < config.MinCRF || flags.crf > config.MaxCRF {
			return fmt.Errorf("--crf must be between %d and %d", config.MinCRF, config.MaxCRF)
		}
	}
	if cmd.Flags().Changed("audio-bitrate") && flags.audioBitrate <= 0 {
		return fmt.Errorf("--audio-bitrate must be positive")
	}
	return nil
}

// applyOverrides rewrites one container per the convert flags: stream
// selection, per-stream quality overrides, output name, and merged subtitle
// files.
func applyOverrides(c *container.Container, cmd *cobra.Command, flags *convertFlags) error {
	if flags.selection != "" {
		indexes, err := parseSelection(flags.selection)
		if err != nil {
			return err
		}
		if err := c.SetSelected(indexes); err != nil {
			return err
		}
	}

	for _, s := range c.SelectedStreams() {
		if cmd.Flags().Changed("crf") && s.Kind == container.KindVideo {
			crf := flags.crf
			s.CustomCRF = &crf
		}
		if cmd.Flags().Changed("audio-bitrate") && s.Kind == container.KindAudio {
			bitrate := flags.audioBitrate
			s.CustomBitrate = &bitrate
		}
	}

	if flags.output != "" {
		c.OutputName = flags.output
	}

	for i, path := range flags.subtitles {
		encoding := ""
		if i < len(flags.subtitleEncoding) {
			encoding = flags.subtitleEncoding[i]
		}
		if encoding == "" {
			detected, err := subtext.DetectFile(path)
			if err != nil {
				return err
			}
			if detected == "" {
				return fmt.Errorf("could not detect encoding of %s, pass --subtitle-encoding", path)
			}
			encoding = detected
		}
		if err := c.AddSubtitleFile(path, encoding); err != nil {
			return err
		}
	}
	return nil
}

func parseSelection(value string) ([]int, error) {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(parts) == 0 {
		return nil, fmt.Errorf("--select needs at least one stream index")
	}
	indexes := make([]int, 0, len(parts))
	for _, part := range parts {
		index, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid stream index %q", part)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// progressDisplay wires tracker snapshots to a live progress renderer when
// stdout is a terminal. The returned finish func stops the renderer; both
// funcs are no-ops when the output is not a TTY.
func progressDisplay(out io.Writer, jobs []*convert.Job) (func(convert.Snapshot), func()) {
	file, ok := out.(*os.File)
	if !ok || !(isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return nil, func() {}
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = true

	trackers := make([]*progress.Tracker, len(jobs))
	for i, job := range jobs {
		trackers[i] = &progress.Tracker{
			Message: filepath.Base(job.Source()),
			Total:   job.TotalMicros(),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(trackers[i])
	}
	go pw.Render()

	onTick := func(snapshot convert.Snapshot) {
		for i, status := range snapshot.Jobs {
			if i >= len(trackers) {
				break
			}
			tracker := trackers[i]
			switch status.State {
			case convert.StateCompleted:
				if !tracker.IsDone() {
					tracker.SetValue(status.TotalMicros)
					tracker.MarkAsDone()
				}
			case convert.StateErrored:
				if !tracker.IsDone() {
					tracker.MarkAsErrored()
				}
			default:
				tracker.SetValue(status.ProgressMicros)
			}
		}
	}
	finish := func() {
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return onTick, finish
}

// reportResults prints the final per-job outcome and returns an error when
// any conversion failed, so the process exits non-zero.
func reportResults(out, errOut io.Writer, snapshot convert.Snapshot, spawnFailures int) error {
	for _, status := range snapshot.Jobs {
		switch status.State {
		case convert.StateCompleted:
			fmt.Fprintf(out, "converted %s -> %s\n", status.Source, status.Output)
		case convert.StateErrored:
			fmt.Fprintf(errOut, "failed %s\n", status.Source)
			if status.Diagnostics != "" {
				for _, line := range strings.Split(status.Diagnostics, "\n") {
					fmt.Fprintf(errOut, "  %s\n", line)
				}
			}
		}
	}

	failed := snapshot.Failed + spawnFailures
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(snapshot.Jobs)+spawnFailures)
	}
	fmt.Fprintf(out, "%d conversions finished\n", len(snapshot.Jobs))
	return nil
}
