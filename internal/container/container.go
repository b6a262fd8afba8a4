package container

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"filmpress/internal/config"
	"filmpress/internal/media/ffprobe"
)

// Labels carries display-only container metadata.
type Labels struct {
	Title      string
	SizeMiB    float64
	BitrateMib float64
	Format     string
}

// Container aggregates the streams of one source file, the subset selected
// for output, and any attached subtitle files. It is a pure model: compiling
// it into an ffmpeg invocation has no side effects and may be repeated.
type Container struct {
	SourcePath string
	Duration   float64
	Streams    []Stream
	Subtitles  []SubtitleFile
	OutputName string
	Labels     Labels

	selected []int
}

// New builds a Container directly from streams, selecting the first audio and
// first video stream and deriving the output name from the source path.
func New(sourcePath string, duration float64, streams []Stream, outputExt string) *Container {
	c := &Container{
		SourcePath: sourcePath,
		Duration:   duration,
		Streams:    streams,
		OutputName: defaultName(sourcePath, outputExt),
	}
	c.selected = c.defaultSelection()
	return c
}

// FromProbe builds a Container from a parsed ffprobe document. Documents
// without a positive duration are rejected; every other field is optional.
func FromProbe(sourcePath string, result ffprobe.Result, outputExt string) (*Container, error) {
	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrProbeIncomplete, sourcePath)
	}

	streams := make([]Stream, 0, len(result.Streams))
	for _, src := range result.Streams {
		streams = append(streams, StreamFromProbe(src))
	}

	c := New(sourcePath, duration, streams, outputExt)
	c.Labels = Labels{
		Title:  result.Format.Tags.Title,
		Format: result.Format.FormatName,
	}
	if size := result.SizeBytes(); size > 0 {
		c.Labels.SizeMiB = roundTo(float64(size)/(1024*1024), 2)
	}
	if rate := result.BitRate(); rate > 0 {
		c.Labels.BitrateMib = roundTo(float64(rate)/(1024*1024), 2)
	}
	return c, nil
}

// Microseconds returns the container duration in microseconds, the unit the
// ffmpeg progress feed reports.
func (c *Container) Microseconds() int64 {
	return int64(c.Duration * 1e6)
}

// Selected returns the selected stream indexes in ascending order.
func (c *Container) Selected() []int {
	return slices.Clone(c.selected)
}

// SelectedStreams returns pointers to the selected streams in ascending
// index order.
func (c *Container) SelectedStreams() []*Stream {
	streams := make([]*Stream, 0, len(c.selected))
	for _, index := range c.selected {
		if stream, ok := c.StreamByIndex(index); ok {
			streams = append(streams, stream)
		}
	}
	return streams
}

// StreamByIndex returns the stream with the given probe-assigned index.
func (c *Container) StreamByIndex(index int) (*Stream, bool) {
	for i := range c.Streams {
		if c.Streams[i].Index == index {
			return &c.Streams[i], true
		}
	}
	return nil, false
}

// SetSelected replaces the stream selection. Every index must name a stream
// present in the container whose kind is supported for output; on failure the
// previous selection is left untouched.
//
// This validates existence and kind only. The stricter rule that a conversion
// needs at least one audio and one video stream belongs to the launch
// workflow, which checks SelectionComplete before compiling.
func (c *Container) SetSelected(indexes []int) error {
	next := make([]int, 0, len(indexes))
	for _, index := range indexes {
		stream, ok := c.StreamByIndex(index)
		if !ok {
			return fmt.Errorf("%w: no stream with index %d in %s", ErrInvalidSelection, index, c.SourcePath)
		}
		if !stream.Kind.Supported() {
			return fmt.Errorf("%w: stream %d has unsupported kind %q", ErrInvalidSelection, index, stream.Kind)
		}
		if !slices.Contains(next, index) {
			next = append(next, index)
		}
	}
	slices.Sort(next)
	c.selected = next
	return nil
}

// SelectionComplete reports whether the selection holds at least one audio
// and one video stream, the minimum for a meaningful conversion.
func (c *Container) SelectionComplete() bool {
	var audio, video bool
	for _, stream := range c.SelectedStreams() {
		switch stream.Kind {
		case KindAudio:
			audio = true
		case KindVideo:
			video = true
		}
	}
	return audio && video
}

// AddSubtitleFile attaches an external subtitle file. The encoding must
// already be resolved; indeterminate detection results cannot be compiled
// into a command.
func (c *Container) AddSubtitleFile(path, encoding string) error {
	if strings.TrimSpace(encoding) == "" {
		return fmt.Errorf("%w: %s", ErrUnknownEncoding, path)
	}
	c.Subtitles = append(c.Subtitles, SubtitleFile{Path: path, Encoding: encoding})
	return nil
}

// OutputPath resolves the output file location: the source file's directory
// joined with the (possibly user-overridden) output name.
func (c *Container) OutputPath() string {
	return filepath.Join(filepath.Dir(c.SourcePath), c.OutputName)
}

// BuildCommand compiles the current state into a complete ffmpeg invocation.
// It is a pure function of the container: calling it twice without mutation
// yields identical token lists, so it doubles as a dry-run preview.
//
// Layout: base flags, one input per subtitle file (preceded by its charenc
// hint), map directives for the selected indexes in ascending order, map
// directives for each subtitle input, per-stream codec options grouped by
// kind with an independent output slot counter per kind, subtitle codec
// directives continuing the subtitle counter, and finally the output path.
func (c *Container) BuildCommand(ffmpegBin string, enc config.Encoding, progressPath string) []string {
	command := []string{ffmpegBin, "-nostdin", "-progress", progressPath, "-v", "error", "-y", "-i", c.SourcePath}
	for _, subtitle := range c.Subtitles {
		command = append(command, "-sub_charenc", subtitle.Encoding, "-i", subtitle.Path)
	}
	for _, index := range c.selected {
		command = append(command, "-map", fmt.Sprintf("0:%d", index))
	}
	for position := range c.Subtitles {
		command = append(command, "-map", fmt.Sprintf("%d:0", position+1))
	}
	slots := map[Kind]int{}
	for _, stream := range c.SelectedStreams() {
		command = append(command, stream.BuildOptions(slots[stream.Kind], enc)...)
		slots[stream.Kind]++
	}
	for range c.Subtitles {
		command = append(command, fmt.Sprintf("-c:s:%d", slots[KindSubtitle]), enc.SubtitleCodec)
		slots[KindSubtitle]++
	}
	return append(command, c.OutputPath())
}

func (c *Container) defaultSelection() []int {
	var audio, video bool
	var selection []int
	for _, stream := range c.Streams {
		if !audio && stream.Kind == KindAudio {
			audio = true
			selection = append(selection, stream.Index)
		} else if !video && stream.Kind == KindVideo {
			video = true
			selection = append(selection, stream.Index)
		}
	}
	slices.Sort(selection)
	return selection
}

func defaultName(sourcePath, outputExt string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return stem + outputExt
}
