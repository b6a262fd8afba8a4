package display

import (
	"fmt"
	"math"
	"strings"

	"filmpress/internal/container"
)

// FormatDuration renders a duration in seconds as H:MM:SS, rounding to the
// nearest whole second.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "0:00:00"
	}
	total := int64(math.Round(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// FormatSize renders a container size in MiB, or "unknown" when the probe did
// not report one.
func FormatSize(mib float64) string {
	if mib <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%.2f MiB", mib)
}

// FormatContainerBitrate renders an overall container bitrate in Mib/s.
func FormatContainerBitrate(mib float64) string {
	if mib <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%.2f Mib/s", mib)
}

// FormatStreamBitrate renders a per-stream bitrate in the unit the stream
// kind carries: Mib/s for video, Kib/s for audio.
func FormatStreamBitrate(kind container.Kind, bitrate float64) string {
	if bitrate <= 0 {
		return "unknown"
	}
	switch kind {
	case container.KindVideo:
		return fmt.Sprintf("%.2f Mib/s", bitrate)
	case container.KindAudio:
		return fmt.Sprintf("%.0f Kib/s", bitrate)
	default:
		return fmt.Sprintf("%.0f", bitrate)
	}
}

// StreamInfo summarizes a stream's identity on one line: kind, codec, and
// the language and default-track flags when present.
func StreamInfo(s container.Stream) string {
	parts := []string{string(s.Kind), s.Codec}
	if s.Labels.Language != "" {
		parts = append(parts, s.Labels.Language)
	}
	if s.Labels.Default {
		parts = append(parts, "default")
	}
	return strings.Join(parts, " ")
}

// StreamSpecs summarizes kind-specific stream details, or returns "" for
// kinds that have none.
func StreamSpecs(s container.Stream) string {
	var specs []string
	switch s.Kind {
	case container.KindVideo:
		if s.Labels.Resolution != "" {
			specs = append(specs, "Resolution: "+s.Labels.Resolution)
		}
		if s.Labels.FieldOrder != "" && s.Labels.FieldOrder != "progressive" {
			specs = append(specs, "Scan: "+s.Labels.FieldOrder)
		}
		specs = append(specs, "Bitrate: "+FormatStreamBitrate(s.Kind, s.Labels.Bitrate))
	case container.KindAudio:
		if s.Labels.Channels != "" {
			specs = append(specs, "Channels: "+s.Labels.Channels)
		}
		specs = append(specs, "Bitrate: "+FormatStreamBitrate(s.Kind, s.Labels.Bitrate))
	}
	return strings.Join(specs, " | ")
}

// ContainerSummary renders the one-line file description shown under the
// filename: length, size, bitrate, and container format.
func ContainerSummary(c *container.Container) string {
	parts := []string{
		"Length: " + FormatDuration(c.Duration),
		"Size: " + FormatSize(c.Labels.SizeMiB),
		"Bitrate: " + FormatContainerBitrate(c.Labels.BitrateMib),
	}
	if c.Labels.Format != "" {
		parts = append(parts, "Container: "+c.Labels.Format)
	}
	return strings.Join(parts, " | ")
}
