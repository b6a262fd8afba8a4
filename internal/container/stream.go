package container

import (
	"fmt"
	"math"
	"strconv"

	"filmpress/internal/config"
	"filmpress/internal/media/ffprobe"
)

// Kind identifies the media type of a stream.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
)

// Supported reports whether streams of this kind can be written to the output
// container. Data and attachment streams are never selectable.
func (k Kind) Supported() bool {
	switch k {
	case KindVideo, KindAudio, KindSubtitle:
		return true
	default:
		return false
	}
}

// StreamLabels carries display-only stream metadata, with one exception: for
// audio streams that must be transcoded, Bitrate is the fallback target when
// the user set no override.
type StreamLabels struct {
	Title string
	// Bitrate is in Mib/s for video streams and Kib/s for audio streams.
	Bitrate    float64
	Resolution string
	FieldOrder string
	Language   string
	Channels   string
	Default    bool
}

// Stream models one elementary stream discovered in a source file plus the
// encode decision for it. A nil CustomCRF or CustomBitrate means no user
// override; the decision then falls back to the configured defaults.
type Stream struct {
	Index         int
	Kind          Kind
	Codec         string
	CustomCRF     *int
	CustomBitrate *int
	Labels        StreamLabels

	optionSummary string
}

// StreamFromProbe maps one ffprobe stream onto the filmpress model.
func StreamFromProbe(src ffprobe.Stream) Stream {
	stream := Stream{
		Index: src.Index,
		Kind:  Kind(src.CodecType),
		Codec: src.CodecName,
		Labels: StreamLabels{
			Title:    src.Tags.Title,
			Language: src.Tags.Language,
			Default:  src.Disposition.Default != 0,
		},
	}
	switch stream.Kind {
	case KindVideo:
		stream.Labels.Resolution = src.Resolution()
		stream.Labels.FieldOrder = src.FieldOrder
		if bits := src.BitRateBits(); bits > 0 {
			stream.Labels.Bitrate = roundTo(float64(bits)/(1024*1024), 2)
		}
	case KindAudio:
		stream.Labels.Channels = src.ChannelLayout
		if bits := src.BitRateBits(); bits > 0 {
			stream.Labels.Bitrate = math.Round(float64(bits) / 1024)
		}
	}
	return stream
}

// BuildOptions generates the ffmpeg codec options for this stream. slot is
// the 0-based ordinal of this stream among previously compiled streams of the
// same kind, since ffmpeg numbers same-kind output streams independently.
// The option summary is updated to reflect the resolved decision.
func (s *Stream) BuildOptions(slot int, enc config.Encoding) []string {
	var options []string
	switch s.Kind {
	case KindVideo:
		options = append(options, fmt.Sprintf("-c:v:%d", slot))
		if s.CustomCRF != nil || s.Codec != enc.VideoCodec {
			crf := enc.CRF
			if s.CustomCRF != nil {
				crf = *s.CustomCRF
			}
			options = append(options, enc.VideoEncoder,
				"-preset", enc.Preset,
				"-crf", strconv.Itoa(crf),
				"-pix_fmt", enc.PixelFormat)
			s.optionSummary = fmt.Sprintf("transcode -> %s, crf=%d", enc.VideoCodec, crf)
		} else {
			options = append(options, "copy")
			s.optionSummary = "copy"
		}
	case KindAudio:
		options = append(options, fmt.Sprintf("-c:a:%d", slot))
		if s.CustomBitrate != nil || s.Codec != enc.AudioCodec {
			bitrate := s.resolveBitrate(enc)
			options = append(options, enc.AudioCodec,
				fmt.Sprintf("-b:a:%d", slot),
				fmt.Sprintf("%dk", bitrate))
			s.optionSummary = fmt.Sprintf("transcode -> %s, bitrate=%dKib/s", enc.AudioCodec, bitrate)
		} else {
			options = append(options, "copy")
			s.optionSummary = "copy"
		}
	case KindSubtitle:
		options = append(options, fmt.Sprintf("-c:s:%d", slot), enc.SubtitleCodec)
		s.optionSummary = fmt.Sprintf("transcode -> %s", enc.SubtitleCodec)
	}
	return options
}

// Resolution order: user override, then the source stream's own bitrate, then
// the configured default.
func (s *Stream) resolveBitrate(enc config.Encoding) int {
	if s.CustomBitrate != nil {
		return *s.CustomBitrate
	}
	if s.Labels.Bitrate > 0 {
		return int(math.Round(s.Labels.Bitrate))
	}
	return enc.AudioBitrate
}

// OptionSummary describes the encode decision made by the most recent
// BuildOptions call, or "" before the stream has been compiled.
func (s *Stream) OptionSummary() string {
	return s.optionSummary
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
