package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLogDir          = "~/.local/share/filmpress/logs"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultOutputExtension = ".mp4"
	defaultVideoCodec      = "h264"
	defaultVideoEncoder    = "libx264"
	defaultCRF             = 18
	defaultPreset          = "slow"
	defaultPixelFormat     = "yuv420p"
	defaultAudioCodec      = "aac"
	defaultAudioBitrate    = 384
	defaultSubtitleCodec   = "mov_text"
	defaultPollIntervalMS  = 200
	defaultProbeWorkers    = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir(),
			LogDir:     defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Encoding: Encoding{
			OutputExtension: defaultOutputExtension,
			VideoCodec:      defaultVideoCodec,
			VideoEncoder:    defaultVideoEncoder,
			CRF:             defaultCRF,
			Preset:          defaultPreset,
			PixelFormat:     defaultPixelFormat,
			AudioCodec:      defaultAudioCodec,
			AudioBitrate:    defaultAudioBitrate,
			SubtitleCodec:   defaultSubtitleCodec,
		},
		Convert: Convert{
			PollIntervalMS: defaultPollIntervalMS,
			ProbeWorkers:   defaultProbeWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultScratchDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "filmpress")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/filmpress"
	}
	return filepath.Join(home, ".cache", "filmpress")
}
