package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeEncoding()
	c.normalizeConvert()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir()
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	if c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg); c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe); c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeEncoding() {
	enc := &c.Encoding
	enc.OutputExtension = strings.TrimSpace(enc.OutputExtension)
	if enc.OutputExtension != "" && !strings.HasPrefix(enc.OutputExtension, ".") {
		enc.OutputExtension = "." + enc.OutputExtension
	}
	enc.VideoCodec = strings.ToLower(strings.TrimSpace(enc.VideoCodec))
	enc.VideoEncoder = strings.TrimSpace(enc.VideoEncoder)
	enc.Preset = strings.TrimSpace(enc.Preset)
	enc.PixelFormat = strings.TrimSpace(enc.PixelFormat)
	enc.AudioCodec = strings.ToLower(strings.TrimSpace(enc.AudioCodec))
	enc.SubtitleCodec = strings.TrimSpace(enc.SubtitleCodec)
}

func (c *Config) normalizeConvert() {
	if c.Convert.PollIntervalMS <= 0 {
		c.Convert.PollIntervalMS = defaultPollIntervalMS
	}
	if c.Convert.ProbeWorkers <= 0 {
		c.Convert.ProbeWorkers = defaultProbeWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
