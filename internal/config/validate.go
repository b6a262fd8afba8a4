package config

import (
	"errors"
	"fmt"
)

// CRF bounds accepted by the x264 family of encoders.
const (
	MinCRF = 0
	MaxCRF = 51
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if c.Tools.FFprobe == "" {
		return errors.New("tools.ffprobe must be set")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	enc := c.Encoding
	if enc.OutputExtension == "" {
		return errors.New("encoding.output_extension must be set")
	}
	if enc.VideoCodec == "" || enc.VideoEncoder == "" {
		return errors.New("encoding.video_codec and encoding.video_encoder must be set")
	}
	if enc.CRF < MinCRF || enc.CRF > MaxCRF {
		return fmt.Errorf("encoding.crf must be between %d and %d, got %d", MinCRF, MaxCRF, enc.CRF)
	}
	if enc.AudioCodec == "" {
		return errors.New("encoding.audio_codec must be set")
	}
	if enc.AudioBitrate < 1 || enc.AudioBitrate > 5000 {
		return fmt.Errorf("encoding.audio_bitrate must be between 1 and 5000 Kib/s, got %d", enc.AudioBitrate)
	}
	if enc.SubtitleCodec == "" {
		return errors.New("encoding.subtitle_codec must be set")
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.PollIntervalMS < 50 || c.Convert.PollIntervalMS > 5000 {
		return fmt.Errorf("convert.poll_interval_ms must be between 50 and 5000, got %d", c.Convert.PollIntervalMS)
	}
	if c.Convert.ProbeWorkers < 1 || c.Convert.ProbeWorkers > 64 {
		return fmt.Errorf("convert.probe_workers must be between 1 and 64, got %d", c.Convert.ProbeWorkers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
