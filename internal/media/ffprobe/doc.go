// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no filmpress-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, bitrate, tags)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Parse: decodes an already-captured ffprobe JSON document
//
// Helper methods on Result and Stream provide convenient access to stream
// counts, duration parsing, and bitrate extraction.
package ffprobe
