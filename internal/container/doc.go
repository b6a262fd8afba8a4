// Package container holds the conversion model: a multimedia container, its
// elementary streams, the user's per-stream encode decisions, and the
// compilation of those decisions into an ffmpeg invocation.
//
// Key types:
//   - Container: one source file, its streams, selection state, output name
//   - Stream: one audio/video/subtitle stream plus its encode decision
//   - SubtitleFile: an external subtitle file to multiplex in
//
// Compilation is pure: BuildCommand reads the current state and produces a
// token list without side effects, so callers can preview commands before
// launching them. Process ownership and progress tracking live in the
// convert package.
package container
