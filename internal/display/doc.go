// Package display formats durations, sizes, bitrates, and stream summaries
// for terminal output.
package display
