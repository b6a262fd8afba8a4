// Package scanner enumerates the input files for one filmpress invocation:
// a single file, a directory, or a recursive directory walk. It applies no
// media filtering; files that are not multimedia containers are rejected
// later by the probe step.
package scanner
