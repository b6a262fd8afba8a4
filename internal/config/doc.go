// Package config loads, normalizes, and validates filmpress configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: external tool binaries, default encode decisions per stream kind,
// probe parallelism, and progress polling cadence.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, bounded encode parameters, and clear validation errors.
package config
