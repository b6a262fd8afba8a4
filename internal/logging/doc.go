// Package logging builds the slog loggers used across filmpress.
//
// New constructs a logger from explicit options; NewFromConfig applies the
// [logging] config section and tees records into the configured log
// directory. Attribute helpers keep field construction uniform, and NewNop
// supplies a silent logger for tests.
package logging
