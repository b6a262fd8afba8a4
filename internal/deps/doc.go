// Package deps verifies that the external binaries filmpress shells out to
// are installed and resolvable.
package deps
