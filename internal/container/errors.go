package container

import "errors"

var (
	// ErrInvalidSelection marks a stream selection naming an index that does
	// not exist or a stream of an unsupported kind.
	ErrInvalidSelection = errors.New("invalid stream selection")

	// ErrProbeIncomplete marks a probe document without a usable duration;
	// such files cannot be converted because progress math depends on it.
	ErrProbeIncomplete = errors.New("probe reported no duration")

	// ErrUnknownEncoding marks a subtitle file whose character encoding could
	// not be determined and was not supplied by the caller.
	ErrUnknownEncoding = errors.New("subtitle encoding unknown")
)
