package container

import "fmt"

// SubtitleFile represents an external subtitle file to be multiplexed into
// the output. Encoding must hold a resolved character encoding before the
// container can be compiled; detection lives with the caller.
type SubtitleFile struct {
	Path     string
	Encoding string
}

// OptionSummary describes the fixed transcode decision for attached subtitles.
func (f SubtitleFile) OptionSummary(subtitleCodec string) string {
	return fmt.Sprintf("transcode -> %s", subtitleCodec)
}
