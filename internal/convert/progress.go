package convert

import (
	"strconv"
	"strings"
)

// ParseProgressFeed scans an ffmpeg -progress feed for the most recent
// well-formed out_time_ms entry, which reports the processed duration in
// microseconds. The feed is rewritten periodically and its final line may be
// torn mid-write, so lines are scanned in reverse and malformed entries are
// skipped in favour of earlier intact ones. ok is false when no line parses.
func ParseProgressFeed(data []byte) (micros int64, ok bool) {
	lines := strings.Split(string(data), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		key, value, found := strings.Cut(strings.TrimSpace(lines[i]), "=")
		if !found || key != "out_time_ms" {
			continue
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}
		return parsed, true
	}
	return 0, false
}
