package deps

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"filmpress/internal/config"
)

// Requirement defines an external binary filmpress relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// ConfigRequirements lists the binaries the configured pipeline needs.
func ConfigRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Transcodes and remuxes media files",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Inspects media file streams and metadata",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// For binaries that resolve, the reported version is the first line of the
// tool's -version output.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		status.Version = probeVersion(resolved)
		results = append(results, status)
	}
	return results
}

// probeVersion runs the binary with -version and returns the first output
// line, or "" when the binary does not cooperate. Both ffmpeg and ffprobe
// print "ffmpeg version N ..." as their first line.
func probeVersion(binary string) string {
	out, err := exec.Command(binary, "-version").Output()
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
