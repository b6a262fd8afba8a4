package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const probeDocument = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "vp8",
      "codec_type": "video",
      "width": 1280,
      "height": 720,
      "bit_rate": "2000000"
    },
    {
      "index": 1,
      "codec_name": "vorbis",
      "codec_type": "audio",
      "channel_layout": "stereo",
      "bit_rate": "112000",
      "tags": {"language": "eng"}
    }
  ],
  "format": {
    "format_name": "matroska,webm",
    "duration": "186.727000",
    "size": "88822944",
    "bit_rate": "3805862"
  }
}`

type cliTestEnv struct {
	baseDir     string
	mediaDir    string
	configPath  string
	ffmpegPath  string
	ffprobePath string
}

// setupCLITestEnv builds an isolated config plus stub ffmpeg/ffprobe
// binaries, so commands run end to end without real tools installed.
func setupCLITestEnv(t *testing.T, ffmpegScript string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	mediaDir := filepath.Join(base, "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		t.Fatalf("create media dir: %v", err)
	}

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("create bin dir: %v", err)
	}
	ffprobePath := filepath.Join(binDir, "ffprobe")
	probeScript := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", probeDocument)
	if err := os.WriteFile(ffprobePath, []byte(probeScript), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	ffmpegPath := filepath.Join(binDir, "ffmpeg")
	if ffmpegScript == "" {
		ffmpegScript = "#!/bin/sh\nexit 0\n"
	}
	if err := os.WriteFile(ffmpegPath, []byte(ffmpegScript), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	env := &cliTestEnv{
		baseDir:     base,
		mediaDir:    mediaDir,
		configPath:  filepath.Join(base, "config.toml"),
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
	env.writeConfig(t)
	return env
}

func (env *cliTestEnv) writeConfig(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
scratch_dir = %q
log_dir = %q

[tools]
ffmpeg = %q
ffprobe = %q

[convert]
poll_interval_ms = 50
`,
		filepath.Join(env.baseDir, "scratch"),
		filepath.Join(env.baseDir, "logs"),
		env.ffmpegPath,
		env.ffprobePath,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// setTool points one of the configured binaries somewhere else and rewrites
// the config file.
func (env *cliTestEnv) setTool(t *testing.T, name, command string) {
	t.Helper()
	switch name {
	case "ffmpeg":
		env.ffmpegPath = command
	case "ffprobe":
		env.ffprobePath = command
	default:
		t.Fatalf("unknown tool %q", name)
	}
	env.writeConfig(t)
}

func (env *cliTestEnv) addMediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(env.mediaDir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write media file: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandShowsHelp(t *testing.T) {
	out, _, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"display", "convert", "check", "config"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestFileAndDirectoryFlagsAreExclusive(t *testing.T) {
	_, _, err := runCLI(t, "", "display", "--file", "a.mkv", "--directory", "media")
	if err == nil {
		t.Fatal("expected mutually exclusive flag error")
	}

	_, _, err = runCLI(t, "", "display", "--file", "a.mkv", "--recursive")
	if err == nil {
		t.Fatal("expected --file with --recursive to be rejected")
	}
}
