package main

import (
	"strings"
	"testing"
)

func TestDisplayShowsStreams(t *testing.T) {
	env := setupCLITestEnv(t, "")
	source := env.addMediaFile(t, "sintel.webm")

	out, _, err := runCLI(t, env.configPath, "display", "--file", source)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	for _, want := range []string{
		"File: " + source,
		"Length: 0:03:07",
		"video vp8",
		"audio vorbis eng",
		"1280x720",
		"sintel.mp4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("display output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayRejectsEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env.configPath, "display", "--directory", env.mediaDir)
	if err == nil {
		t.Fatal("expected error for directory without media files")
	}
	if !strings.Contains(err.Error(), "no input files") {
		t.Fatalf("unexpected error: %v", err)
	}
}
