package main

import (
	"strings"
	"testing"
)

func TestCheckReportsStubTools(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, env.configPath, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"FFmpeg", "FFprobe", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckFailsWhenToolsMissing(t *testing.T) {
	env := setupCLITestEnv(t, "")
	env.setTool(t, "ffmpeg", "definitely-not-a-real-ffmpeg")

	_, _, err := runCLI(t, env.configPath, "check")
	if err == nil {
		t.Fatal("expected check to fail with a missing tool")
	}
	if !strings.Contains(err.Error(), "required tools missing") {
		t.Fatalf("unexpected error: %v", err)
	}
}
