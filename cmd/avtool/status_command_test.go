package main

import (
	"testing"
)

func TestStatusReportsAvailableTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "FFprobe")
	requireContains(t, out, env.ffmpeg)
}

func TestStatusFailsWhenToolMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	env.ffmpeg = env.baseDir + "/does-not-exist"
	writeTestConfig(t, env)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected status to fail with a missing tool")
	}
	requireContains(t, out, "not found")
}
