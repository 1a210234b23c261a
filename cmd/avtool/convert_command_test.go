package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConvertWebMUsesConfigDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	argsFile := filepath.Join(env.baseDir, "args.txt")
	writeStubTool(t, env.baseDir, "ffmpeg", `echo "$@" > `+argsFile)

	target := filepath.Join(env.baseDir, "out.webm")
	out, _, err := runCLI(t, []string{"convert", "webm", "in.mkv", target}, env.configPath)
	if err != nil {
		t.Fatalf("convert webm: %v", err)
	}
	requireContains(t, out, "Wrote "+target)

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	// crf = 20 comes from the test config, not the VP9 default of 31.
	requireContains(t, string(recorded), "-crf 20")
	requireContains(t, string(recorded), "-c:v libvpx-vp9")
	requireContains(t, string(recorded), "-c:a libopus")
}

func TestConvertFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	argsFile := filepath.Join(env.baseDir, "args.txt")
	writeStubTool(t, env.baseDir, "ffmpeg", `echo "$@" > `+argsFile)

	target := filepath.Join(env.baseDir, "out.mp4")
	_, _, err := runCLI(t, []string{"convert", "h264", "--crf", "18", "--preset", "slow", "in.mkv", target}, env.configPath)
	if err != nil {
		t.Fatalf("convert h264: %v", err)
	}

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	requireContains(t, string(recorded), "-crf 18")
	requireContains(t, string(recorded), "-preset slow")
	requireContains(t, string(recorded), "-movflags faststart")
}

func TestThumbnailToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	writeStubTool(t, env.baseDir, "ffmpeg", `printf 'IMAGEBYTES'`)

	out, _, err := runCLI(t, []string{"thumbnail", "--format", "png", "-o", "-", "in.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if out != "IMAGEBYTES" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestThumbnailWritesFile(t *testing.T) {
	env := setupCLITestEnv(t)
	writeStubTool(t, env.baseDir, "ffmpeg", `printf 'IMAGEBYTES'`)

	target := filepath.Join(env.baseDir, "frame.png")
	out, _, err := runCLI(t, []string{"thumbnail", "-o", target, "in.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	requireContains(t, out, "Wrote "+target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read thumbnail: %v", err)
	}
	if string(data) != "IMAGEBYTES" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}
