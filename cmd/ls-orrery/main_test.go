package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSnapshotASCII(t *testing.T) {
	out, err := execute(t, "snapshot", "--seed", "7", "--stars", "20",
		"--width", "40", "--height", "10", "--frames", "5", "--ascii", "--log-level", "error")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 10 canvas rows + 2 status lines:\n%s", len(lines), out)
	}
	for i, l := range lines[:10] {
		if len([]rune(l)) != 40 {
			t.Errorf("row %d is %d wide, want 40", i, len([]rune(l)))
		}
	}
	if lines[10] != "[pause] theme=dark" {
		t.Errorf("status = %q", lines[10])
	}
	for _, name := range []string{"Mercury 1.0x", "Neptune 1.0x"} {
		if !strings.Contains(lines[11], name) {
			t.Errorf("readouts missing %q: %s", name, lines[11])
		}
	}
}

func TestSnapshotPaused(t *testing.T) {
	out, err := execute(t, "snapshot", "--seed", "7", "--stars", "0",
		"--width", "20", "--height", "6", "--pause", "--log-level", "error")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(out, "[resume] theme=dark") {
		t.Errorf("paused snapshot status missing:\n%s", out)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	args := []string{"snapshot", "--seed", "11", "--stars", "30", "--width", "30", "--height", "8", "--log-level", "error"}
	a, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	b, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same seed produced different snapshots")
	}
}

func TestSnapshotEmptySize(t *testing.T) {
	_, err := execute(t, "snapshot", "--width", "0", "--log-level", "error")
	if !errors.Is(err, orrery.ErrEmptyViewport) {
		t.Errorf("err = %v, want ErrEmptyViewport", err)
	}
}

func TestSnapshotBadDelta(t *testing.T) {
	for _, dt := range []string{"inf", "-inf", "nan", "-1"} {
		if _, err := execute(t, "snapshot", "--dt="+dt, "--stars", "0", "--log-level", "error"); err == nil {
			t.Errorf("--dt=%s should fail", dt)
		}
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, want := range []string{"Body", "Sun", "Saturn", "#ffdd55", "0.0009"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "ls-orrery v"+version.Version+"\n" {
		t.Errorf("version = %q", out)
	}
}

func TestBuildConfig(t *testing.T) {
	if _, err := execute(t, "version", "--seed", "9", "--no-wrap", "--fov", "500", "--stars=-4"); err != nil {
		t.Fatal(err)
	}
	cfg := buildConfig()
	if cfg.Seed != 9 || cfg.WrapAngles || cfg.FOV != maxFOV || cfg.StarCount != 0 {
		t.Errorf("config = %+v", cfg)
	}
	if fov != 500 {
		t.Errorf("buildConfig rewrote the --fov flag to %v", fov)
	}
	if again := buildConfig(); again.FOV != cfg.FOV {
		t.Errorf("second buildConfig FOV = %v, want %v", again.FOV, cfg.FOV)
	}
}
