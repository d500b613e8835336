package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const replayBody = `{
	"width": 2, "height": 2,
	"num_players": 2, "player_names": ["alpha", "beta"],
	"num_frames": 2,
	"productions": [[0, 1], [15, 3]],
	"frames": [
		[[[0, 0], [1, 7]], [[2, 255], [0, 123]]],
		[[[1, 10], [1, 7]], [[2, 255], [2, 0]]]
	]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--data", filepath.Join(t.TempDir(), "data")))
	err := execute(cmd)
	return out.String(), err
}

func writeReplay(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.hlt")
	if err := os.WriteFile(path, []byte(replayBody), 0644); err != nil {
		t.Fatalf("write replay: %v", err)
	}
	return path
}

func TestExportStdout(t *testing.T) {
	out, err := runCLI(t, "export", writeReplay(t), "--turn", "1", "--out", "-")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	want := "R0__10 R1___7\nG15255 G3___0"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestExportDefaultDestination(t *testing.T) {
	path := writeReplay(t)
	out, err := runCLI(t, "export", path, "--turn", "0")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dest := filepath.Join(filepath.Dir(path), "match_t0.xxx")
	if !strings.Contains(out, dest) {
		t.Errorf("expected output to name %s, got %q", dest, out)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("expected export file: %v", err)
	}
}

func TestExportErrors(t *testing.T) {
	path := writeReplay(t)
	if _, err := runCLI(t, "export", path, "--turn", "2", "--out", "-"); err == nil {
		t.Error("expected error for turn past the last frame")
	}
	if _, err := runCLI(t, "export", path, "--format", "png", "--out", "-"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := runCLI(t, "export", filepath.Join(t.TempDir(), "missing.hlt")); err == nil {
		t.Error("expected error for missing replay")
	}
}

func TestLoadFailureClosesLog(t *testing.T) {
	data := t.TempDir()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"info", filepath.Join(t.TempDir(), "missing.hlt"), "--data", data})

	if err := execute(cmd); err == nil {
		t.Fatal("expected load error")
	}
	if current.log != nil {
		t.Error("expected session log to be closed")
	}
	logged, err := os.ReadFile(filepath.Join(data, "gridreplay.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(logged), "replay load failed") {
		t.Errorf("expected load failure in log, got %q", logged)
	}
}

func TestInfo(t *testing.T) {
	out, err := runCLI(t, "info", writeReplay(t))
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"alpha", "beta", "FINAL CELLS", "territory (cells) per player"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected info output to contain %q", want)
		}
	}
}

func TestPaletteFromEnv(t *testing.T) {
	t.Setenv("GRIDREPLAY_RENDER_PALETTE", "pastel")
	out, err := runCLI(t, "palettes")
	if err != nil {
		t.Fatalf("palettes failed: %v", err)
	}
	if !strings.Contains(out, "* pastel") {
		t.Errorf("expected pastel to be active, got %q", out)
	}
}

func TestPaletteFlagBeatsEnv(t *testing.T) {
	t.Setenv("GRIDREPLAY_RENDER_PALETTE", "pastel")
	out, err := runCLI(t, "palettes", "--palette", "contrast")
	if err != nil {
		t.Fatalf("palettes failed: %v", err)
	}
	if !strings.Contains(out, "* contrast") {
		t.Errorf("expected contrast to be active, got %q", out)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("render:\n  palette: contrast\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := runCLI(t, "palettes", "--config", path)
	if err != nil {
		t.Fatalf("palettes failed: %v", err)
	}
	if !strings.Contains(out, "* contrast") {
		t.Errorf("expected contrast from config file, got %q", out)
	}

	if _, err := runCLI(t, "palettes", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicit missing config")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	if _, err := runCLI(t, "palettes", "--palette", "neon"); err == nil {
		t.Error("expected error for unknown palette preset")
	}
}

func TestExportsEmpty(t *testing.T) {
	out, err := runCLI(t, "exports")
	if err != nil {
		t.Fatalf("exports failed: %v", err)
	}
	if !strings.Contains(out, "no exports found") {
		t.Errorf("expected empty listing, got %q", out)
	}
}

func TestSchema(t *testing.T) {
	out, err := runCLI(t, "schema")
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if !strings.Contains(out, "productions") {
		t.Errorf("expected schema to describe productions, got %q", out)
	}
}
