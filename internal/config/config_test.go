package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/san-kum/gridreplay/internal/playback"
	"github.com/san-kum/gridreplay/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("expected 50ms tick, got %v", cfg.TickInterval())
	}
	if cfg.Toggles() != playback.DefaultToggles() {
		t.Errorf("expected default toggles, got %+v", cfg.Toggles())
	}
	if cfg.LogFile() != filepath.Join(DefaultDataDir, "gridreplay.log") {
		t.Errorf("unexpected log file %s", cfg.LogFile())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := DefaultConfig()
	cfg.Display.Mode = "production"
	cfg.Display.DarkTheme = false
	cfg.Render.Palette = "pastel"
	cfg.Playback.TickMs = 40

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Display.Mode != "production" {
		t.Errorf("expected mode production, got %s", loaded.Display.Mode)
	}
	if loaded.Display.DarkTheme {
		t.Error("expected light theme")
	}
	if loaded.Render.Palette != "pastel" {
		t.Errorf("expected palette pastel, got %s", loaded.Render.Palette)
	}
	if loaded.Playback.TickMs != 40 {
		t.Errorf("expected tick 40, got %d", loaded.Playback.TickMs)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("display:\n  show_neutrals: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Display.ShowNeutrals {
		t.Error("expected show_neutrals false")
	}
	if !cfg.Display.ShowStrength {
		t.Error("expected show_strength to keep its default")
	}
	if cfg.Render.CellSize != render.DefaultCellSize {
		t.Errorf("expected cell size %d, got %d", render.DefaultCellSize, cfg.Render.CellSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("display:\n  mode: heatmap\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"mode", func(c *Config) { c.Display.Mode = "fog" }, "display.mode"},
		{"tick", func(c *Config) { c.Playback.TickMs = 1 }, "playback.tick_ms"},
		{"release", func(c *Config) { c.Playback.KeyReleaseMs = 20 }, "playback.key_release_ms"},
		{"repeat delay short", func(c *Config) { c.Playback.RepeatDelayMs = 50 }, "playback.repeat_delay_ms"},
		{"repeat delay long", func(c *Config) { c.Playback.RepeatDelayMs = 900 }, "playback.repeat_delay_ms"},
		{"cell size", func(c *Config) { c.Render.CellSize = 200 }, "render.cell_size"},
		{"palette", func(c *Config) { c.Render.Palette = "neon" }, "render.palette"},
		{"color count", func(c *Config) { c.Render.Colors = []string{"#ffffff"} }, "render.colors"},
		{"color value", func(c *Config) {
			c.Render.Colors = []string{"#ffffff", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "blue"}
		}, "render.colors[5]"},
		{"extension", func(c *Config) { c.Export.Extension = "xxx" }, "export.extension"},
		{"level", func(c *Config) { c.Logging.Level = "TRACE" }, "logging.level"},
		{"data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected %q in %q", tt.field, err.Error())
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Mode = "fog"
	cfg.DataDir = ""
	err := cfg.Validate()

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d", len(errs))
	}
}

func TestPalette(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if p != render.DefaultPalette {
		t.Error("expected classic palette by default")
	}

	cfg.Render.Colors = []string{"#010101", "#020202", "#030303", "#040404", "#050505", "#060606"}
	p, err = cfg.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if p[1] != "#010101" || p[6] != "#060606" {
		t.Errorf("expected custom colors, got %v", p)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		p, ok := GetPreset(name)
		if !ok {
			t.Fatalf("preset %s listed but missing", name)
		}
		for i, c := range p {
			if _, _, _, err := render.RGB(c); err != nil {
				t.Errorf("%s[%d]: %v", name, i, err)
			}
		}
	}
	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"classic", "contrast", "pastel"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("display.dark_theme", false)
	v.Set("render.palette", "contrast")

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if cfg.Display.DarkTheme {
		t.Error("expected override to light theme")
	}
	if cfg.Render.Palette != "contrast" {
		t.Errorf("expected contrast, got %s", cfg.Render.Palette)
	}
	if cfg.Playback.KeyReleaseMs != DefaultKeyReleaseMs {
		t.Errorf("expected default release %d, got %d", DefaultKeyReleaseMs, cfg.Playback.KeyReleaseMs)
	}

	v.Set("playback.tick_ms", 0)
	if _, err := FromViper(v); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestReloadKeepsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("render:\n  palette: contrast\n  cell_size: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRIDREPLAY_DISPLAY_SHOW_STRENGTH", "false")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("GRIDREPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if _, err := Reload(v); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	// flag layer
	v.Set("render.palette", "pastel")

	if err := os.WriteFile(path, []byte("render:\n  palette: classic\n  cell_size: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Reload(v)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg.Render.CellSize != 20 {
		t.Errorf("expected cell size 20 from the new file, got %d", cfg.Render.CellSize)
	}
	if cfg.Render.Palette != "pastel" {
		t.Errorf("expected override pastel, got %s", cfg.Render.Palette)
	}
	if cfg.Display.ShowStrength {
		t.Error("expected env override to keep show_strength off")
	}

	if err := os.WriteFile(path, []byte("render: [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Reload(v); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestControllerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Mode = "production"
	cfg.Display.ShowStrength = false

	opts, err := cfg.ControllerOptions()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 3 {
		t.Errorf("expected 3 options, got %d", len(opts))
	}

	params, err := cfg.RenderParams()
	if err != nil {
		t.Fatal(err)
	}
	if params.Mode != render.Production || params.ShowStrength {
		t.Errorf("unexpected params %+v", params)
	}
}
