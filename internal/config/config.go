package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gridreplay/internal/playback"
	"github.com/san-kum/gridreplay/internal/render"
)

const (
	DefaultTickMs        = 50
	DefaultKeyReleaseMs  = 600
	DefaultRepeatDelayMs = 500
	DefaultPalette       = "classic"
	DefaultExtension     = ".xxx"
	DefaultLogLevel      = "INFO"
	DefaultDataDir       = ".gridreplay"
	FileName             = "gridreplay.yaml"
)

type Config struct {
	Display  DisplayConfig  `yaml:"display" mapstructure:"display"`
	Playback PlaybackConfig `yaml:"playback" mapstructure:"playback"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	DataDir  string         `yaml:"data_dir" mapstructure:"data_dir"`
}

type DisplayConfig struct {
	Mode         string `yaml:"mode" mapstructure:"mode"`
	ShowNeutrals bool   `yaml:"show_neutrals" mapstructure:"show_neutrals"`
	ShowStrength bool   `yaml:"show_strength" mapstructure:"show_strength"`
	DarkTheme    bool   `yaml:"dark_theme" mapstructure:"dark_theme"`
}

type PlaybackConfig struct {
	TickMs        int `yaml:"tick_ms" mapstructure:"tick_ms"`
	KeyReleaseMs  int `yaml:"key_release_ms" mapstructure:"key_release_ms"`
	// RepeatDelayMs is the first guess at the terminal's auto-repeat delay;
	// the viewer relearns it from observed repeats.
	RepeatDelayMs int `yaml:"repeat_delay_ms" mapstructure:"repeat_delay_ms"`
}

type RenderConfig struct {
	CellSize int    `yaml:"cell_size" mapstructure:"cell_size"`
	Palette  string `yaml:"palette" mapstructure:"palette"`
	// Colors overrides the preset with six player colors.
	Colors []string `yaml:"colors,omitempty" mapstructure:"colors"`
}

type ExportConfig struct {
	Extension string `yaml:"extension" mapstructure:"extension"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// File defaults to gridreplay.log under the data directory.
	File string `yaml:"file,omitempty" mapstructure:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Mode:         render.Territory.String(),
			ShowNeutrals: true,
			ShowStrength: true,
			DarkTheme:    true,
		},
		Playback: PlaybackConfig{
			TickMs:        DefaultTickMs,
			KeyReleaseMs:  DefaultKeyReleaseMs,
			RepeatDelayMs: DefaultRepeatDelayMs,
		},
		Render: RenderConfig{
			CellSize: render.DefaultCellSize,
			Palette:  DefaultPalette,
		},
		Export:  ExportConfig{Extension: DefaultExtension},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetDefaults registers every default with v so flags and env vars can override them.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("display.mode", d.Display.Mode)
	v.SetDefault("display.show_neutrals", d.Display.ShowNeutrals)
	v.SetDefault("display.show_strength", d.Display.ShowStrength)
	v.SetDefault("display.dark_theme", d.Display.DarkTheme)
	v.SetDefault("playback.tick_ms", d.Playback.TickMs)
	v.SetDefault("playback.key_release_ms", d.Playback.KeyReleaseMs)
	v.SetDefault("playback.repeat_delay_ms", d.Playback.RepeatDelayMs)
	v.SetDefault("render.cell_size", d.Render.CellSize)
	v.SetDefault("render.palette", d.Render.Palette)
	v.SetDefault("export.extension", d.Export.Extension)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("data_dir", d.DataDir)
}

// FromViper decodes and validates the merged file, env and flag settings.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reload rereads v's config file. Env and flag overrides bound to v keep
// precedence over the new file contents.
func Reload(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return FromViper(v)
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Playback.TickMs) * time.Millisecond
}

func (c *Config) KeyRelease() time.Duration {
	return time.Duration(c.Playback.KeyReleaseMs) * time.Millisecond
}

func (c *Config) RepeatDelay() time.Duration {
	return time.Duration(c.Playback.RepeatDelayMs) * time.Millisecond
}

func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.DataDir, "gridreplay.log")
}

// ExportDir holds the export history.
func (c *Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// Palette resolves the custom colors or the named preset.
func (c *Config) Palette() (render.Palette, error) {
	if len(c.Render.Colors) > 0 {
		return render.PaletteFromHex(c.Render.Colors)
	}
	p, ok := GetPreset(c.Render.Palette)
	if !ok {
		return render.Palette{}, ValidationError{Field: "render.palette", Value: c.Render.Palette, Message: "unknown preset"}
	}
	return p, nil
}

func (c *Config) Toggles() playback.Toggles {
	return playback.Toggles{
		ShowNeutrals: c.Display.ShowNeutrals,
		ShowStrength: c.Display.ShowStrength,
		DarkTheme:    c.Display.DarkTheme,
	}
}

// ControllerOptions configures a playback session from the display and render settings.
func (c *Config) ControllerOptions() ([]playback.Option, error) {
	mode, err := playback.ParseDisplayMode(c.Display.Mode)
	if err != nil {
		return nil, err
	}
	params, err := c.RenderParams()
	if err != nil {
		return nil, err
	}
	return []playback.Option{
		playback.WithMode(mode),
		playback.WithToggles(c.Toggles()),
		playback.WithRenderParams(params),
	}, nil
}

// RenderParams is the mapper input for a fresh session.
func (c *Config) RenderParams() (render.Params, error) {
	pal, err := c.Palette()
	if err != nil {
		return render.Params{}, err
	}
	mode, err := playback.ParseDisplayMode(c.Display.Mode)
	if err != nil {
		return render.Params{}, err
	}
	t := c.Toggles()
	return render.Params{
		Mode:         mode,
		ShowNeutrals: t.ShowNeutrals,
		ShowStrength: t.ShowStrength,
		DarkTheme:    t.DarkTheme,
		CellSize:     c.Render.CellSize,
		Palette:      pal,
	}, nil
}
