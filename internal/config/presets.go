package config

import (
	"sort"

	"github.com/san-kum/gridreplay/internal/render"
)

// Presets are named player palettes. Entry 0 is never drawn.
var Presets = map[string]render.Palette{
	"classic": render.DefaultPalette,
	"pastel": {
		"#666666",
		"#a0e7e5",
		"#ffd3b6",
		"#ffaaa5",
		"#fdfd96",
		"#cbaacb",
		"#b5ead7",
	},
	"contrast": {
		"#666666",
		"#0072b2",
		"#e69f00",
		"#d55e00",
		"#f0e442",
		"#cc79a7",
		"#009e73",
	},
}

func GetPreset(name string) (render.Palette, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
