package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the board. The board itself follows the
// replay palette and the dark_theme toggle.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeMidnight = Theme{
		Name:       "midnight",
		Primary:    lipgloss.Color("#00ffff"),
		Secondary:  lipgloss.Color("#bbaaff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#1a1a6e"),
		Secondary:  lipgloss.Color("#5a3e8a"),
		Accent:     lipgloss.Color("#b35900"),
		Background: lipgloss.Color("#f5f5f0"),
		Text:       lipgloss.Color("#111111"),
		Muted:      lipgloss.Color("#777777"),
		Success:    lipgloss.Color("#107c10"),
		Warning:    lipgloss.Color("#a86b00"),
		Error:      lipgloss.Color("#c00000"),
	}

	Themes = []Theme{
		ThemeMidnight,
		ThemeMinimal,
		ThemePaper,
	}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next cycles through Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
