package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the color scheme for charts and text.
type Theme struct {
	Name      string
	Curve     asciigraph.AnsiColor
	Reference asciigraph.AnsiColor
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:      "classic",
		Curve:     asciigraph.Teal,
		Reference: asciigraph.Red,
		Primary:   lipgloss.Color("#008080"), // Teal
		Accent:    lipgloss.Color("#00ccff"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#00ff88"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Curve:     asciigraph.Green,
		Reference: asciigraph.Yellow,
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Accent:    lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Curve:     asciigraph.Default,
		Reference: asciigraph.Default,
		Primary:   lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#0088ff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Curve:     asciigraph.Blue,
		Reference: asciigraph.Yellow,
		Primary:   lipgloss.Color("#0077be"), // Ocean blue
		Accent:    lipgloss.Color("#ffd700"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Curve:     asciigraph.Red,
		Reference: asciigraph.Yellow,
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Accent:    lipgloss.Color("#ff9ff3"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Error:     lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
