package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of CLI output.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Prey     lipgloss.Color
	Predator lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Prey:     lipgloss.Color("#00cc00"),
		Predator: lipgloss.Color("#ffff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ff8800"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Prey:     lipgloss.Color("#cccccc"),
		Predator: lipgloss.Color("#888888"),
		Muted:    lipgloss.Color("#666666"),
		Warning:  lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#00ccff"),
		Accent:   lipgloss.Color("#00ffcc"),
		Prey:     lipgloss.Color("#00ff88"),
		Predator: lipgloss.Color("#ff4466"),
		Muted:    lipgloss.Color("#336688"),
		Warning:  lipgloss.Color("#ffcc00"),
	}
)

// DefaultTheme is used when no theme is named.
var DefaultTheme = ThemeOcean

var themes = map[string]Theme{
	ThemeRetroGreen.Name: ThemeRetroGreen,
	ThemeMinimal.Name:    ThemeMinimal,
	ThemeOcean.Name:      ThemeOcean,
}

// GetTheme looks a theme up by name.
func GetTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
