package domain

// ThemeMode is the persisted display preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"

	DefaultTheme = ThemeLight
)

// ParseThemeMode maps a stored value to a mode. Anything other than the two
// known literals yields the default.
func ParseThemeMode(s string) ThemeMode {
	switch ThemeMode(s) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return DefaultTheme
	}
}

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (m ThemeMode) IsDark() bool { return m == ThemeDark }
