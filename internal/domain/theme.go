package domain

// Theme is the stored colour scheme preference.
// ThemeSystem means nothing is stored and the system preference applies.
type Theme string

const (
	ThemeSystem Theme = ""
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
)

// ParseTheme validates a stored or user-provided theme value
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeSystem, ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return ThemeSystem, ErrInvalidTheme
}

// IsDark resolves the effective theme
func (t Theme) IsDark(systemDark bool) bool {
	if t == ThemeSystem {
		return systemDark
	}
	return t == ThemeDark
}
