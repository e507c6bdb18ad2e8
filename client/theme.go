package client

// Theme holds the color tokens components render with. It is a plain value:
// components receive it through their constructor and never mutate it.
type Theme struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	MutedText  string `json:"muted_text"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Border     string `json:"border"`
	Error      string `json:"error"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func LightTheme() Theme {
	return Theme{
		Name:       ThemeLight,
		Background: "#FFFFFF",
		Surface:    "#F5F5F7",
		Text:       "#111827",
		MutedText:  "#6B7280",
		Primary:    "#B8860B",
		Accent:     "#1E40AF",
		Border:     "#E5E7EB",
		Error:      "#DC2626",
	}
}

func DarkTheme() Theme {
	return Theme{
		Name:       ThemeDark,
		Background: "#0B0F19",
		Surface:    "#161B26",
		Text:       "#F9FAFB",
		MutedText:  "#9CA3AF",
		Primary:    "#D4A017",
		Accent:     "#60A5FA",
		Border:     "#2A3140",
		Error:      "#F87171",
	}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t.Name == ThemeDark {
		return LightTheme()
	}
	return DarkTheme()
}

// ThemeByName returns the named theme, falling back to light.
func ThemeByName(name string) Theme {
	if name == ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}
