package config

const (
	PrimaryTheme   string = "primary"
	SecondaryTheme string = "secondary"

	// ThemeAttribute is set on the document root for the secondary theme only.
	ThemeAttribute string = "data-theme"

	PrimaryThemeIcon   string = `<i class="bi bi-sun"></i>`
	SecondaryThemeIcon string = `<i class="bi bi-moon"></i>`

	DefaultPrimarySyntaxTheme   string = "github"
	DefaultSecondarySyntaxTheme string = "gruvbox"

	DefaultTheme string = PrimaryTheme
)
