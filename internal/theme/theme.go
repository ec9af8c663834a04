// Package theme handles theme management, syntax highlighting, and CSS generation.
package theme

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/mdblog/internal/cache"
	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/repository"
)

// Theme is one of the two presentation themes.
type Theme string

const (
	Primary   Theme = Theme(config.PrimaryTheme)
	Secondary Theme = Theme(config.SecondaryTheme)
)

// Parse maps a stored or configured theme name to a Theme. Anything that
// is not "secondary" is the primary theme.
func Parse(name string) Theme {
	if strings.TrimSpace(name) == config.SecondaryTheme {
		return Secondary
	}
	return Primary
}

func (t Theme) String() string { return string(t) }

func (t Theme) Toggle() Theme {
	if t == Secondary {
		return Primary
	}
	return Secondary
}

// Attribute is the value of the data-theme attribute on the document
// root. The primary theme has no attribute.
func (t Theme) Attribute() string {
	if t == Secondary {
		return config.SecondaryTheme
	}
	return ""
}

// Icon is the toggle button icon, showing the theme a click switches to.
func (t Theme) Icon() template.HTML {
	if t == Secondary {
		return template.HTML(config.PrimaryThemeIcon)
	}
	return template.HTML(config.SecondaryThemeIcon)
}

// SyntaxTheme is the chroma style used for code blocks under t.
func (t Theme) SyntaxTheme() string {
	syntax := config.SyntaxConfig{
		Primary:   config.DefaultPrimarySyntaxTheme,
		Secondary: config.DefaultSecondarySyntaxTheme,
	}
	if config.AppConfig != nil {
		syntax = config.AppConfig.Theme.SyntaxHighlighting
	}
	if t == Secondary {
		return syntax.Secondary
	}
	return syntax.Primary
}

// Load reads the persisted theme. A missing blob yields fallback.
func Load(ctx context.Context, store repository.Storage, fallback Theme) (Theme, error) {
	blob, err := store.Get(ctx, config.StorageKeyTheme)
	if errors.Is(err, repository.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("failed to load theme: %w", err)
	}
	return Parse(string(blob)), nil
}

func Save(ctx context.Context, store repository.Storage, t Theme) error {
	if err := store.Set(ctx, config.StorageKeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

func GetSyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

func GetFormatter() *html.Formatter {
	formatter := html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WrapLongLines(true),
	)
	return formatter
}

func GenerateSyntaxCSS(theme string) template.CSS {
	if css, ok := cache.GetSyntaxCSS(theme); ok {
		return css
	}

	var buf strings.Builder
	formatter := GetFormatter()
	style := styles.Get(theme)

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Calculate the color of highlighted text given the background color
		// for when the Chroma theme doesn't supply a default
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	formatter.WriteCSS(&buf, style)
	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(theme, css)
	return css
}

// ThemeCSS concatenates the syntax CSS of both themes, scoping the
// secondary one under the data-theme attribute.
func ThemeCSS() template.CSS {
	var b strings.Builder
	b.WriteString(string(GenerateSyntaxCSS(Primary.SyntaxTheme())))
	b.WriteString("\n")
	for _, line := range strings.Split(string(GenerateSyntaxCSS(Secondary.SyntaxTheme())), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "/*") {
			line = fmt.Sprintf(`[%s="%s"] %s`, config.ThemeAttribute, config.SecondaryTheme, line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return template.CSS(b.String())
}
