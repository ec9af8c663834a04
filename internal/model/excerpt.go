package model

import (
	"regexp"
	"strings"

	"github.com/debemdeboas/mdblog/internal/config"
)

const ellipsis = "..."

// Applied in order; the order matters (inline code runs before fences).
var excerptRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile("`(.*?)`"), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile(`>`), ""},
	{regexp.MustCompile(`[-*+]\s+`), ""},
	{regexp.MustCompile(`\n+`), " "},
}

// Excerpt strips markdown syntax from content and truncates it to the
// default length.
func Excerpt(content string) string {
	return ExcerptN(content, config.DefaultExcerptLength)
}

// ExcerptN truncates to max runes, appending "..." when text was cut.
func ExcerptN(content string, max int) string {
	text := StripMarkdown(content)
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return string(runes[:max]) + ellipsis
	}
	return text
}

// StripMarkdown removes headers, emphasis, inline code, links, fenced
// blocks, quote and list markers, and folds newlines into spaces.
func StripMarkdown(content string) string {
	text := content
	for _, rule := range excerptRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return strings.TrimSpace(text)
}
