package insert

import (
	"regexp"
	"strings"
)

var headingSnippet = regexp.MustCompile(`^(#{1,6}) $`)

// ParseDirective maps a toolbar snippet (the text a toolbar button would
// insert) to its directive. Bold is checked before italic because the
// bold snippet contains the italic one.
func ParseDirective(snippet string) Directive {
	switch {
	case strings.Contains(snippet, "**text**"):
		return WrapBold()
	case strings.Contains(snippet, "*text*"):
		return WrapItalic()
	case strings.Contains(snippet, "`code`"):
		return WrapCode()
	case strings.Contains(snippet, "[text](url)"):
		return MakeLink()
	case snippet == "- ":
		return BulletItem()
	}
	if m := headingSnippet.FindStringSubmatch(snippet); m != nil {
		return HeadingLevel(len(m[1]))
	}
	return Snippet(snippet)
}

// Button is one toolbar entry. Snippet is what ParseDirective receives.
type Button struct {
	Label   string
	Icon    string
	Snippet string
}

// Toolbar lists the snippets offered by the editor toolbar, in order.
var Toolbar = []Button{
	{"Bold", "bi-type-bold", "**text**"},
	{"Italic", "bi-type-italic", "*text*"},
	{"Heading 1", "bi-type-h1", "# "},
	{"Heading 2", "bi-type-h2", "## "},
	{"Link", "bi-link-45deg", "[text](url)"},
	{"Code", "bi-code", "`code`"},
	{"List", "bi-list-ul", "- "},
	{"Quote", "bi-quote", "> "},
	{"Image", "bi-image", "![alt](url)"},
}
