// Package render converts markdown to sanitized HTML with highlighted code blocks.
package render

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/mdblog/internal/cache"
	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/theme"
	"github.com/debemdeboas/mdblog/internal/util"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// Extensions is the markdown dialect: GitHub flavoured tables,
// strikethrough, fenced code and autolinks, with newlines inside a
// paragraph rendered as hard breaks. Underscores inside a word never start
// emphasis (snake_case stays literal) and an ATX heading needs a space after
// its hashes (#hashtag is text). Heading ids are never generated.
const Extensions = parser.NoIntraEmphasis | parser.Tables | parser.FencedCode |
	parser.Autolink | parser.Strikethrough | parser.SpaceHeadings | parser.HardLineBreak

// Renderer turns markdown into HTML that is safe to insert into the page.
// It is safe for concurrent use.
type Renderer struct {
	policy *bluemonday.Policy
	toHTML func(md []byte, syntaxTheme string) []byte
}

func New() *Renderer {
	return &Renderer{
		policy: NewPolicy(),
		toHTML: markdownToHTML,
	}
}

// NewPolicy is the user generated content policy extended with the class
// names chroma emits.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(config.RegexClassName).OnElements("span", "pre", "code", "div")
	return p
}

// Render never fails. Blank input yields the placeholder fragment and a
// parser panic yields the parse error fragment.
func (r *Renderer) Render(md, syntaxTheme string) (out template.HTML) {
	if strings.TrimSpace(md) == "" {
		return template.HTML(config.PreviewPlaceholder)
	}

	defer func() {
		if rec := recover(); rec != nil {
			renderLogger.Error().Interface("panic", rec).Msg("Markdown parser failed")
			out = template.HTML(config.PreviewParseError)
		}
	}()

	raw := r.toHTML(markdown.NormalizeNewlines([]byte(md)), syntaxTheme)
	return template.HTML(r.policy.SanitizeBytes(raw))
}

// Mutex to protect the check-render-set operation in RenderCached
var renderCacheMutex sync.Mutex

// RenderCached memoises Render by content hash and syntax theme.
func (r *Renderer) RenderCached(md, syntaxTheme string) template.HTML {
	if strings.TrimSpace(md) == "" {
		return template.HTML(config.PreviewPlaceholder)
	}
	contentHash := util.ContentHashString(md)

	// First check cache without locking (fast path for cache hits)
	if cached, found := cache.GetRenderedMarkdown(contentHash, syntaxTheme); found {
		renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache hit for rendered markdown")
		return cached
	}

	renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache miss for rendered markdown")
	renderCacheMutex.Lock()
	defer renderCacheMutex.Unlock()

	if cached, found := cache.GetRenderedMarkdown(contentHash, syntaxTheme); found {
		return cached
	}

	out := r.Render(md, syntaxTheme)
	if out != template.HTML(config.PreviewParseError) {
		cache.SetRenderedMarkdown(contentHash, syntaxTheme, out)
	}
	return out
}

// WarmCache pre-renders markdown content asynchronously to warm the cache
func (r *Renderer) WarmCache(md, syntaxTheme string) {
	go func() {
		r.RenderCached(md, syntaxTheme)
		renderLogger.Debug().Str("syntaxTheme", syntaxTheme).Msg("Cache warming completed")
	}()
}

var defaultRenderer = New()

// Render renders md with the primary syntax theme.
func Render(md string) template.HTML {
	return defaultRenderer.Render(md, theme.Primary.SyntaxTheme())
}

func HighlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}

	var buf strings.Builder
	style := styles.Get(highlightTheme)
	formatter := theme.GetFormatter()
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	}
	return buf.String()
}

func markdownToHTML(md []byte, syntaxTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.FlagsNone,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				var lang string
				if fields := strings.Fields(string(code.Info)); len(fields) > 0 {
					lang = fields[0]
				}
				highlighted := HighlightCode(string(code.Literal), lang, syntaxTheme)
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", highlighted)
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(Extensions).Parse(md)
	return markdown.Render(doc, md_html.NewRenderer(opts))
}
