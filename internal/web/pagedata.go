package web

import (
	"html/template"
	"net/http"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/insert"
	"github.com/debemdeboas/mdblog/internal/routes"
)

type PageData struct {
	SiteName string
	Tagline  string

	PageURL string

	Theme       string
	ThemeIcon   template.HTML
	SyntaxTheme string
	SyntaxCSS   string

	Toolbar []insert.Button
	View    editor.Result
	Notices []editor.Notice

	LivePreview  bool
	NoticeMillis int
}

func NewPageData(r *http.Request, view editor.Result, notices []editor.Notice) *PageData {
	cfg := config.Default()
	if config.AppConfig != nil {
		cfg = config.AppConfig
	}
	return &PageData{
		SiteName:     cfg.Site.Name,
		Tagline:      cfg.Site.Tagline,
		PageURL:      r.URL.Path,
		Theme:        view.Theme.Attribute,
		ThemeIcon:    view.Theme.Icon,
		SyntaxTheme:  view.Theme.SyntaxTheme,
		SyntaxCSS:    routes.SyntaxCSS,
		Toolbar:      insert.Toolbar,
		View:         view,
		Notices:      notices,
		LivePreview:  cfg.Editor.LivePreview,
		NoticeMillis: cfg.Editor.NoticeSeconds * 1000,
	}
}
