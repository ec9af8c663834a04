// Package web serves the editor over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"strconv"

	"github.com/debemdeboas/mdblog/internal/cache"
	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/insert"
	"github.com/debemdeboas/mdblog/internal/routes"
	"github.com/debemdeboas/mdblog/internal/sse"
	"github.com/debemdeboas/mdblog/internal/theme"
	"github.com/debemdeboas/mdblog/internal/util"
	"github.com/rs/zerolog"
)

//go:embed static/* templates/*
var content embed.FS

var webLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	webLogger = l
}

type Handler struct {
	controller *editor.Controller
	clients    *sse.SSEClients
	board      *editor.NoticeBoard

	tmpl   *template.Template
	static fs.FS
	mux    *http.ServeMux
}

// NewHandler builds the HTTP surface of controller. Notices reach open
// pages through clients; board supplies the ones shown on page load and
// may be nil.
func NewHandler(controller *editor.Controller, clients *sse.SSEClients, board *editor.NoticeBoard) (*Handler, error) {
	tmpl, err := template.ParseFS(content, config.TemplatesLocalDir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	static, err := fs.Sub(content, config.StaticLocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	// Calculate the hash of static content
	err = fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		cache.SetStaticHash(config.StaticUrlPath+path, strconv.Quote(util.ContentHash(data)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to hash static files: %w", err)
	}

	h := &Handler{
		controller: controller,
		clients:    clients,
		board:      board,
		tmpl:       tmpl,
		static:     static,
		mux:        http.NewServeMux(),
	}
	h.routes()
	return h, nil
}

func (h *Handler) routes() {
	h.mux.HandleFunc(routes.RobotsPath, serveRobots)
	h.mux.Handle(config.StaticUrlPath, http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(h.static))))
	h.mux.HandleFunc(routes.SyntaxCSS, serveSyntaxCSS)
	h.mux.HandleFunc(routes.APICommand, h.serveCommand)
	h.mux.HandleFunc(routes.APIImport, h.serveImport)
	h.mux.HandleFunc(routes.APIExport, h.serveExport)
	h.mux.HandleFunc(routes.PartialsPreview, h.servePreview)
	h.mux.HandleFunc(routes.PartialsPosts, h.servePosts)
	h.mux.HandleFunc(routes.SSEPath, h.serveEvents)
	h.mux.HandleFunc(routes.RootPath, h.serveIndex)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == routes.RobotsPath {
		h.mux.ServeHTTP(w, r)
		return
	}
	cacheIt(secureHeaders(h.mux.ServeHTTP))(w, r)
}

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nDisallow:"))
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routes.RootPath {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var notices []editor.Notice
	if h.board != nil {
		notices = h.board.Active()
	}
	data := NewPageData(r, h.controller.Snapshot(), notices)

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := h.tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to render editor page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) servePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	data := NewPageData(r, h.controller.Snapshot(), nil)
	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := h.tmpl.ExecuteTemplate(w, config.TemplatePosts, data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to render post list")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveCommand runs one JSON encoded editor command and answers with the
// refreshed view.
func (h *Handler) serveCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var cmd editor.Command
	body := http.MaxBytesReader(w, r.Body, config.MaxImportBytes)
	if err := json.NewDecoder(body).Decode(&cmd); err != nil {
		webLogger.Debug().Err(err).Msg("Rejected command")
		http.Error(w, config.HTTPErrBadCommand, http.StatusBadRequest)
		return
	}

	h.dispatch(w, r, cmd)
}

// servePreview renders the posted buffer. The form carries the editor
// fields, so the session follows the page as it is typed in.
func (h *Handler) servePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, config.HTTPErrBadCommand, http.StatusBadRequest)
		return
	}

	selStart, err := formOffset(r, "selStart")
	if err != nil {
		http.Error(w, config.HTTPErrBadCommand, http.StatusBadRequest)
		return
	}
	selEnd, err := formOffset(r, "selEnd")
	if err != nil {
		http.Error(w, config.HTTPErrBadCommand, http.StatusBadRequest)
		return
	}

	cmd := editor.Input(editor.Fields{
		Buffer:   r.FormValue("content"),
		Title:    r.FormValue("title"),
		Tags:     r.FormValue("tags"),
		SelStart: selStart,
		SelEnd:   selEnd,
	})
	h.fromBrowser(&cmd)
	res, err := h.controller.Dispatch(r.Context(), cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(res.Preview))
}

func (h *Handler) serveImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportBytes+1024)
	if err := r.ParseMultipartForm(config.MaxImportBytes); err != nil {
		http.Error(w, config.HTTPErrMissingFile, http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, config.HTTPErrMissingFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, config.MaxImportBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cmd := editor.Import(header.Filename, string(data))
	cmd.Confirmed = r.FormValue("confirmed") == "true"
	h.dispatch(w, r, cmd)
}

// serveExport downloads the current buffer. With nothing to export the
// response is empty and the warning arrives as a notice.
func (h *Handler) serveExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	res, err := h.controller.Dispatch(r.Context(), editor.Export())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Download == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set(config.HCType, res.Download.ContentType+"; charset=utf-8")
	w.Header().Set(config.HContentDisposition, mime.FormatMediaType("attachment", map[string]string{
		"filename": res.Download.FileName,
	}))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, res.Download.Content)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, cmd editor.Command) {
	h.fromBrowser(&cmd)
	res, err := h.controller.Dispatch(r.Context(), cmd)
	if errors.Is(err, editor.ErrUnknownCommand) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toBrowser(res))
}

// formOffset reads an optional integer selection offset from the form.
func formOffset(r *http.Request, name string) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// fromBrowser converts the selection of cmd from the UTF-16 code units a
// textarea reports into rune offsets. A Select command carries no buffer,
// so the session's buffer is measured instead.
func (h *Handler) fromBrowser(cmd *editor.Command) {
	f := cmd.Fields
	if f == nil {
		return
	}
	buffer := f.Buffer
	if cmd.Kind == editor.KindSelect {
		buffer = h.controller.Snapshot().Session.Buffer
	}
	f.SelStart = insert.RuneOffset(buffer, f.SelStart)
	f.SelEnd = insert.RuneOffset(buffer, f.SelEnd)
}

// toBrowser converts the session selection of res back to UTF-16 code units.
func toBrowser(res editor.Result) editor.Result {
	s := &res.Session
	s.SelStart = insert.UTF16Offset(s.Buffer, s.SelStart)
	s.SelEnd = insert.UTF16Offset(s.Buffer, s.SelEnd)
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		webLogger.Error().Err(err).Msg("Failed to write response")
	}
}

func serveSyntaxCSS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	themeStyle := []byte(theme.ThemeCSS())
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, strconv.Quote(util.ContentHash(themeStyle)))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func cacheIt(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")

		// Add etag header to response if it's a static file
		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h(w, r)
	}
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "same-origin")

		h(w, r)
	}
}
