// Package editor holds the editor state and applies user commands to it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/insert"
	"github.com/debemdeboas/mdblog/internal/listview"
	"github.com/debemdeboas/mdblog/internal/model"
	"github.com/debemdeboas/mdblog/internal/render"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/theme"
	"github.com/rs/zerolog"
)

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

var ErrUnknownCommand = errors.New("unknown command")

// Controller owns the editor State. Commands run one at a time.
type Controller struct {
	mu sync.Mutex

	state        State
	storage      repository.Storage
	renderer     *render.Renderer
	confirmer    Confirmer
	notifier     Notifier
	now          func() time.Time
	cfg          config.EditorConfig
	defaultTheme theme.Theme

	// Per-command output, reset at the start of each Dispatch.
	notices      []Notice
	focus        Field
	needsConfirm string
	download     *Download
}

type Option func(*Controller)

// WithConfirmer sets who approves destructive commands. Without one every
// unconfirmed destructive command is declined and reported through
// Result.NeedsConfirm.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirmer = cf }
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithRenderer(r *render.Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithEditorConfig(cfg config.EditorConfig) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithDefaultTheme sets the theme used when none has been saved yet.
func WithDefaultTheme(t theme.Theme) Option {
	return func(c *Controller) { c.defaultTheme = t }
}

func New(storage repository.Storage, opts ...Option) *Controller {
	defaults := config.Default()
	if config.AppConfig != nil {
		defaults = config.AppConfig
	}

	c := &Controller{
		storage:      storage,
		renderer:     render.New(),
		confirmer:    NeverConfirm,
		now:          time.Now,
		cfg:          defaults.Editor,
		defaultTheme: theme.Parse(defaults.Theme.Default),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state = State{
		Posts: repository.NewPostStore(storage),
		Theme: c.defaultTheme,
	}
	c.state.Posts.SetExcerptLength(c.cfg.ExcerptLength)
	return c
}

// Init loads the persisted posts and theme. Storage failures become
// notices; the editor always starts.
func (c *Controller) Init(ctx context.Context) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetOutput()

	posts := c.state.Posts
	loadErr := posts.Load(ctx)
	if loadErr != nil {
		editorLogger.Warn().Err(loadErr).Msg("Starting with an empty post collection")
		c.notify(LevelWarning, config.MsgLoadFailed)
	}

	// Samples never replace a blob that exists but could not be read.
	if c.cfg.SeedSamples && loadErr == nil {
		seeded, err := posts.Seed()
		if err != nil {
			editorLogger.Error().Err(err).Msg("Failed to load sample posts")
		}
		if seeded {
			if err := posts.Save(ctx); err != nil {
				c.notify(LevelDanger, config.MsgSaveFailed)
			}
		}
	}

	t, err := theme.Load(ctx, c.storage, c.defaultTheme)
	if err != nil {
		editorLogger.Warn().Err(err).Msg("Using the default theme")
	}
	c.state.Theme = t

	editorLogger.Info().
		Int("posts", posts.Len()).
		Stringer("theme", t).
		Msg("Editor initialized")
	return c.result()
}

// WarmPreviews renders every stored post in the background so loading one
// from the list hits the render cache.
func (c *Controller) WarmPreviews() {
	c.mu.Lock()
	defer c.mu.Unlock()
	syntaxTheme := c.state.Theme.SyntaxTheme()
	for _, p := range c.state.Posts.List() {
		c.renderer.WarmCache(p.ContentMarkdown, syntaxTheme)
	}
}

// Dispatch applies cmd and returns the refreshed view. The only error is
// ErrUnknownCommand; everything else the user should know about is a
// notice in the Result.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetOutput()

	editorLogger.Debug().Stringer("kind", cmd.Kind).Msg("Dispatching command")

	if cmd.Fields != nil {
		c.applyFields(cmd.Kind, *cmd.Fields)
	}

	kind := cmd.Kind
	if kind == KindKey {
		if cmd.Key == nil {
			return c.result(), nil
		}
		shortcut, ok := Shortcut(*cmd.Key)
		if !ok {
			return c.result(), nil
		}
		kind = shortcut
	}

	switch kind {
	case KindInput, KindSelect:
	case KindInsert:
		c.insert(cmd.Snippet)
	case KindSaveDraft:
		c.save(ctx, false)
	case KindPublish:
		c.save(ctx, true)
	case KindClear:
		c.clear(ctx, cmd)
	case KindLoad:
		c.load(cmd.PostID)
	case KindDelete:
		c.delete(ctx, cmd)
	case KindImport:
		c.importMarkdown(ctx, cmd)
	case KindExport:
		c.export()
	case KindToggleTheme:
		c.toggleTheme(ctx)
	case KindSearch:
		c.state.Query.Search = cmd.Search
	case KindFilterTag:
		c.state.Query.Tag = cmd.Tag
	case KindClearSearch:
		c.state.Query.Search = ""
	default:
		return c.result(), fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}

	return c.result(), nil
}

// Snapshot returns the current view without changing anything.
func (c *Controller) Snapshot() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetOutput()
	return c.result()
}

func (c *Controller) resetOutput() {
	c.notices = nil
	c.focus = FocusNone
	c.needsConfirm = ""
	c.download = nil
}

// applyFields syncs the session with the editor inputs. A Select command
// only carries the selection.
func (c *Controller) applyFields(kind Kind, f Fields) {
	s := &c.state.Session
	if kind != KindSelect {
		s.Buffer = f.Buffer
		s.Title = f.Title
		s.TagInput = f.Tags
	}
	s.SelectionStart = f.SelStart
	s.SelectionEnd = f.SelEnd
}

func (c *Controller) insert(snippet string) {
	s := &c.state.Session
	r := insert.Insert(s.Buffer, s.SelectionStart, s.SelectionEnd, insert.ParseDirective(snippet))
	s.Buffer = r.Buffer
	s.SelectionStart, s.SelectionEnd = r.Start, r.End
	c.focus = FocusContent
}

func (c *Controller) save(ctx context.Context, published bool) {
	s := &c.state.Session
	title := strings.TrimSpace(s.Title)
	body := strings.TrimSpace(s.Buffer)

	if title == "" {
		c.notify(LevelWarning, config.MsgTitleRequired)
		c.focus = FocusTitle
		return
	}
	if body == "" {
		c.notify(LevelWarning, config.MsgContentRequired)
		c.focus = FocusContent
		return
	}

	posts := c.state.Posts
	now := c.now().UTC()
	p := model.Post{
		Title:           title,
		ContentMarkdown: body,
		Excerpt:         posts.Excerpt(body),
		Tags:            model.ParseTags(s.TagInput),
		LastModified:    &now,
		Published:       published,
	}
	if s.Current != nil {
		p.ID = s.Current.ID
		p.Date = s.Current.Date
	} else {
		p.ID = posts.NextID(now)
		p.Date = now
	}

	created := posts.Upsert(p)
	s.Current = &p

	if err := posts.Save(ctx); err != nil {
		c.notify(LevelDanger, config.MsgSaveFailed)
		return
	}

	action := "saved as draft"
	if published {
		action = "published"
	}
	editorLogger.Info().
		Stringer("id", p.ID).
		Str("title", p.Title).
		Bool("created", created).
		Msgf("Post %s", action)
	c.notify(LevelSuccess, fmt.Sprintf(config.MsgPostSavedFmt, action))
}

func (c *Controller) clear(ctx context.Context, cmd Command) {
	if c.state.Session.Dirty() && !c.confirm(ctx, cmd, config.PromptClear) {
		return
	}
	c.state.Session.Reset()
	c.focus = FocusContent
	c.notify(LevelInfo, config.MsgEditorCleared)
}

func (c *Controller) load(id model.PostID) {
	p, ok := c.state.Posts.FindByID(id)
	if !ok {
		return
	}
	c.state.Session.Load(p)
	c.focus = FocusContent
	editorLogger.Debug().Stringer("id", id).Str("title", p.Title).Msg("Post loaded")
}

func (c *Controller) delete(ctx context.Context, cmd Command) {
	posts := c.state.Posts
	p, ok := posts.FindByID(cmd.PostID)
	if !ok {
		return
	}
	if !c.confirm(ctx, cmd, fmt.Sprintf(config.PromptDeleteFmt, p.Title)) {
		return
	}

	posts.Remove(p.ID)
	if c.state.Session.IsCurrent(p.ID) {
		c.state.Session.Reset()
	}

	if err := posts.Save(ctx); err != nil {
		c.notify(LevelDanger, config.MsgSaveFailed)
		return
	}
	editorLogger.Info().Stringer("id", p.ID).Str("title", p.Title).Msg("Post deleted")
	c.notify(LevelSuccess, config.MsgPostDeleted)
}

// ImportTitle picks the title of an imported file: its first level one
// heading, otherwise the file name without its extension.
func ImportTitle(fileName, content string) string {
	if m := config.RegexFirstHeading.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if fileName == "" {
		return ""
	}
	return config.RegexFileExt.ReplaceAllString(filepath.Base(fileName), "")
}

func (c *Controller) importMarkdown(ctx context.Context, cmd Command) {
	s := &c.state.Session
	if s.Dirty() && !c.confirm(ctx, cmd, config.PromptImport) {
		return
	}

	s.Reset()
	s.Title = ImportTitle(cmd.FileName, cmd.Content)
	s.Buffer = cmd.Content
	c.notify(LevelSuccess, config.MsgImported)
}

// ExportFileName turns a post title into a download file name.
func ExportFileName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = config.UntitledExport
	}
	return strings.ToLower(config.RegexExportUnsafe.ReplaceAllString(title, "_")) + config.MarkdownExt
}

func (c *Controller) export() {
	s := c.state.Session
	if strings.TrimSpace(s.Buffer) == "" {
		c.notify(LevelWarning, config.MsgNothingToExport)
		return
	}
	c.download = &Download{
		FileName:    ExportFileName(s.Title),
		ContentType: config.MarkdownCType,
		Content:     s.Buffer,
	}
	c.notify(LevelSuccess, config.MsgExported)
}

func (c *Controller) toggleTheme(ctx context.Context) {
	c.state.Theme = c.state.Theme.Toggle()
	if err := theme.Save(ctx, c.storage, c.state.Theme); err != nil {
		editorLogger.Error().Err(err).Msg("Failed to persist theme")
		c.notify(LevelWarning, config.MsgThemeSaveFailed)
	}
	c.notify(LevelInfo, fmt.Sprintf(config.MsgThemeSwitchedFmt, c.state.Theme))
}

// confirm reports whether a destructive command may proceed. A declined
// prompt is kept for the Result so the caller can ask again.
func (c *Controller) confirm(ctx context.Context, cmd Command, prompt string) bool {
	if cmd.Confirmed || c.confirmer.Confirm(ctx, prompt) {
		return true
	}
	c.needsConfirm = prompt
	return false
}

func (c *Controller) notify(level Level, msg string) {
	n := newNotice(level, msg, c.now())
	c.notices = append(c.notices, n)
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

func (c *Controller) result() Result {
	st := &c.state
	posts := st.Posts.List()

	tags := listview.BuildTagOptions(posts, st.Query.Tag)
	st.Query.Tag = tags.Selected

	currentID, _ := st.Session.CurrentID()
	return Result{
		Preview: c.renderer.RenderCached(st.Session.Buffer, st.Theme.SyntaxTheme()),
		List:    listview.Build(posts, st.Query, currentID),
		Tags:    tags,
		Query:   st.Query,
		Session: SessionSnapshot{
			CurrentID: currentID,
			Title:     st.Session.Title,
			Tags:      st.Session.TagInput,
			Buffer:    st.Session.Buffer,
			SelStart:  st.Session.SelectionStart,
			SelEnd:    st.Session.SelectionEnd,
			Dirty:     st.Session.Dirty(),
		},
		Theme: ThemeSnapshot{
			Name:        st.Theme,
			Attribute:   st.Theme.Attribute(),
			Icon:        st.Theme.Icon(),
			SyntaxTheme: st.Theme.SyntaxTheme(),
		},
		Notices:      c.notices,
		NeedsConfirm: c.needsConfirm,
		Focus:        c.focus,
		Download:     c.download,
	}
}
