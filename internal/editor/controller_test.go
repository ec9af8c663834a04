package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/debemdeboas/mdblog/internal/cache"
	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/theme"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))
	repository.SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))
	os.Exit(m.Run())
}

// tick is a clock that advances one second per reading.
type tick struct {
	t time.Time
}

func (c *tick) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

var epoch = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func newController(t *testing.T, storage repository.Storage, opts ...Option) *Controller {
	t.Helper()
	clock := &tick{t: epoch}
	base := []Option{
		WithEditorConfig(config.EditorConfig{ExcerptLength: config.DefaultExcerptLength}),
		WithClock(clock.Now),
		WithDefaultTheme(theme.Primary),
	}
	c := New(storage, append(base, opts...)...)
	c.Init(context.Background())
	return c
}

func dispatch(t *testing.T, c *Controller, cmd Command) Result {
	t.Helper()
	res, err := c.Dispatch(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Dispatch(%s) failed: %v", cmd.Kind, err)
	}
	return res
}

func messages(res Result) []string {
	out := []string{}
	for _, n := range res.Notices {
		out = append(out, n.Message)
	}
	return out
}

func expectNotice(t *testing.T, res Result, level Level, msg string) {
	t.Helper()
	for _, n := range res.Notices {
		if n.Message == msg {
			if n.Level != level {
				t.Errorf("Expected %q as %s, got %s", msg, level, n.Level)
			}
			return
		}
	}
	t.Errorf("Expected notice %q, got %v", msg, messages(res))
}

func draft(title, body, tags string) Command {
	return Input(Fields{Title: title, Buffer: body, Tags: tags})
}

func TestSaveValidation(t *testing.T) {
	testCases := []struct {
		name   string
		fields Fields
		msg    string
		focus  Field
	}{
		{"Missing title", Fields{Title: "  ", Buffer: "body"}, config.MsgTitleRequired, FocusTitle},
		{"Missing content", Fields{Title: "Title", Buffer: " \n\t"}, config.MsgContentRequired, FocusContent},
		{"Both missing reports title first", Fields{}, config.MsgTitleRequired, FocusTitle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newController(t, repository.NewMemory(0))
			cmd := SaveDraft()
			cmd.Fields = &tc.fields

			res := dispatch(t, c, cmd)
			expectNotice(t, res, LevelWarning, tc.msg)
			if res.Focus != tc.focus {
				t.Errorf("Expected focus %q, got %q", tc.focus, res.Focus)
			}
			if !res.List.Empty || c.state.Posts.Len() != 0 {
				t.Error("Expected nothing to be saved")
			}
		})
	}
}

func TestSaveCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemory(0)
	c := newController(t, storage)

	dispatch(t, c, draft(" Hello ", "  # Hello\n\nSome **body**  \n", "go, web, ,go"))
	res := dispatch(t, c, SaveDraft())

	expectNotice(t, res, LevelSuccess, "Post saved as draft successfully!")
	posts := c.state.Posts.List()
	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	created := posts[0]
	if created.Title != "Hello" || created.ContentMarkdown != "# Hello\n\nSome **body**" {
		t.Errorf("Expected trimmed title and body, got %q / %q", created.Title, created.ContentMarkdown)
	}
	if !reflect.DeepEqual(created.Tags, []string{"go", "web"}) {
		t.Errorf("Unexpected tags %v", created.Tags)
	}
	if created.Published || created.Excerpt != "Hello Some body" {
		t.Errorf("Unexpected post %+v", created)
	}
	if res.Session.CurrentID != created.ID || len(res.List.Rows) != 1 || !res.List.Rows[0].Selected {
		t.Errorf("Expected the saved post to be current and selected, got %+v", res.Session)
	}
	if created.ID.String() != fmt.Sprint(created.Date.UnixMilli()) {
		t.Errorf("Expected id derived from creation time, got %s for %v", created.ID, created.Date)
	}

	res = dispatch(t, c, Publish())
	expectNotice(t, res, LevelSuccess, "Post published successfully!")
	posts = c.state.Posts.List()
	if len(posts) != 1 {
		t.Fatalf("Expected update in place, got %d posts", len(posts))
	}
	updated := posts[0]
	if updated.ID != created.ID || !updated.Date.Equal(created.Date) || !updated.Published {
		t.Errorf("Expected same id and date, now published, got %+v", updated)
	}
	if !updated.LastModified.After(*created.LastModified) {
		t.Errorf("Expected lastModified to advance, got %v then %v", created.LastModified, updated.LastModified)
	}
	if res.List.Rows[0].Status != "Published" {
		t.Errorf("Expected Published status, got %s", res.List.Rows[0].Status)
	}

	reloaded := repository.NewPostStore(storage)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p, ok := reloaded.FindByID(created.ID); !ok || !p.Published {
		t.Errorf("Expected published post to be persisted, got %+v", p)
	}
}

func TestSavePrependsNewPosts(t *testing.T) {
	c := newController(t, repository.NewMemory(0))

	dispatch(t, c, draft("First", "one", ""))
	dispatch(t, c, SaveDraft())
	dispatch(t, c, Clear().Confirm())
	dispatch(t, c, draft("Second", "two", ""))
	dispatch(t, c, SaveDraft())

	posts := c.state.Posts.List()
	if len(posts) != 2 || posts[0].Title != "Second" || posts[1].Title != "First" {
		t.Errorf("Expected newest post first, got %+v", posts)
	}
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	c := newController(t, repository.NewMemory(64))

	dispatch(t, c, draft("Too big", strings.Repeat("word ", 50), ""))
	res := dispatch(t, c, SaveDraft())

	expectNotice(t, res, LevelDanger, config.MsgSaveFailed)
	for _, n := range res.Notices {
		if n.Level == LevelSuccess {
			t.Errorf("Expected no success notice, got %q", n.Message)
		}
	}
	if len(res.List.Rows) != 1 {
		t.Errorf("Expected unsaved post to stay listed, got %d rows", len(res.List.Rows))
	}
}

func TestClear(t *testing.T) {
	t.Run("Dirty editor asks first", func(t *testing.T) {
		c := newController(t, repository.NewMemory(0))
		dispatch(t, c, draft("Title", "", ""))

		res := dispatch(t, c, Clear())
		if res.NeedsConfirm != config.PromptClear {
			t.Errorf("Expected clear prompt, got %q", res.NeedsConfirm)
		}
		if res.Session.Title != "Title" || len(res.Notices) != 0 {
			t.Errorf("Expected declined clear to change nothing, got %+v", res.Session)
		}

		res = dispatch(t, c, Clear().Confirm())
		if res.Session.Title != "" || res.Session.Dirty {
			t.Errorf("Expected cleared session, got %+v", res.Session)
		}
		expectNotice(t, res, LevelInfo, config.MsgEditorCleared)
		if res.Focus != FocusContent {
			t.Errorf("Expected content focus, got %q", res.Focus)
		}
	})

	t.Run("Clean editor clears directly", func(t *testing.T) {
		c := newController(t, repository.NewMemory(0))
		res := dispatch(t, c, Clear())
		if res.NeedsConfirm != "" {
			t.Errorf("Expected no prompt, got %q", res.NeedsConfirm)
		}
		expectNotice(t, res, LevelInfo, config.MsgEditorCleared)
	})

	t.Run("Confirmer approves", func(t *testing.T) {
		var prompts []string
		confirmer := ConfirmFunc(func(_ context.Context, prompt string) bool {
			prompts = append(prompts, prompt)
			return true
		})
		c := newController(t, repository.NewMemory(0), WithConfirmer(confirmer))
		dispatch(t, c, draft("", "body", ""))

		res := dispatch(t, c, Clear())
		if res.Session.Buffer != "" || res.NeedsConfirm != "" {
			t.Errorf("Expected approved clear, got %+v", res)
		}
		if len(prompts) != 1 || prompts[0] != config.PromptClear {
			t.Errorf("Unexpected prompts %v", prompts)
		}
	})

	t.Run("Detaches the current post", func(t *testing.T) {
		c := newController(t, repository.NewMemory(0))
		dispatch(t, c, draft("Kept", "body", ""))
		dispatch(t, c, SaveDraft())

		res := dispatch(t, c, Clear().Confirm())
		if res.Session.CurrentID != 0 || res.List.Rows[0].Selected {
			t.Error("Expected no current post after clear")
		}
		if c.state.Posts.Len() != 1 {
			t.Error("Expected clear to keep the saved post")
		}
	})
}

func TestImportTitle(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		content  string
		expected string
	}{
		{"First heading wins", "notes.md", "intro\n## Sub\n# Real Title\n# Second", "Real Title"},
		{"Falls back to file name", "my-notes.v2.md", "no headings here", "my-notes.v2"},
		{"No extension", "README", "## only h2", "README"},
		{"Path is reduced to its base", "/tmp/drafts/post.markdown", "text", "post"},
		{"Heading needs whitespace", "fallback.md", "#NotAHeading", "fallback"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ImportTitle(tc.fileName, tc.content); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestImport(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	dispatch(t, c, draft("Saved", "old body", "old, tags"))
	dispatch(t, c, SaveDraft())

	content := "# Imported\n\nfresh body\n"
	res := dispatch(t, c, Import("imported.md", content))
	if res.NeedsConfirm != config.PromptImport {
		t.Fatalf("Expected import prompt, got %q", res.NeedsConfirm)
	}
	if res.Session.Title != "Saved" {
		t.Error("Expected declined import to keep the session")
	}

	res = dispatch(t, c, Import("imported.md", content).Confirm())
	expectNotice(t, res, LevelSuccess, config.MsgImported)
	if res.Session.Title != "Imported" || res.Session.Buffer != content {
		t.Errorf("Unexpected session %+v", res.Session)
	}
	if res.Session.Tags != "" || res.Session.CurrentID != 0 {
		t.Errorf("Expected tags cleared and no current post, got %+v", res.Session)
	}
	if !strings.Contains(string(res.Preview), "<h1>Imported</h1>") {
		t.Errorf("Expected preview of imported content, got %s", res.Preview)
	}
}

func TestExportFileName(t *testing.T) {
	testCases := []struct {
		title    string
		expected string
	}{
		{"My Post!", "my_post_.md"},
		{"  Hello World  ", "hello_world.md"},
		{"", "untitled.md"},
		{"   ", "untitled.md"},
		{"Go 1.22", "go_1_22.md"},
		{"Café", "caf_.md"},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			if got := ExportFileName(tc.title); got != tc.expected {
				t.Errorf("ExportFileName(%q) = %q, want %q", tc.title, got, tc.expected)
			}
		})
	}
}

func TestExport(t *testing.T) {
	c := newController(t, repository.NewMemory(0))

	res := dispatch(t, c, draft("Title", "  \n", ""))
	res = dispatch(t, c, Export())
	expectNotice(t, res, LevelWarning, config.MsgNothingToExport)
	if res.Download != nil {
		t.Error("Expected no download for an empty buffer")
	}

	body := "  # Keep *all* of it\n\n"
	dispatch(t, c, draft("My Post", body, ""))
	res = dispatch(t, c, Export())
	expectNotice(t, res, LevelSuccess, config.MsgExported)
	if res.Download == nil {
		t.Fatal("Expected a download")
	}
	if res.Download.FileName != "my_post.md" || res.Download.ContentType != config.MarkdownCType {
		t.Errorf("Unexpected download %+v", res.Download)
	}
	if res.Download.Content != body {
		t.Errorf("Expected verbatim content, got %q", res.Download.Content)
	}

	res = dispatch(t, c, Input(Fields{Title: "My Post", Buffer: body}))
	if res.Download != nil {
		t.Error("Expected download to be reported once")
	}
}

func TestLoad(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	dispatch(t, c, draft("Loaded", "# Loaded body", "a, b"))
	saved := dispatch(t, c, SaveDraft())
	id := saved.Session.CurrentID
	dispatch(t, c, Clear().Confirm())

	res := dispatch(t, c, Load(id))
	if res.Session.CurrentID != id || res.Session.Title != "Loaded" || res.Session.Tags != "a, b" {
		t.Errorf("Unexpected session %+v", res.Session)
	}
	if res.Session.Buffer != "# Loaded body" || res.Focus != FocusContent {
		t.Errorf("Expected buffer loaded with content focus, got %+v", res)
	}
	if !res.List.Rows[0].Selected {
		t.Error("Expected loaded post to be selected")
	}

	res = dispatch(t, c, Load(id+100))
	if res.Session.CurrentID != id {
		t.Error("Expected unknown id to leave the session alone")
	}
}

func TestDelete(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	dispatch(t, c, draft("Other", "other body", ""))
	other := dispatch(t, c, SaveDraft()).Session.CurrentID
	dispatch(t, c, Clear().Confirm())
	dispatch(t, c, draft("Hello", "hello body", ""))
	current := dispatch(t, c, SaveDraft()).Session.CurrentID

	t.Run("Unknown id", func(t *testing.T) {
		res := dispatch(t, c, Delete(12345))
		if res.NeedsConfirm != "" || len(res.Notices) != 0 || len(res.List.Rows) != 2 {
			t.Errorf("Expected no-op, got %+v", res)
		}
	})

	t.Run("Asks with the post title", func(t *testing.T) {
		res := dispatch(t, c, Delete(current))
		if res.NeedsConfirm != `Are you sure you want to delete "Hello"?` {
			t.Errorf("Unexpected prompt %q", res.NeedsConfirm)
		}
		if len(res.List.Rows) != 2 {
			t.Error("Expected declined delete to keep the post")
		}
	})

	t.Run("Deleting another post keeps the session", func(t *testing.T) {
		res := dispatch(t, c, Delete(other).Confirm())
		expectNotice(t, res, LevelSuccess, config.MsgPostDeleted)
		if res.Session.CurrentID != current || res.Session.Title != "Hello" {
			t.Errorf("Unexpected session %+v", res.Session)
		}
	})

	t.Run("Deleting the current post resets the session", func(t *testing.T) {
		res := dispatch(t, c, Delete(current).Confirm())
		expectNotice(t, res, LevelSuccess, config.MsgPostDeleted)
		if res.Session.CurrentID != 0 || res.Session.Buffer != "" || res.Session.Title != "" {
			t.Errorf("Expected reset session, got %+v", res.Session)
		}
		if len(res.Notices) != 1 {
			t.Errorf("Expected only the delete notice, got %v", messages(res))
		}
		if !res.List.Empty {
			t.Error("Expected empty list")
		}
	})

	reloaded := repository.NewPostStore(c.storage)
	if err := reloaded.Load(context.Background()); err != nil || reloaded.Len() != 0 {
		t.Errorf("Expected deletions to be persisted, got %d posts (%v)", reloaded.Len(), err)
	}
}

func TestToggleTheme(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemory(0)
	c := newController(t, storage)

	if got := c.Snapshot().Theme; got.Name != theme.Primary || got.Attribute != "" {
		t.Fatalf("Expected primary theme, got %+v", got)
	}

	res := dispatch(t, c, ToggleTheme())
	expectNotice(t, res, LevelInfo, "Switched to secondary theme")
	if res.Theme.Name != theme.Secondary || res.Theme.Attribute != "secondary" {
		t.Errorf("Unexpected theme %+v", res.Theme)
	}
	if res.Theme.SyntaxTheme != theme.Secondary.SyntaxTheme() {
		t.Errorf("Expected secondary syntax theme, got %q", res.Theme.SyntaxTheme)
	}

	blob, err := storage.Get(ctx, config.StorageKeyTheme)
	if err != nil || string(blob) != "secondary" {
		t.Errorf("Expected persisted theme, got %q (%v)", blob, err)
	}

	again := newController(t, storage)
	if got := again.Snapshot().Theme.Name; got != theme.Secondary {
		t.Errorf("Expected saved theme on restart, got %s", got)
	}

	res = dispatch(t, c, ToggleTheme())
	expectNotice(t, res, LevelInfo, "Switched to primary theme")
}

func TestSearchAndFilter(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	for _, p := range []struct{ title, body, tags string }{
		{"Alpha", "about GoLang", "go"},
		{"Beta", "about css", "web"},
		{"Gamma", "more go", "go, web"},
	} {
		dispatch(t, c, Clear().Confirm())
		dispatch(t, c, draft(p.title, p.body, p.tags))
		dispatch(t, c, SaveDraft())
	}

	titles := func(res Result) []string {
		out := []string{}
		for _, r := range res.List.Rows {
			out = append(out, r.Title)
		}
		return out
	}

	res := dispatch(t, c, Search("GO"))
	if got := titles(res); !reflect.DeepEqual(got, []string{"Gamma", "Alpha"}) {
		t.Errorf("Expected case-insensitive matches newest first, got %v", got)
	}

	res = dispatch(t, c, FilterTag("web"))
	if got := titles(res); !reflect.DeepEqual(got, []string{"Gamma"}) {
		t.Errorf("Expected search and tag combined, got %v", got)
	}
	if res.Tags.Selected != "web" || !reflect.DeepEqual(res.Tags.Tags, []string{"go", "web"}) {
		t.Errorf("Unexpected tag options %+v", res.Tags)
	}

	res = dispatch(t, c, ClearSearch())
	if got := titles(res); !reflect.DeepEqual(got, []string{"Gamma", "Beta"}) {
		t.Errorf("Expected tag filter to survive clearing search, got %v", got)
	}

	res = dispatch(t, c, Search("nothing matches"))
	if !res.List.Empty {
		t.Error("Expected empty list")
	}

	res = dispatch(t, c, FilterTag("gone"))
	if res.Query.Tag != "" || res.Tags.Selected != "" {
		t.Errorf("Expected unknown tag to be dropped, got %+v", res.Query)
	}
}

func TestInsertAndSelect(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	dispatch(t, c, Input(Fields{Title: "T", Buffer: "hello world", SelStart: 0, SelEnd: 5}))

	res := dispatch(t, c, Insert("**text**"))
	if res.Session.Buffer != "**hello** world" || res.Session.SelStart != 9 || res.Session.SelEnd != 9 {
		t.Errorf("Unexpected session %+v", res.Session)
	}
	if res.Focus != FocusContent {
		t.Errorf("Expected content focus, got %q", res.Focus)
	}

	res = dispatch(t, c, Select(0, 0))
	if res.Session.Buffer != "**hello** world" || res.Session.Title != "T" {
		t.Error("Expected select to keep the buffer and title")
	}

	res = dispatch(t, c, Insert("## "))
	if !strings.HasPrefix(res.Session.Buffer, "## **hello** world") {
		t.Errorf("Expected heading on the first line, got %q", res.Session.Buffer)
	}
	if !strings.Contains(string(res.Preview), "<h2>") {
		t.Errorf("Expected heading in preview, got %s", res.Preview)
	}
}

func TestKeyShortcuts(t *testing.T) {
	c := newController(t, repository.NewMemory(0))

	res := dispatch(t, c, Key(KeyEvent{Key: "s", Ctrl: true}))
	expectNotice(t, res, LevelWarning, config.MsgTitleRequired)

	dispatch(t, c, draft("Shortcut", "body", ""))
	res = dispatch(t, c, Key(KeyEvent{Key: "Enter", Meta: true, Shift: true}))
	expectNotice(t, res, LevelSuccess, "Post published successfully!")

	res = dispatch(t, c, Key(KeyEvent{Key: "x", Ctrl: true}))
	if len(res.Notices) != 0 {
		t.Errorf("Expected unbound key to do nothing, got %v", messages(res))
	}

	res = dispatch(t, c, Command{Kind: KindKey})
	if len(res.Notices) != 0 {
		t.Error("Expected key command without an event to do nothing")
	}
}

func TestUnknownCommand(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	if _, err := c.Dispatch(context.Background(), Command{Kind: Kind(42)}); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	c := newController(t, repository.NewMemory(0))
	if got := c.Snapshot().Preview; string(got) != config.PreviewPlaceholder {
		t.Errorf("Expected placeholder, got %s", got)
	}

	res := dispatch(t, c, Input(Fields{Buffer: "# Title\n<script>alert(1)</script>"}))
	if !strings.Contains(string(res.Preview), "<h1>Title</h1>") || strings.Contains(string(res.Preview), "<script") {
		t.Errorf("Unexpected preview %s", res.Preview)
	}
}

// failingGet is storage whose reads fail while writes still succeed.
type failingGet struct {
	*repository.Memory
	err error
}

func (f *failingGet) Get(context.Context, string) ([]byte, error) { return nil, f.err }

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("Corrupt blob starts empty", func(t *testing.T) {
		storage := repository.NewMemory(0)
		_ = storage.Set(ctx, config.StorageKeyPosts, []byte("{not json"))

		c := New(storage, WithEditorConfig(config.EditorConfig{}))
		res := c.Init(ctx)
		expectNotice(t, res, LevelWarning, config.MsgLoadFailed)
		if !res.List.Empty {
			t.Error("Expected empty collection")
		}
	})

	t.Run("Unreadable storage is not seeded over", func(t *testing.T) {
		mine := []byte(`[{"id":42,"title":"Mine","contentMarkdown":"body","tags":[],"date":"2025-01-01T00:00:00Z","published":true}]`)
		storage := &failingGet{Memory: repository.NewMemory(0), err: errors.New("connection refused")}
		_ = storage.Memory.Set(ctx, config.StorageKeyPosts, mine)

		c := New(storage, WithEditorConfig(config.EditorConfig{SeedSamples: true}))
		res := c.Init(ctx)
		expectNotice(t, res, LevelWarning, config.MsgLoadFailed)
		if !res.List.Empty {
			t.Errorf("Expected no posts, got %d rows", len(res.List.Rows))
		}

		got, err := storage.Memory.Get(ctx, config.StorageKeyPosts)
		if err != nil || string(got) != string(mine) {
			t.Errorf("Expected stored posts to be untouched, got %q (%v)", got, err)
		}
	})

	t.Run("Corrupt blob is not seeded over", func(t *testing.T) {
		storage := repository.NewMemory(0)
		_ = storage.Set(ctx, config.StorageKeyPosts, []byte("{not json"))

		c := New(storage, WithEditorConfig(config.EditorConfig{SeedSamples: true}))
		c.Init(ctx)
		if got, _ := storage.Get(ctx, config.StorageKeyPosts); string(got) != "{not json" {
			t.Errorf("Expected blob to be kept, got %q", got)
		}
	})

	t.Run("Seeds samples into empty storage", func(t *testing.T) {
		storage := repository.NewMemory(0)
		c := New(storage, WithEditorConfig(config.EditorConfig{SeedSamples: true}))
		res := c.Init(ctx)
		if len(res.List.Rows) != 3 {
			t.Fatalf("Expected 3 sample posts, got %d", len(res.List.Rows))
		}
		if _, err := storage.Get(ctx, config.StorageKeyPosts); err != nil {
			t.Errorf("Expected samples to be persisted, got %v", err)
		}

		again := New(storage, WithEditorConfig(config.EditorConfig{SeedSamples: true}))
		if res := again.Init(ctx); len(res.List.Rows) != 3 {
			t.Errorf("Expected seeding to run only once, got %d rows", len(res.List.Rows))
		}
	})

	t.Run("Default theme applies without a saved one", func(t *testing.T) {
		c := New(repository.NewMemory(0), WithDefaultTheme(theme.Secondary), WithEditorConfig(config.EditorConfig{}))
		if got := c.Init(ctx).Theme.Name; got != theme.Secondary {
			t.Errorf("Expected secondary, got %s", got)
		}
	})
}

func TestNotifierReceivesNotices(t *testing.T) {
	board := NewNoticeBoard(0)
	c := newController(t, repository.NewMemory(0), WithNotifier(board))

	res := dispatch(t, c, ToggleTheme())
	active := board.Active()
	if len(active) != 1 || active[0].ID != res.Notices[0].ID {
		t.Errorf("Expected the board to hold the result notice, got %+v", active)
	}
	if !active[0].Created.After(epoch) {
		t.Errorf("Expected notice time from the controller clock, got %v", active[0].Created)
	}
}

func TestConcurrentDispatch(t *testing.T) {
	c := newController(t, repository.NewMemory(0))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd := SaveDraft()
			cmd.Fields = &Fields{Title: fmt.Sprintf("Post %d", i), Buffer: "body"}
			if _, err := c.Dispatch(context.Background(), cmd); err != nil {
				t.Errorf("Dispatch failed: %v", err)
			}
			c.Snapshot()
		}(i)
	}
	wg.Wait()

	if n := c.state.Posts.Len(); n < 1 || n > 20 {
		t.Errorf("Unexpected post count %d", n)
	}
}

func TestWarmPreviews(t *testing.T) {
	cache.ClearRenderedMarkdownCache()
	c := New(repository.NewMemory(0), WithEditorConfig(config.EditorConfig{SeedSamples: true}))
	c.Init(context.Background())
	c.WarmPreviews()

	deadline := time.Now().Add(2 * time.Second)
	for cache.RenderedMarkdownLen() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected sample previews to be cached, have %d", cache.RenderedMarkdownLen())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
