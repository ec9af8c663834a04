package editor

import (
	"html/template"

	"github.com/debemdeboas/mdblog/internal/listview"
	"github.com/debemdeboas/mdblog/internal/model"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/theme"
)

// State is everything the controller owns.
type State struct {
	Posts   *repository.PostStore
	Session model.EditSession
	Theme   theme.Theme
	Query   listview.Query
}

// Field names a focusable editor input.
type Field string

const (
	FocusNone    Field = ""
	FocusTitle   Field = "title"
	FocusContent Field = "content"
)

type SessionSnapshot struct {
	CurrentID model.PostID `json:"currentId,omitempty"`
	Title     string       `json:"title"`
	Tags      string       `json:"tags"`
	Buffer    string       `json:"buffer"`
	SelStart  int          `json:"selStart"`
	SelEnd    int          `json:"selEnd"`
	Dirty     bool         `json:"dirty"`
}

type ThemeSnapshot struct {
	Name        theme.Theme   `json:"name"`
	Attribute   string        `json:"attribute"`
	Icon        template.HTML `json:"icon"`
	SyntaxTheme string        `json:"syntaxTheme"`
}

// Download is a file the presentation layer should offer to the user.
type Download struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Result is the refreshed view after a command.
type Result struct {
	Preview template.HTML       `json:"preview"`
	List    listview.View       `json:"list"`
	Tags    listview.TagOptions `json:"tagOptions"`
	Query   listview.Query      `json:"query"`
	Session SessionSnapshot     `json:"session"`
	Theme   ThemeSnapshot       `json:"theme"`

	Notices      []Notice  `json:"notices,omitempty"`
	NeedsConfirm string    `json:"needsConfirm,omitempty"`
	Focus        Field     `json:"focus,omitempty"`
	Download     *Download `json:"download,omitempty"`
}
