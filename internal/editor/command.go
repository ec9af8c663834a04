package editor

import (
	"fmt"
	"strings"

	"github.com/debemdeboas/mdblog/internal/model"
)

// Kind enumerates every user action the controller handles.
type Kind int

const (
	KindInput Kind = iota + 1
	KindSelect
	KindInsert
	KindSaveDraft
	KindPublish
	KindClear
	KindLoad
	KindDelete
	KindImport
	KindExport
	KindToggleTheme
	KindSearch
	KindFilterTag
	KindClearSearch
	KindKey
)

var kindNames = map[Kind]string{
	KindInput:       "input",
	KindSelect:      "select",
	KindInsert:      "insert",
	KindSaveDraft:   "saveDraft",
	KindPublish:     "publish",
	KindClear:       "clear",
	KindLoad:        "load",
	KindDelete:      "delete",
	KindImport:      "import",
	KindExport:      "export",
	KindToggleTheme: "toggleTheme",
	KindSearch:      "search",
	KindFilterTag:   "filterTag",
	KindClearSearch: "clearSearch",
	KindKey:         "key",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, text)
}

// Fields mirrors the editor inputs. When a command carries them they
// replace the session's copy before the command runs.
type Fields struct {
	Buffer   string `json:"buffer"`
	Title    string `json:"title"`
	Tags     string `json:"tags"`
	SelStart int    `json:"selStart"`
	SelEnd   int    `json:"selEnd"`
}

// KeyEvent is a key press with its modifiers.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
}

// Command is one user action. Only the fields its Kind needs are read.
type Command struct {
	Kind   Kind    `json:"kind"`
	Fields *Fields `json:"fields,omitempty"`

	Snippet  string       `json:"snippet,omitempty"`
	PostID   model.PostID `json:"postId,omitempty"`
	Search   string       `json:"search,omitempty"`
	Tag      string       `json:"tag,omitempty"`
	FileName string       `json:"fileName,omitempty"`
	Content  string       `json:"content,omitempty"`
	Key      *KeyEvent    `json:"key,omitempty"`

	// Confirmed skips the confirmation prompt of a destructive command.
	Confirmed bool `json:"confirmed,omitempty"`
}

func Input(f Fields) Command { return Command{Kind: KindInput, Fields: &f} }

func Select(start, end int) Command {
	return Command{Kind: KindSelect, Fields: &Fields{SelStart: start, SelEnd: end}}
}

func Insert(snippet string) Command  { return Command{Kind: KindInsert, Snippet: snippet} }
func SaveDraft() Command             { return Command{Kind: KindSaveDraft} }
func Publish() Command               { return Command{Kind: KindPublish} }
func Clear() Command                 { return Command{Kind: KindClear} }
func Load(id model.PostID) Command   { return Command{Kind: KindLoad, PostID: id} }
func Delete(id model.PostID) Command { return Command{Kind: KindDelete, PostID: id} }
func Export() Command                { return Command{Kind: KindExport} }
func ToggleTheme() Command           { return Command{Kind: KindToggleTheme} }
func Search(q string) Command        { return Command{Kind: KindSearch, Search: q} }
func FilterTag(tag string) Command   { return Command{Kind: KindFilterTag, Tag: tag} }
func ClearSearch() Command           { return Command{Kind: KindClearSearch} }
func Key(ev KeyEvent) Command        { return Command{Kind: KindKey, Key: &ev} }

func Import(fileName, content string) Command {
	return Command{Kind: KindImport, FileName: fileName, Content: content}
}

// Confirm marks a command as already approved by the user.
func (c Command) Confirm() Command {
	c.Confirmed = true
	return c
}

// Shortcut maps a key press to the command it triggers: Ctrl/Meta+S
// saves a draft and Ctrl/Meta+Shift+Enter publishes.
func Shortcut(ev KeyEvent) (Kind, bool) {
	if !ev.Ctrl && !ev.Meta {
		return 0, false
	}
	switch {
	case ev.Key == "s":
		return KindSaveDraft, true
	case ev.Key == "Enter" && ev.Shift:
		return KindPublish, true
	}
	return 0, false
}
