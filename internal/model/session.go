package model

import "strings"

// EditSession is the transient editor state. Current is nil while the
// buffer is new and unsaved.
type EditSession struct {
	Current  *Post
	Buffer   string
	Title    string
	TagInput string

	SelectionStart int
	SelectionEnd   int
}

func (s *EditSession) Reset() {
	*s = EditSession{}
}

// Dirty reports whether clearing or replacing the session loses user input.
func (s *EditSession) Dirty() bool {
	return strings.TrimSpace(s.Buffer) != "" || strings.TrimSpace(s.Title) != ""
}

func (s *EditSession) Load(p Post) {
	s.Current = &p
	s.Title = p.Title
	s.TagInput = JoinTags(p.Tags)
	s.Buffer = p.ContentMarkdown
	s.SelectionStart, s.SelectionEnd = 0, 0
}

func (s *EditSession) IsCurrent(id PostID) bool {
	return s.Current != nil && s.Current.ID == id
}

// CurrentID returns the loaded post id, or false for a new buffer.
func (s *EditSession) CurrentID() (PostID, bool) {
	if s.Current == nil {
		return 0, false
	}
	return s.Current.ID, true
}
