// Package model defines core data structures and types for the blog application.
package model

import (
	"strconv"
	"time"
)

// PostID is derived from the creation time in Unix milliseconds.
type PostID int64

func (id PostID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParsePostID(s string) (PostID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return PostID(v), err
}

// Post is one record of the persisted collection. Field names match the
// stored blob format.
type Post struct {
	ID              PostID     `json:"id"`
	Title           string     `json:"title"`
	ContentMarkdown string     `json:"contentMarkdown"`
	Excerpt         string     `json:"excerpt"`
	Tags            []string   `json:"tags"`
	Date            time.Time  `json:"date"`
	LastModified    *time.Time `json:"lastModified,omitempty"`
	Published       bool       `json:"published"`
}

func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Status is the label shown in the post list.
func (p *Post) Status() string {
	if p.Published {
		return "Published"
	}
	return "Draft"
}
