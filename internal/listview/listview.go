// Package listview shapes the post collection into rows for the post list.
package listview

import (
	"slices"
	"strings"

	"github.com/debemdeboas/mdblog/internal/model"
	"golang.org/x/text/cases"
)

// DateLayout is how post dates are shown in the list.
const DateLayout = "Jan 2, 2006"

// Query narrows the list. Empty fields match every post.
type Query struct {
	Search string `json:"search"`
	Tag    string `json:"tag"`
}

func (q Query) IsZero() bool {
	return q.Search == "" && q.Tag == ""
}

// Row is one entry of the post list.
type Row struct {
	ID        model.PostID `json:"id"`
	Title     string       `json:"title"`
	Excerpt   string       `json:"excerpt"`
	Date      string       `json:"date"`
	Published bool         `json:"published"`
	Status    string       `json:"status"`
	Tags      []string     `json:"tags"`
	Selected  bool         `json:"selected"`
}

type View struct {
	Rows  []Row `json:"rows"`
	Empty bool  `json:"empty"`
}

// Build filters posts by q, sorts them newest first and marks the row
// whose id is current. A zero current marks nothing.
func Build(posts []model.Post, q Query, current model.PostID) View {
	matches := Filter(posts, q)

	rows := make([]Row, 0, len(matches))
	for _, p := range matches {
		rows = append(rows, Row{
			ID:        p.ID,
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Date:      p.Date.Local().Format(DateLayout),
			Published: p.Published,
			Status:    p.Status(),
			Tags:      slices.Clone(p.Tags),
			Selected:  current != 0 && p.ID == current,
		})
	}
	return View{Rows: rows, Empty: len(rows) == 0}
}

// Filter returns the posts matching q sorted by date descending. Posts
// with equal dates keep their store order.
func Filter(posts []model.Post, q Query) []model.Post {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	var out []model.Post
	for _, p := range posts {
		if needle != "" &&
			!strings.Contains(fold.String(p.Title), needle) &&
			!strings.Contains(fold.String(p.Excerpt), needle) &&
			!strings.Contains(fold.String(p.ContentMarkdown), needle) {
			continue
		}
		if q.Tag != "" && !p.HasTag(q.Tag) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b model.Post) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// TagOptions is the tag filter dropdown.
type TagOptions struct {
	Tags     []string `json:"tags"`
	Selected string   `json:"selected"`
}

// BuildTagOptions lists every tag sorted and unique. The current
// selection is kept only while some post still carries it.
func BuildTagOptions(posts []model.Post, current string) TagOptions {
	tags := []string{}
	for _, p := range posts {
		tags = append(tags, p.Tags...)
	}
	slices.Sort(tags)
	tags = slices.Compact(tags)

	opts := TagOptions{Tags: tags}
	if slices.Contains(tags, current) {
		opts.Selected = current
	}
	return opts
}
