package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/debemdeboas/mdblog/internal/model"
	"github.com/debemdeboas/mdblog/internal/util"
)

//go:embed samples/*.md
var sampleFS embed.FS

// SamplePosts parses the embedded sample posts. Their ids are 1, 2, 3 in
// file name order.
func SamplePosts() ([]model.Post, error) {
	names, err := fs.Glob(sampleFS, "samples/*.md")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	posts := make([]model.Post, 0, len(names))
	for i, name := range names {
		raw, err := sampleFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample %s: %w", name, err)
		}
		body, front := util.SplitFrontMatter(raw)
		if front == nil {
			return nil, fmt.Errorf("sample %s has no front matter", name)
		}
		content := strings.TrimSpace(string(body))
		posts = append(posts, model.Post{
			ID:              model.PostID(i + 1),
			Title:           front.Title,
			ContentMarkdown: content,
			Excerpt:         model.Excerpt(content),
			Tags:            model.ParseTags(model.JoinTags(front.Tags)),
			Date:            front.Date.UTC(),
			Published:       !front.Draft,
		})
	}
	return posts, nil
}
