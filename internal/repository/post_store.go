package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/model"
)

// PostStore is the ordered post collection. New posts go to the front.
// The whole collection is persisted as one JSON array.
type PostStore struct {
	mu         sync.RWMutex
	storage    Storage
	posts      []model.Post
	excerptLen int
}

func NewPostStore(storage Storage) *PostStore {
	return &PostStore{storage: storage, excerptLen: config.DefaultExcerptLength}
}

// SetExcerptLength changes how many characters Excerpt keeps. Values
// below one restore the default.
func (s *PostStore) SetExcerptLength(n int) {
	if n < 1 {
		n = config.DefaultExcerptLength
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excerptLen = n
}

// Excerpt derives the list excerpt of a body.
func (s *PostStore) Excerpt(body string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.ExcerptN(body, s.excerptLen)
}

// Load replaces the collection with the persisted one. A missing blob is
// an empty collection; a corrupt blob also empties it and is reported.
func (s *PostStore) Load(ctx context.Context) error {
	blob, err := s.storage.Get(ctx, config.StorageKeyPosts)
	if errors.Is(err, ErrNotFound) {
		s.replace(nil)
		return nil
	}
	if err != nil {
		s.replace(nil)
		return fmt.Errorf("failed to load posts: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(blob, &posts); err != nil {
		s.replace(nil)
		return fmt.Errorf("failed to decode posts: %w", err)
	}

	for i := range posts {
		posts[i].Excerpt = s.Excerpt(posts[i].ContentMarkdown)
		if posts[i].Tags == nil {
			posts[i].Tags = []string{}
		}
	}
	s.replace(posts)
	repoLogger.Info().Int("posts", len(posts)).Msg("Posts loaded")
	return nil
}

func (s *PostStore) replace(posts []model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

// Save writes the collection. The in-memory collection is kept whether
// or not the write succeeds.
func (s *PostStore) Save(ctx context.Context) error {
	s.mu.RLock()
	posts := s.posts
	if posts == nil {
		posts = []model.Post{}
	}
	blob, err := json.Marshal(posts)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	if err := s.storage.Set(ctx, config.StorageKeyPosts, blob); err != nil {
		repoLogger.Error().Err(err).Int("bytes", len(blob)).Msg("Failed to save posts")
		return fmt.Errorf("failed to save posts: %w", err)
	}
	return nil
}

// List returns a copy of the collection in store order.
func (s *PostStore) List() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Upsert replaces the post with the same id in place, or prepends p when
// the id is new. It reports whether p was created.
func (s *PostStore) Upsert(p model.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(p.ID); i >= 0 {
		s.posts[i] = p
		return false
	}
	s.posts = slices.Insert(s.posts, 0, p)
	return true
}

// Remove deletes the post with id and reports whether it existed.
func (s *PostStore) Remove(id model.PostID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.posts = slices.Delete(s.posts, i, i+1)
	return true
}

func (s *PostStore) FindByID(id model.PostID) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.posts[i], true
	}
	return model.Post{}, false
}

func (s *PostStore) index(id model.PostID) int {
	return slices.IndexFunc(s.posts, func(p model.Post) bool { return p.ID == id })
}

// Tags returns every tag in use, sorted and unique.
func (s *PostStore) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tags []string
	for _, p := range s.posts {
		tags = append(tags, p.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// NextID derives an id from now in Unix milliseconds, bumped past any id
// already in use.
func (s *PostStore) NextID(now time.Time) model.PostID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := model.PostID(now.UnixMilli())
	for s.index(id) >= 0 {
		id++
	}
	return id
}

// Seed fills an empty collection with the sample posts and reports
// whether it did.
func (s *PostStore) Seed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.posts) > 0 {
		return false, nil
	}
	samples, err := SamplePosts()
	if err != nil {
		return false, err
	}
	for i := range samples {
		samples[i].Excerpt = model.ExcerptN(samples[i].ContentMarkdown, s.excerptLen)
	}
	s.posts = samples
	repoLogger.Info().Int("posts", len(samples)).Msg("Sample posts loaded")
	return true, nil
}
