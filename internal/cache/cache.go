// Package cache provides thread-safe generic caching functionality and markdown rendering cache.
package cache

import (
	"html/template"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// SetBounded stores value, first dropping every entry when the cache
// already holds max items.
func (c *Cache[K, V]) SetBounded(key K, value V, max int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; !ok && len(c.items) >= max {
		c.items = make(map[K]V)
	}
	c.items[key] = value
}

// MaxRenderedEntries bounds the preview cache; every keystroke produces a new key.
const MaxRenderedEntries = 512

var renderedMarkdownCache = NewCache[string, template.HTML]()

func GetRenderedMarkdown(contentHash, syntaxTheme string) (template.HTML, bool) {
	return renderedMarkdownCache.Get(contentHash + ":" + syntaxTheme)
}

func SetRenderedMarkdown(contentHash, syntaxTheme string, html template.HTML) {
	renderedMarkdownCache.SetBounded(contentHash+":"+syntaxTheme, html, MaxRenderedEntries)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}

func RenderedMarkdownLen() int {
	return renderedMarkdownCache.Len()
}
