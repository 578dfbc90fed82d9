package app

import (
	"cmp"
	"slices"
	"sync"
)

// Post is a blog post served by the example API.
type Post struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// PostStore is the storage the post handlers depend on. It is injected by
// type through the Container.
type PostStore interface {
	Find(id int) (Post, bool)
	FindBySlug(slug string) (Post, bool)
	List() []Post
	Delete(id int) bool
}

// MemoryPosts is a PostStore held in memory.
type MemoryPosts struct {
	mu    sync.RWMutex
	posts map[int]Post
}

// NewMemoryPosts returns a store seeded with posts.
func NewMemoryPosts(posts ...Post) *MemoryPosts {
	m := &MemoryPosts{posts: make(map[int]Post, len(posts))}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

// Find returns the post with id.
func (m *MemoryPosts) Find(id int) (Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[id]
	return p, ok
}

// FindBySlug returns the post with slug.
func (m *MemoryPosts) FindBySlug(slug string) (Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// List returns every post ordered by id.
func (m *MemoryPosts) List() []Post {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Post) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Delete removes the post with id and reports whether it existed.
func (m *MemoryPosts) Delete(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return false
	}
	delete(m.posts, id)
	return true
}

// seedPosts is the content served when no store is configured.
func seedPosts() []Post {
	return []Post{
		{ID: 1, Slug: "hello-world", Title: "Hello, world"},
		{ID: 2, Slug: "routing-notes", Title: "Notes on routing"},
	}
}
