package imagine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Display caps surfaces use when listing recent work. The store itself may
// hold more.
const (
	GalleryDisplayImages = 8
	GalleryDisplayVideos = 4
)

// GalleryEntry is one generated artifact in session history. Entries are
// never mutated after insertion.
type GalleryEntry struct {
	ID        string
	Prompt    string
	CreatedAt time.Time
	Result    *GenerationResult
}

// Gallery is an ordered, most-recent-first history of results for one
// interactive session. It lives and dies with the session; nothing is
// persisted.
type Gallery struct {
	mu      sync.Mutex
	entries []GalleryEntry
}

func NewGallery() *Gallery {
	return &Gallery{}
}

// Append inserts at the front and returns the stored entry.
func (g *Gallery) Append(prompt string, res *GenerationResult) GalleryEntry {
	entry := GalleryEntry{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		CreatedAt: time.Now(),
		Result:    res,
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append([]GalleryEntry{entry}, g.entries...)
	return entry
}

// Recent returns at most n most-recently-appended entries without mutating
// the store.
func (g *Gallery) Recent(n int) []GalleryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > len(g.entries) {
		n = len(g.entries)
	}
	out := make([]GalleryEntry, n)
	copy(out, g.entries[:n])
	return out
}

// Get looks up an entry by ID, for surfaces offering downloads.
func (g *Gallery) Get(id string) (GalleryEntry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.entries {
		if e.ID == id {
			return e, true
		}
	}
	return GalleryEntry{}, false
}

func (g *Gallery) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = nil
}

func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
