// Package shaping measures and shapes text for the Text element, caching
// shaped runs so repeated Measure/Draw calls over the same (string, font,
// size, …) never re-run the shaping engine.
//
// Grounded on the teacher's layout/inline/shaping.go (the HarfbuzzShaper
// call and Em/Abs conversions) and layout/inline/linebreak.go (greedy
// line-break selection, simplified here to first-fit since spec.md's
// Non-goals exclude justification and hyphenation). The bounded LRU shape
// is adapted from Krispeckt-glimo/internal/render/font_lru.go, which caches
// font.Face objects the same way this caches ShapedRun values.
package shaping

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
)

// Options are the style knobs that key a shaped run. Only Tracking changes
// the shaped result; Weight and Italic distinguish cache entries but are
// not applied to the face. Color is
// deliberately excluded: it does not influence glyph selection or
// positioning, so two runs differing only in color must hit the same
// cache entry, per SPEC_FULL.md §5's key-normalization decision.
type Options struct {
	Weight   int // 100-900, 0 means the face's own default
	Italic   bool
	Tracking geom.Abs // extra space inserted after every glyph
}

// ShapedGlyph is one positioned glyph within a ShapedRun.
type ShapedGlyph struct {
	GlyphID uint16
	Advance geom.Abs
	XOffset geom.Abs
	YOffset geom.Abs
	Cluster int // byte offset into the run's source text
}

// ShapedRun is the cached result of shaping one contiguous piece of text at
// one size with one set of options.
type ShapedRun struct {
	Font    *font.Font
	Size    geom.Abs
	Text    string
	Glyphs  []ShapedGlyph
	Width   geom.Abs
	Ascent  geom.Abs
	Descent geom.Abs
}

type cacheKey struct {
	text    string
	fontKey string
	size    geom.Abs
	opts    Options
}

// Cache is a bounded, LRU-evicted cache of shaped runs, shared across a
// single document generation and safe to share across documents (spec.md
// §5: "a document generation" may run its shaping cache concurrently with
// another generation's distinct cache, or with an internally-synchronized
// shared one — this type is internally synchronized either way).
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[cacheKey]*list.Element
	order    *list.List
	shaper   *harfbuzzShaper
}

type lruEntry struct {
	key cacheKey
	run *ShapedRun
}

// DefaultCapacity is used by NewCache(0).
const DefaultCapacity = 4096

// NewCache creates a shaping cache bounded to capacity entries (≥1).
// capacity <= 0 selects DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[cacheKey]*list.Element),
		order:    list.New(),
		shaper:   newHarfbuzzShaper(),
	}
}

// Shape returns the ShapedRun for text shaped with f at size and opts,
// consulting the cache first. On a cache miss it runs the shaping engine
// outside the lock and records the result. Concurrent misses on the same
// (text, font, size, opts) tuple may each run the engine; the first result
// stored is the one every caller receives (modulo eviction).
func (c *Cache) Shape(f *font.Font, size geom.Abs, text string, opts Options) (*ShapedRun, error) {
	key := cacheKey{text: text, fontKey: f.Key(), size: size, opts: opts}

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		run := el.Value.(*lruEntry).run
		c.mu.Unlock()
		return run, nil
	}
	c.mu.Unlock()

	run, err := c.shaper.shape(f, size, text, opts)
	if err != nil {
		return nil, fmt.Errorf("shape %q: %w", text, err)
	}
	for _, g := range run.Glyphs {
		f.MarkUsed(g.GlyphID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToBack(el)
		return el.Value.(*lruEntry).run, nil
	}
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			delete(c.items, oldest.Value.(*lruEntry).key)
			c.order.Remove(oldest)
		}
	}
	el := c.order.PushBack(&lruEntry{key: key, run: run})
	c.items[key] = el
	return run, nil
}

// Len reports the number of cached runs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[cacheKey]*list.Element)
	c.order.Init()
}
