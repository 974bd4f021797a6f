// Package font loads TrueType/OpenType font files and records which glyphs
// have been shaped from each face; the writer embeds the full font program.
//
// Grounded on the teacher's font/loader.go (go-text/typesetting parsing) and
// font/subset.go (GlyphSet), narrowed from a font-discovery system (the
// teacher also does filesystem font discovery and family/weight matching,
// out of scope here per spec.md §6: "Font and image registration are
// handled by the writer; the core holds opaque handles") to the single
// concern SPEC_FULL.md needs: turning a file path or byte slice into a
// Font handle the shaping cache and the writer can both key on.
package font

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"sync"

	gofont "github.com/go-text/typesetting/font"
)

// Font is a loaded font face, its original file bytes, and the set of glyph
// IDs shaped from it so far.
type Font struct {
	face *gofont.Face
	data []byte
	key  string

	mu     sync.Mutex
	glyphs map[uint16]struct{}
}

// Load reads a single-face TTF/OTF font file from path.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse loads a single-face font from raw bytes.
func Parse(data []byte) (*Font, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	sum := sha256.Sum256(data)
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Font{
		face:   face,
		data:   raw,
		key:    hex.EncodeToString(sum[:8]),
		glyphs: make(map[uint16]struct{}),
	}, nil
}

// Key returns a stable identity for this font, used by the shaping cache
// and the writer's font-resource table. Implements surface.Font.
func (f *Font) Key() string { return f.key }

// Face returns the underlying go-text face for shaping.
func (f *Font) Face() *gofont.Face { return f.face }

// Data returns the original font file bytes, which the writer embeds whole.
func (f *Font) Data() []byte { return f.data }

// MarkUsed records that glyphID was shaped from this font somewhere in the
// document; UsedGlyphs reports the set.
func (f *Font) MarkUsed(glyphID uint16) {
	f.mu.Lock()
	f.glyphs[glyphID] = struct{}{}
	f.mu.Unlock()
}

// UsedGlyphs returns the sorted set of glyph IDs marked used so far.
func (f *Font) UsedGlyphs() []uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint16, 0, len(f.glyphs))
	for id := range f.glyphs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Metrics returns the face's ascent and descent in points at the given
// point size, always using the conventional 0.8/0.2 em split; the face's
// own hhea metrics are not consulted.
func (f *Font) Metrics(size float64) (ascent, descent float64) {
	return 0.8 * size, 0.2 * size
}

// Advance returns the horizontal advance of a glyph, in font units scaled
// to size.
func (f *Font) Advance(glyphID uint16, size float64) float64 {
	upm := float64(f.face.Font.Upem())
	if upm == 0 {
		upm = 1000
	}
	return float64(f.face.HorizontalAdvance(gofont.GID(glyphID))) / upm * size
}
