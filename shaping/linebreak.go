package shaping

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
)

// Line is one line of a paragraph after line-break selection.
type Line struct {
	Text          string
	Glyphs        []ShapedGlyph
	Width         geom.Abs
	Ascent        geom.Abs
	Descent       geom.Abs
	Run           *ShapedRun
	GlyphStart    int // index into Run.Glyphs where this line begins
}

// BreakLines shapes text once (through the cache) and splits the shaped
// glyph run into lines using a first-fit greedy policy: as many whole
// words as fit within maxWidth, no justification, no hyphenation. A single
// word wider than maxWidth is placed alone on its own (overflowing) line
// rather than split, per spec.md's Non-goals.
//
// Grounded on the teacher's layout/inline/linebreak.go, stripped of its
// Knuth-Plass cost model and hyphenation (both explicitly out of scope)
// down to the "first-fit" policy spec.md §4.7 calls for; grapheme-aware
// whitespace detection is grounded on rivo/uniseg usage in
// Krispeckt-glimo/instructions/text_wrap.go (splitGraphemes).
func (c *Cache) BreakLines(f *font.Font, size geom.Abs, text string, opts Options, maxWidth geom.Abs) ([]Line, error) {
	run, err := c.Shape(f, size, text, opts)
	if err != nil {
		return nil, err
	}
	if len(run.Glyphs) == 0 {
		return []Line{{Text: "", Run: run, Ascent: run.Ascent, Descent: run.Descent}}, nil
	}

	breakAfter := breakableBytes(text)

	var lines []Line
	lineStart := 0
	width := geom.Abs(0)
	lastBreak := -1

	flush := func(endExclusive int) {
		if endExclusive <= lineStart {
			return
		}
		startByte := run.Glyphs[lineStart].Cluster
		var endByte int
		if endExclusive < len(run.Glyphs) {
			endByte = run.Glyphs[endExclusive].Cluster
		} else {
			endByte = len(text)
		}
		segment := strings.TrimRight(text[startByte:endByte], " \t")
		var w geom.Abs
		for _, g := range run.Glyphs[lineStart:endExclusive] {
			w += g.Advance
		}
		lines = append(lines, Line{
			Text:       segment,
			Glyphs:     run.Glyphs[lineStart:endExclusive],
			Width:      w,
			Ascent:     run.Ascent,
			Descent:    run.Descent,
			Run:        run,
			GlyphStart: lineStart,
		})
	}

	for i := 0; i < len(run.Glyphs); i++ {
		g := run.Glyphs[i]
		if width+g.Advance > maxWidth && i > lineStart {
			if lastBreak >= lineStart {
				flush(lastBreak + 1)
				lineStart = lastBreak + 1
				width = 0
				for _, gg := range run.Glyphs[lineStart:i] {
					width += gg.Advance
				}
				lastBreak = -1
			}
			// else: a single word wider than maxWidth overflows this line.
		}
		width += g.Advance
		if breakAfter[g.Cluster] {
			lastBreak = i
		}
	}
	flush(len(run.Glyphs))

	return lines, nil
}

// breakableBytes reports, for each grapheme cluster's starting byte offset
// in text, whether a line break is allowed immediately after it (i.e. the
// cluster is whitespace).
func breakableBytes(text string) map[int]bool {
	points := make(map[int]bool)
	offset := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		r, _ := utf8.DecodeRuneInString(cluster)
		if unicode.IsSpace(r) {
			points[offset] = true
		}
		offset += len(cluster)
	}
	return points
}
