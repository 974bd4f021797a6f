package shaping

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
)

// harfbuzzShaper wraps go-text/typesetting's shaper, converting between its
// fixed-point units and this package's point-based geom.Abs.
//
// Grounded on the teacher's layout/inline/shaping.go shapeSegment, narrowed
// to a single face (font fallback across multiple faces is the teacher's
// concern, not this spec's — §4.7 keys the cache on one font identity).
type harfbuzzShaper struct {
	shaper gotext.HarfbuzzShaper
}

func newHarfbuzzShaper() *harfbuzzShaper {
	return &harfbuzzShaper{}
}

func (h *harfbuzzShaper) shape(f *font.Font, size geom.Abs, text string, opts Options) (*ShapedRun, error) {
	runes := []rune(text)
	ascentF, descentF := f.Metrics(float64(size))

	if len(runes) == 0 {
		return &ShapedRun{Font: f, Size: size, Text: text, Ascent: geom.Abs(ascentF), Descent: geom.Abs(descentF)}, nil
	}

	input := gotext.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Face:      f.Face(),
		Size:      toFixed(float64(size)),
		Direction: baseDirection(text),
	}

	out := h.shaper.Shape(input)

	glyphs := make([]ShapedGlyph, 0, len(out.Glyphs))
	var width geom.Abs
	byteOffset := 0
	runeIdx := 0
	for i, g := range out.Glyphs {
		cluster := g.ClusterIndex
		for runeIdx < cluster && runeIdx < len(runes) {
			byteOffset += len(string(runes[runeIdx]))
			runeIdx++
		}
		advance := geom.Abs(float64(g.XAdvance)/64.0) + opts.Tracking
		glyphs = append(glyphs, ShapedGlyph{
			GlyphID: uint16(g.GlyphID),
			Advance: advance,
			XOffset: geom.Abs(float64(g.XOffset) / 64.0),
			YOffset: geom.Abs(float64(g.YOffset) / 64.0),
			Cluster: byteOffset,
		})
		width += advance
		_ = i
	}

	return &ShapedRun{
		Font:    f,
		Size:    size,
		Text:    text,
		Glyphs:  glyphs,
		Width:   width,
		Ascent:  geom.Abs(ascentF),
		Descent: geom.Abs(descentF),
	}, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// baseDirection picks the shaping direction from the paragraph's bidi
// embedding level, so a run of Hebrew or Arabic text shapes
// right-to-left without the caller having to say so explicitly.
//
// Grounded on the teacher's layout/inline/shaping.go, which resolves the
// same di.DirectionLTR/di.DirectionRTL choice from an explicit Dir field
// on its shaping context; this package has no such field (§4.7's Options
// carries only style knobs), so the direction is derived straight from
// the text via golang.org/x/text/unicode/bidi instead.
func baseDirection(text string) di.Direction {
	var para bidi.Paragraph
	if _, err := para.SetString(text); err != nil {
		return di.DirectionLTR
	}
	if para.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
