package writer

import (
	"bytes"
	"fmt"

	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// pageSurface accumulates one page's content stream and the resource
// names it references; it implements surface.Surface.
//
// Grounded on the teacher's pdf/stream.go content-stream operator
// emission, narrowed to the operators the element protocol actually
// needs (path fill/stroke, single glyph-run text placement, image/SVG
// XObjects, clip and transform save/restore). The top-down layout
// coordinate system (spec.md §4.1) is reconciled with PDF's bottom-up
// one by a single "1 0 0 -1 0 height cm" emitted once at the start of the
// stream rather than flipping every individual coordinate — this way a
// nested cm (PushTransform) composes with the page flip the same way any
// other nested transform would, instead of needing special-casing.
type pageSurface struct {
	w        *Writer
	content  bytes.Buffer
	fontRes  map[string]string // font.Font.Key() -> resource name ("F1", ...)
	imageRes map[string]string // image/svg Key() -> resource name ("Im1", ...)
	xobjects map[string]object // resource name -> indirect reference
}

func newPageSurface(w *Writer, height geom.Abs) *pageSurface {
	p := &pageSurface{
		w: w, fontRes: map[string]string{}, imageRes: map[string]string{}, xobjects: map[string]object{},
	}
	fmt.Fprintf(&p.content, "1 0 0 -1 0 %s cm\n", fmtNum(height))
	return p
}

func colorComponents(c surface.Color) (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (p *pageSurface) emitPath(path surface.Path) {
	fmt.Fprintf(&p.content, "%s %s m\n", fmtNum(path.Start.X), fmtNum(path.Start.Y))
	for _, seg := range path.Segments {
		if seg.Cubic {
			fmt.Fprintf(&p.content, "%s %s %s %s %s %s c\n",
				fmtNum(seg.Ctrl1.X), fmtNum(seg.Ctrl1.Y),
				fmtNum(seg.Ctrl2.X), fmtNum(seg.Ctrl2.Y),
				fmtNum(seg.To.X), fmtNum(seg.To.Y))
		} else {
			fmt.Fprintf(&p.content, "%s %s l\n", fmtNum(seg.To.X), fmtNum(seg.To.Y))
		}
	}
	if path.Closed {
		p.content.WriteString("h\n")
	}
}

func fmtNum(v geom.Abs) string {
	var b bytes.Buffer
	pdfReal(v).writeTo(&b)
	return b.String()
}

func (p *pageSurface) FillPath(path surface.Path, color surface.Color) {
	r, g, b := colorComponents(color)
	fmt.Fprintf(&p.content, "%s %s %s rg\n", fmtNum(geom.Abs(r)), fmtNum(geom.Abs(g)), fmtNum(geom.Abs(b)))
	p.emitPath(path)
	p.content.WriteString("f\n")
}

func (p *pageSurface) StrokePath(path surface.Path, stroke surface.Stroke) {
	r, g, b := colorComponents(stroke.Color)
	fmt.Fprintf(&p.content, "%s %s %s RG\n", fmtNum(geom.Abs(r)), fmtNum(geom.Abs(g)), fmtNum(geom.Abs(b)))
	fmt.Fprintf(&p.content, "%s w\n", fmtNum(stroke.Thickness))
	switch stroke.Cap {
	case surface.LineCapRound:
		p.content.WriteString("1 J\n")
	case surface.LineCapSquare:
		p.content.WriteString("2 J\n")
	default:
		p.content.WriteString("0 J\n")
	}
	p.emitPath(path)
	p.content.WriteString("S\n")
}

// fontResource returns the page-local resource name for f, registering it
// with the document's font table on first use.
func (p *pageSurface) fontResource(f surface.Font) string {
	key := f.Key()
	if name, ok := p.fontRes[key]; ok {
		return name
	}
	name := fmt.Sprintf("F%d", len(p.fontRes)+1)
	p.fontRes[key] = name
	p.w.registerFont(f)
	return name
}

// PlaceText emits one glyph run as a sequence of single-glyph show
// operators, each preceded by a relative text-position move. Because the
// page's own cm already flips the axis, text drawn here would render
// upside down under the page's flip unless counter-flipped locally, so
// PlaceText wraps its own block in a second "1 0 0 -1 x baselineY cm"
// relative to the baseline origin.
//
// Each font is embedded as a Type0/CIDFontType2 composite font with
// /CIDToGIDMap /Identity (font.go, grounded on pdf/fonts.go's
// buildCIDFont/buildType0Font), so a glyph ID doubles as its own CID and
// is encoded here as a 2-byte Identity-H code — no 256-glyph ceiling.
func (p *pageSurface) PlaceText(x, baselineY geom.Abs, run surface.GlyphRun, color surface.Color) {
	if len(run.GlyphIDs) == 0 {
		return
	}
	name := p.fontResource(run.Font)
	r, g, b := colorComponents(color)
	p.content.WriteString("q\n")
	fmt.Fprintf(&p.content, "1 0 0 -1 %s %s cm\n", fmtNum(x), fmtNum(baselineY))
	fmt.Fprintf(&p.content, "%s %s %s rg\n", fmtNum(geom.Abs(r)), fmtNum(geom.Abs(g)), fmtNum(geom.Abs(b)))
	p.content.WriteString("BT\n")
	fmt.Fprintf(&p.content, "/%s %s Tf\n", name, fmtNum(run.Size))
	fmt.Fprintf(&p.content, "0 0 Td\n")
	for i, gid := range run.GlyphIDs {
		if i > 0 {
			fmt.Fprintf(&p.content, "%s 0 Td\n", fmtNum(run.Advances[i-1]))
		}
		p.w.markGlyphUsed(run.Font, gid)
		fmt.Fprintf(&p.content, "<%04X> Tj\n", gid)
	}
	p.content.WriteString("ET\nQ\n")
}

func (p *pageSurface) registerXObject(key string, ref object) string {
	if name, ok := p.imageRes[key]; ok {
		return name
	}
	name := fmt.Sprintf("Im%d", len(p.imageRes)+1)
	p.imageRes[key] = name
	p.xobjects[name] = ref
	return name
}

func (p *pageSurface) PlaceImage(pos geom.Point, size geom.Size, img surface.Image) {
	name := p.w.registerImage(p, img)
	p.content.WriteString("q\n")
	fmt.Fprintf(&p.content, "%s 0 0 %s %s %s cm\n",
		fmtNum(size.Width), fmtNum(size.Height), fmtNum(pos.X), fmtNum(pos.Y))
	fmt.Fprintf(&p.content, "/%s Do\n", name)
	p.content.WriteString("Q\n")
}

func (p *pageSurface) PlaceSVG(pos geom.Point, size geom.Size, frag surface.SVGFragment) {
	// An SVG fragment is rasterized by the embedder (package svgdecode)
	// into the same surface.Image path PlaceImage uses; a fragment that
	// arrives here without having been rasterized is a caller error the
	// protocol has no channel to report (§7), so it degenerates to a
	// no-op rather than panicking mid-document.
	if raster, ok := frag.(surface.Image); ok {
		p.PlaceImage(pos, size, raster)
	}
}

func (p *pageSurface) PushClip(pos geom.Point, size geom.Size) {
	p.content.WriteString("q\n")
	fmt.Fprintf(&p.content, "%s %s %s %s re W n\n", fmtNum(pos.X), fmtNum(pos.Y), fmtNum(size.Width), fmtNum(size.Height))
}

func (p *pageSurface) PopClip() { p.content.WriteString("Q\n") }

func (p *pageSurface) PushTransform(t geom.Point, scale float64) {
	p.content.WriteString("q\n")
	fmt.Fprintf(&p.content, "%s 0 0 %s %s %s cm\n",
		fmtNum(geom.Abs(scale)), fmtNum(geom.Abs(scale)), fmtNum(t.X), fmtNum(t.Y))
}

func (p *pageSurface) PopTransform() { p.content.WriteString("Q\n") }
