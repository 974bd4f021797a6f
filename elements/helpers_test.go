package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// recordingSurface is a no-op Surface that records call counts, enough to
// assert an element drew something without asserting exact PDF output.
type recordingSurface struct {
	id         int
	fillCalls  int
	textCalls  int
	imageCalls int
	svgCalls   int
}

func (s *recordingSurface) FillPath(surface.Path, surface.Color)                 { s.fillCalls++ }
func (s *recordingSurface) StrokePath(surface.Path, surface.Stroke)              {}
func (s *recordingSurface) PlaceText(geom.Abs, geom.Abs, surface.GlyphRun, surface.Color) {
	s.textCalls++
}
func (s *recordingSurface) PlaceImage(geom.Point, geom.Size, surface.Image) { s.imageCalls++ }
func (s *recordingSurface) PlaceSVG(geom.Point, geom.Size, surface.SVGFragment) {
	s.svgCalls++
}
func (s *recordingSurface) PushClip(geom.Point, geom.Size) {}
func (s *recordingSurface) PopClip()                       {}
func (s *recordingSurface) PushTransform(geom.Point, float64) {}
func (s *recordingSurface) PopTransform()                     {}

// fakePageSource vends an unbounded sequence of fresh surfaces/locations,
// one per page, for tests that need a multi-page Breakable.
type fakePageSource struct {
	fullHeight geom.Abs
	surfaces   map[geom.PageID]*recordingSurface
	nextPage   geom.PageID
}

func newFakePageSource(start geom.PageID, fullHeight geom.Abs) *fakePageSource {
	return &fakePageSource{
		fullHeight: fullHeight,
		surfaces:   map[geom.PageID]*recordingSurface{},
		nextPage:   start,
	}
}

func (f *fakePageSource) GetPage(n uint32) geom.Location {
	page := f.nextPage + geom.PageID(n)
	return geom.Location{Page: page, X: 0, Y: 0}
}

func (f *fakePageSource) PageSurface(page geom.PageID) surface.Surface {
	s, ok := f.surfaces[page]
	if !ok {
		s = &recordingSurface{id: int(page)}
		f.surfaces[page] = s
	}
	return s
}

func newBreakable(fullHeight geom.Abs) *element.Breakable {
	return &element.Breakable{FullHeight: fullHeight, Source: newFakePageSource(0, fullHeight)}
}

func black() *surface.Color {
	c := surface.Black
	return &c
}
