package writer

import (
	"strings"
	"testing"

	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

func TestAddPageReturnsSequentialIDs(t *testing.T) {
	w := New(Metadata{})
	id0 := w.AddPage(geom.Size{Width: 100, Height: 200})
	id1 := w.AddPage(geom.Size{Width: 100, Height: 200})
	if id0 != 0 || id1 != 1 {
		t.Fatalf("got ids %d, %d, want 0, 1", id0, id1)
	}
}

func TestGetPageIsAnchoredAtDocumentStartNotDynamicFrontier(t *testing.T) {
	w := New(Metadata{})
	w.AddPage(geom.Size{Width: 100, Height: 200})

	// A first successor branch pulls the frontier ahead to page 3.
	w.GetPage(3)
	if len(w.pages) != 4 {
		t.Fatalf("expected 4 pages allocated after GetPage(3), got %d", len(w.pages))
	}

	// A second, unrelated branch anchored at the document start must still
	// resolve GetPage(1) to absolute page 1, not "one past whatever the
	// first branch already reached".
	loc := w.GetPage(1)
	if loc.Page != 1 {
		t.Fatalf("GetPage(1) = page %d, want page 1 (fixed from document start)", loc.Page)
	}
}

func TestGetPageIsIdempotent(t *testing.T) {
	w := New(Metadata{})
	w.AddPage(geom.Size{Width: 100, Height: 200})
	first := w.GetPage(2)
	second := w.GetPage(2)
	if first != second {
		t.Fatalf("GetPage(2) returned %+v then %+v, want identical", first, second)
	}
}

func TestPageSurfaceReturnsStableSurfacePerPage(t *testing.T) {
	w := New(Metadata{})
	w.AddPage(geom.Size{Width: 100, Height: 200})
	w.AddPage(geom.Size{Width: 100, Height: 200})
	if w.PageSurface(0) == w.PageSurface(1) {
		t.Fatalf("expected distinct surfaces for distinct pages")
	}
	if w.PageSurface(0) != w.PageSurface(0) {
		t.Fatalf("expected the same surface instance on repeated lookups")
	}
}

func TestFinishProducesWellFormedDocumentSkeleton(t *testing.T) {
	w := New(Metadata{Title: "Report"})
	id := w.AddPage(geom.Size{Width: 200, Height: 300})
	w.PageSurface(id).FillPath(
		surface.Path{
			Start: geom.Point{X: 10, Y: 10},
			Segments: []surface.PathSegment{
				{To: geom.Point{X: 60, Y: 10}},
				{To: geom.Point{X: 60, Y: 60}},
				{To: geom.Point{X: 10, Y: 60}},
			},
			Closed: true,
		},
		surface.Black,
	)
	out := string(w.Finish())

	if !strings.HasPrefix(out, "%PDF-1.7\n") {
		t.Fatalf("expected PDF header")
	}
	for _, want := range []string{"/Type /Catalog", "/Type /Pages", "/Type /Page", "/Title (Report)", "trailer"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
