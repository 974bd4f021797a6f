package elements

import (
	"testing"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

func TestRectangleMeasureDrawAgree(t *testing.T) {
	r := &Rectangle{Size: geom.Size{Width: 100, Height: 40}, Fill: black()}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 200}, FirstHeight: 400}
	measured := r.Measure(ctx)

	surf := &recordingSurface{}
	drawn := r.Draw(element.DrawContext{
		Surface: surf, Width: ctx.Width, Location: geom.Location{}, FirstHeight: ctx.FirstHeight,
	})

	if measured.Size != drawn.Size {
		t.Fatalf("measure/draw size mismatch: %+v vs %+v", measured.Size, drawn.Size)
	}
	if measured.FirstLocationUsage != drawn.FirstLocationUsage {
		t.Fatalf("measure/draw usage mismatch: %v vs %v", measured.FirstLocationUsage, drawn.FirstLocationUsage)
	}
	if surf.fillCalls != 1 {
		t.Fatalf("expected one fill call, got %d", surf.fillCalls)
	}
	if drawn.End != (geom.Location{Y: 40}) {
		t.Fatalf("unexpected End: %+v", drawn.End)
	}
}

func TestRectangleSkipsWhenTallerThanFirstHeight(t *testing.T) {
	r := &Rectangle{Size: geom.Size{Width: 50, Height: 500}}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 200}, FirstHeight: 10, Breakable: newBreakable(800)}
	usage := r.FirstLocationUsage(ctx)
	if usage != element.WillSkip {
		t.Fatalf("expected WillSkip, got %v", usage)
	}

	out := r.Measure(ctx)
	if out.FirstLocationUsage != element.WillSkip {
		t.Fatalf("Measure disagrees with FirstLocationUsage: %v", out.FirstLocationUsage)
	}
}

func TestRectangleDrawsOnSuccessorPageSurface(t *testing.T) {
	r := &Rectangle{Size: geom.Size{Width: 50, Height: 500}, Fill: black()}
	breakable := newBreakable(800)
	startSurf := &recordingSurface{id: -1}
	drawn := r.Draw(element.DrawContext{
		Surface: startSurf, Width: geom.WidthConstraint{Max: 200}, Location: geom.Location{Page: 0},
		FirstHeight: 10, Breakable: breakable,
	})

	if drawn.End.Page != 1 {
		t.Fatalf("expected rectangle to land on page 1, got %d", drawn.End.Page)
	}
	if startSurf.fillCalls != 0 {
		t.Fatalf("expected the original page's surface untouched, got %d fills", startSurf.fillCalls)
	}
	successor := breakable.GetSurface(1).(*recordingSurface)
	if successor.fillCalls != 1 {
		t.Fatalf("expected successor page's surface to receive the fill, got %d", successor.fillCalls)
	}
}

func TestCircleMeasureIsSquare(t *testing.T) {
	c := &Circle{Diameter: 30}
	out := c.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 200}, FirstHeight: 400})
	if out.Size.Width != 30 || out.Size.Height != 30 {
		t.Fatalf("expected 30x30, got %+v", out.Size)
	}
}
