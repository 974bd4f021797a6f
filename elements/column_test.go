package elements

import (
	"testing"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

func TestColumnGapOmittedBeforeFirstChild(t *testing.T) {
	col := &Column{
		Gap: 10,
		Children: []element.Element{
			&Rectangle{Size: geom.Size{Width: 50, Height: 20}, Fill: black()},
			&Rectangle{Size: geom.Size{Width: 50, Height: 20}, Fill: black()},
		},
	}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400}
	out := col.Measure(ctx)

	want := geom.Abs(20 + 10 + 20)
	if out.Size.Height != want {
		t.Fatalf("expected height %v (two rects plus one gap), got %v", want, out.Size.Height)
	}
}

func TestColumnMeasureDrawAgree(t *testing.T) {
	col := &Column{
		Gap: 5,
		Children: []element.Element{
			&Rectangle{Size: geom.Size{Width: 40, Height: 30}},
			&Rectangle{Size: geom.Size{Width: 60, Height: 25}},
		},
	}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400}
	measured := col.Measure(ctx)

	surf := &recordingSurface{}
	drawn := col.Draw(element.DrawContext{Surface: surf, Width: ctx.Width, FirstHeight: ctx.FirstHeight})

	if measured.Size != drawn.Size {
		t.Fatalf("measure/draw size mismatch: %+v vs %+v", measured.Size, drawn.Size)
	}
}

func TestColumnWidthIsChildMax(t *testing.T) {
	col := &Column{
		Children: []element.Element{
			&Rectangle{Size: geom.Size{Width: 40, Height: 10}},
			&Rectangle{Size: geom.Size{Width: 90, Height: 10}},
		},
	}
	out := col.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 200}, FirstHeight: 400})
	if out.Size.Width != 90 {
		t.Fatalf("expected column width 90 (the widest child), got %v", out.Size.Width)
	}
}

func TestColumnSpillsToSuccessorPage(t *testing.T) {
	col := &Column{
		Gap: 0,
		Children: []element.Element{
			&Rectangle{Size: geom.Size{Width: 10, Height: 90}, Fill: black()},
			&Rectangle{Size: geom.Size{Width: 10, Height: 90}, Fill: black()},
		},
	}
	breakable := newBreakable(100)
	startSurf := &recordingSurface{}
	drawn := col.Draw(element.DrawContext{
		Surface: startSurf, Width: geom.WidthConstraint{Max: 100}, FirstHeight: 100, Breakable: breakable,
	})

	if drawn.Breaks != 1 {
		t.Fatalf("expected one break across the two rectangles, got %d", drawn.Breaks)
	}
	if drawn.End.Page != 1 {
		t.Fatalf("expected column to end on page 1, got %d", drawn.End.Page)
	}
	if startSurf.fillCalls != 1 {
		t.Fatalf("expected exactly one rectangle drawn on the first page, got %d", startSurf.fillCalls)
	}
	successor := breakable.GetSurface(1).(*recordingSurface)
	if successor.fillCalls != 1 {
		t.Fatalf("expected exactly one rectangle drawn on the successor page, got %d", successor.fillCalls)
	}
}

// collapsingSpacer collapses vertically unconditionally, used to exercise
// Column's gap-elision rule around a collapsing neighbor.
type collapsingSpacer struct{ height geom.Abs }

func (c collapsingSpacer) FirstLocationUsage(element.MeasureContext) element.FirstLocationUsage {
	return element.WillUse
}
func (c collapsingSpacer) Measure(element.MeasureContext) element.MeasureOutput {
	return element.MeasureOutput{Size: geom.Size{Height: c.height}, FirstLocationUsage: element.WillUse}
}
func (c collapsingSpacer) Draw(ctx element.DrawContext) element.DrawOutput {
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{Size: geom.Size{Height: c.height}, FirstLocationUsage: element.WillUse},
		End:           ctx.Location.Translate(0, c.height),
	}
}
func (c collapsingSpacer) CollapseVertical(element.MeasureContext) bool { return true }

func TestColumnElidesGapAroundCollapsingChild(t *testing.T) {
	col := &Column{
		Gap: 10,
		Children: []element.Element{
			&Rectangle{Size: geom.Size{Width: 10, Height: 20}},
			collapsingSpacer{height: 0},
			&Rectangle{Size: geom.Size{Width: 10, Height: 20}},
		},
	}
	out := col.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400})
	// Only one gap should be charged: the collapsing spacer elides the gap
	// on its own boundary, leaving just the gap between the two rectangles.
	want := geom.Abs(20 + 10 + 0 + 20)
	if out.Size.Height != want {
		t.Fatalf("expected height %v, got %v", want, out.Size.Height)
	}
}
