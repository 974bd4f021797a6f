package elements

import (
	"testing"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

func TestRowSelfSizedKeepsNaturalWidth(t *testing.T) {
	row := &Row{
		Gap: 10,
		Children: []RowChild{
			{Element: &Rectangle{Size: geom.Size{Width: 30, Height: 20}}},
			{Element: &Rectangle{Size: geom.Size{Width: 40, Height: 20}}},
		},
	}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 200}, FirstHeight: 400}
	placements := row.plan(ctx)

	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	if placements[0].width != 30 || placements[1].width != 40 {
		t.Fatalf("expected natural widths 30/40, got %v/%v", placements[0].width, placements[1].width)
	}
	if placements[1].x != 40 { // 30 + gap(10)
		t.Fatalf("expected second child x=40, got %v", placements[1].x)
	}
}

func TestRowFlexChildrenSplitRemainder(t *testing.T) {
	row := &Row{
		Gap: 0,
		Children: []RowChild{
			{Element: &Rectangle{Size: geom.Size{Width: 20, Height: 10}}},
			{Element: &Rectangle{Size: geom.Size{Width: 0, Height: 10}}, Flex: true},
			{Element: &Rectangle{Size: geom.Size{Width: 0, Height: 10}}, Flex: true},
		},
	}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400}
	placements := row.plan(ctx)

	remaining := geom.Abs(100 - 20)
	want := remaining / 2
	if placements[1].width != want || placements[2].width != want {
		t.Fatalf("expected flex children to split %v evenly, got %v/%v", remaining, placements[1].width, placements[2].width)
	}
}

func TestRowConservesWidthAcrossMeasureAndDraw(t *testing.T) {
	row := &Row{
		Gap: 5,
		Children: []RowChild{
			{Element: &Rectangle{Size: geom.Size{Width: 30, Height: 15}}, Flex: true},
			{Element: &Rectangle{Size: geom.Size{Width: 30, Height: 15}}},
		},
	}
	ctx := element.MeasureContext{Width: geom.WidthConstraint{Max: 150, Expand: true}, FirstHeight: 400}
	measured := row.Measure(ctx)

	surf := &recordingSurface{}
	drawn := row.Draw(element.DrawContext{Surface: surf, Width: ctx.Width, FirstHeight: ctx.FirstHeight})

	if measured.Size.Width != drawn.Size.Width {
		t.Fatalf("measure/draw width mismatch: %v vs %v", measured.Size.Width, drawn.Size.Width)
	}
	if measured.Size.Width != 150 {
		t.Fatalf("expected expanded row width 150, got %v", measured.Size.Width)
	}
}

func TestRowEmptyIsZeroSize(t *testing.T) {
	row := &Row{}
	out := row.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400})
	if !out.Size.IsZero() {
		t.Fatalf("expected zero size for an empty row, got %+v", out.Size)
	}
	if out.FirstLocationUsage != element.NoneHeight {
		t.Fatalf("expected NoneHeight for an empty row, got %v", out.FirstLocationUsage)
	}
}
