package elements

import (
	"testing"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

func TestPaddingAddsInsetsToMeasuredSize(t *testing.T) {
	p := &Padding{
		Content: &Rectangle{Size: geom.Size{Width: 50, Height: 20}},
		Insets:  geom.Sides[geom.Abs]{Left: 5, Top: 10, Right: 5, Bottom: 10},
	}
	out := p.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400})
	if out.Size.Width != 60 {
		t.Fatalf("expected width 60 (50 + 5 + 5), got %v", out.Size.Width)
	}
	if out.Size.Height != 40 {
		t.Fatalf("expected height 40 (20 + 10 + 10), got %v", out.Size.Height)
	}
}

func TestPaddingShrinksInnerWidthBudget(t *testing.T) {
	var gotMax geom.Abs
	probe := probeElement{fn: func(ctx element.MeasureContext) element.MeasureOutput {
		gotMax = ctx.Width.Max
		return element.MeasureOutput{Size: geom.Size{Width: ctx.Width.Max, Height: 10}, FirstLocationUsage: element.WillUse}
	}}
	p := &Padding{Content: probe, Insets: geom.Sides[geom.Abs]{Left: 10, Right: 20}}
	p.Measure(element.MeasureContext{Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400})
	if gotMax != 70 {
		t.Fatalf("expected inner width budget 70 (100 - 10 - 20), got %v", gotMax)
	}
}

func TestHAlignDrawResetsEndXToOwnOrigin(t *testing.T) {
	h := &HAlign{Content: &Rectangle{Size: geom.Size{Width: 40, Height: 10}, Fill: black()}, Align: geom.HAlignCenter}
	surf := &recordingSurface{}
	out := h.Draw(element.DrawContext{
		Surface: surf, Width: geom.WidthConstraint{Max: 100}, FirstHeight: 400,
	})
	if out.End.X != 0 {
		t.Fatalf("expected End.X reset to the HAlign's own origin, got %v", out.End.X)
	}
	if surf.fillCalls != 1 {
		t.Fatalf("expected the content drawn once, got %d", surf.fillCalls)
	}
}

// probeElement is a minimal Element whose Measure/Draw delegate to fn, for
// asserting exactly what context a wrapper element passes down.
type probeElement struct {
	fn func(element.MeasureContext) element.MeasureOutput
}

func (p probeElement) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return p.fn(ctx).FirstLocationUsage
}
func (p probeElement) Measure(ctx element.MeasureContext) element.MeasureOutput { return p.fn(ctx) }
func (p probeElement) Draw(ctx element.DrawContext) element.DrawOutput {
	return element.DrawOutput{MeasureOutput: p.fn(ctx.ToMeasureContext()), End: ctx.Location}
}
