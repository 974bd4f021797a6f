package elements

import "github.com/boergens/pdflayout/element"

// BreakWhole keeps its inner element from splitting across a page boundary
// when a fresh page would let it render whole: it measures inner against a
// full fresh page, and if that whole-page measurement both fits (no
// further breaks) and is taller than what the current location still
// offers, it inserts a break before drawing inner; otherwise it draws
// inner right where it stands.
type BreakWhole struct {
	Inner element.Element
}

func (b *BreakWhole) shouldBreak(ctx element.MeasureContext) bool {
	if ctx.Breakable == nil {
		return false
	}
	out := b.Inner.Measure(element.MeasureContext{
		Width:           ctx.Width,
		FirstHeight:     ctx.Breakable.FullHeight,
		PreferredHeight: ctx.PreferredHeight,
		Breakable:       ctx.Breakable,
	})
	return out.Breaks == 0 && out.Size.Height > ctx.FirstHeight
}

func (b *BreakWhole) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if b.shouldBreak(ctx) {
		return element.WillSkip
	}
	return b.Inner.FirstLocationUsage(ctx)
}

func (b *BreakWhole) Measure(ctx element.MeasureContext) element.MeasureOutput {
	if !b.shouldBreak(ctx) {
		return b.Inner.Measure(ctx)
	}
	childBreakable := ctx.Breakable.WithBreakOffset(1)
	out := b.Inner.Measure(element.MeasureContext{
		Width:           ctx.Width,
		FirstHeight:     ctx.Breakable.FullHeight,
		PreferredHeight: ctx.PreferredHeight,
		Breakable:       childBreakable,
	})
	out.Breaks++
	out.FirstLocationUsage = element.WillSkip
	return out
}

func (b *BreakWhole) Draw(ctx element.DrawContext) element.DrawOutput {
	if !b.shouldBreak(ctx.ToMeasureContext()) {
		return b.Inner.Draw(ctx)
	}
	loc := ctx.Breakable.GetLocation(1)
	childBreakable := ctx.Breakable.WithBreakOffset(1)
	out := b.Inner.Draw(element.DrawContext{
		Surface:         element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc),
		Width:           ctx.Width,
		Location:        loc,
		FirstHeight:     ctx.Breakable.FullHeight,
		PreferredHeight: ctx.PreferredHeight,
		Breakable:       childBreakable,
	})
	out.Breaks++
	out.FirstLocationUsage = element.WillSkip
	return out
}
