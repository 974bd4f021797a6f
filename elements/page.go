package elements

import "github.com/boergens/pdflayout/element"

// Page forces its inner element to begin at the top of a fresh page.
// Outside a breakable region there is no fresh page to force, so it
// degrades to drawing inner in place, the same infallibility posture
// ForceBreak takes.
type Page struct {
	Inner element.Element
}

func (p *Page) FirstLocationUsage(element.MeasureContext) element.FirstLocationUsage {
	return element.WillSkip
}

func (p *Page) Measure(ctx element.MeasureContext) element.MeasureOutput {
	firstHeight := ctx.FirstHeight
	breakable := ctx.Breakable
	var added uint32
	if ctx.Breakable != nil {
		firstHeight = ctx.Breakable.FullHeight
		breakable = ctx.Breakable.WithBreakOffset(1)
		added = 1
	}
	out := p.Inner.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: firstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: breakable,
	})
	out.Breaks += added
	out.FirstLocationUsage = element.WillSkip
	return out
}

func (p *Page) Draw(ctx element.DrawContext) element.DrawOutput {
	loc := ctx.Location
	firstHeight := ctx.FirstHeight
	breakable := ctx.Breakable
	var added uint32
	if ctx.Breakable != nil {
		loc = ctx.Breakable.GetLocation(1)
		firstHeight = ctx.Breakable.FullHeight
		breakable = ctx.Breakable.WithBreakOffset(1)
		added = 1
	}
	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	out := p.Inner.Draw(element.DrawContext{
		Surface: surf, Width: ctx.Width, Location: loc, FirstHeight: firstHeight,
		PreferredHeight: ctx.PreferredHeight, Breakable: breakable,
	})
	out.Breaks += added
	out.FirstLocationUsage = element.WillSkip
	return out
}
