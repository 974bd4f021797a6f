package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// PinBelow draws its inner element flush to the bottom of a page without
// ever occupying space in its parent's layout: it always measures as
// height 0, breaks 0, and collapses vertically, so a Column gap never
// opens around it.
type PinBelow struct {
	Inner element.Element
}

func (p *PinBelow) FirstLocationUsage(element.MeasureContext) element.FirstLocationUsage {
	return element.NoneHeight
}

func (p *PinBelow) Measure(element.MeasureContext) element.MeasureOutput {
	return element.MeasureOutput{FirstLocationUsage: element.NoneHeight}
}

func (p *PinBelow) CollapseVertical(element.MeasureContext) bool { return true }

func (p *PinBelow) innerHeight(ctx element.MeasureContext, firstHeight geom.Abs) geom.Abs {
	return p.Inner.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: firstHeight, PreferredHeight: ctx.PreferredHeight,
	}).Size.Height
}

func (p *PinBelow) Draw(ctx element.DrawContext) element.DrawOutput {
	h := p.innerHeight(ctx.ToMeasureContext(), ctx.FirstHeight)

	switch {
	case h <= ctx.FirstHeight:
		loc := ctx.Location.Translate(0, ctx.FirstHeight-h)
		p.Inner.Draw(element.DrawContext{
			Surface: ctx.Surface, Width: ctx.Width, Location: loc,
			FirstHeight: h, PreferredHeight: ctx.PreferredHeight,
		})
	case ctx.Breakable != nil:
		full := ctx.Breakable.FullHeight
		h = p.innerHeight(ctx.ToMeasureContext(), full)
		loc := ctx.Breakable.GetLocation(1).Translate(0, full-h)
		surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
		p.Inner.Draw(element.DrawContext{
			Surface: surf, Width: ctx.Width, Location: loc,
			FirstHeight: h, PreferredHeight: ctx.PreferredHeight, Breakable: ctx.Breakable.WithBreakOffset(1),
		})
	default:
		// No breakable to pin against and inner doesn't fit: draw flush
		// at the current location, the best this context can offer.
		p.Inner.Draw(element.DrawContext{
			Surface: ctx.Surface, Width: ctx.Width, Location: ctx.Location,
			FirstHeight: ctx.FirstHeight, PreferredHeight: ctx.PreferredHeight,
		})
	}

	return element.DrawOutput{MeasureOutput: element.MeasureOutput{FirstLocationUsage: element.NoneHeight}, End: ctx.Location}
}
