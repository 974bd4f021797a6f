package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// ExpandToPreferredHeight pads below its inner element to reach
// ctx.PreferredHeight when inner's natural height falls short. Per
// MeasureOutput's convention that Size.Height is the height used on the
// *last* page an element occupies, this naturally pads only the final
// page of a multi-page inner, never the intermediate ones.
type ExpandToPreferredHeight struct {
	Inner element.Element
}

func (e *ExpandToPreferredHeight) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return e.Inner.FirstLocationUsage(ctx)
}

func (e *ExpandToPreferredHeight) target(ctx element.MeasureContext, height geom.Abs) geom.Abs {
	if ctx.PreferredHeight == nil || *ctx.PreferredHeight <= height {
		return height
	}
	return *ctx.PreferredHeight
}

func (e *ExpandToPreferredHeight) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := e.Inner.Measure(ctx)
	out.Size.Height = e.target(ctx, out.Size.Height)
	return out
}

func (e *ExpandToPreferredHeight) Draw(ctx element.DrawContext) element.DrawOutput {
	out := e.Inner.Draw(ctx)
	target := e.target(ctx.ToMeasureContext(), out.Size.Height)
	if target > out.Size.Height {
		out.End = out.End.Translate(0, target-out.Size.Height)
		out.Size.Height = target
	}
	return out
}
