package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// Padding insets its content by fixed margins on every side, forwarding
// page-breaking to the content (the padding itself never breaks, it just
// repeats its left/right insets on every page the content spans, and its
// top/bottom insets only apply to the first/last page respectively).
//
// Grounded on the teacher's layout/pad.go, generalized from Typst's
// paragraph-indent model to a general 4-sided inset.
type Padding struct {
	Content element.Element
	Insets  geom.Sides[geom.Abs]
}

func (p *Padding) innerWidth(ctx element.MeasureContext) geom.WidthConstraint {
	max := ctx.Width.Max - p.Insets.Left - p.Insets.Right
	if max < 0 {
		max = 0
	}
	return geom.WidthConstraint{Max: max, Expand: ctx.Width.Expand}
}

func (p *Padding) innerMeasureCtx(ctx element.MeasureContext) element.MeasureContext {
	ctx.Width = p.innerWidth(ctx)
	ctx.FirstHeight -= p.Insets.Top
	if ctx.FirstHeight < 0 {
		ctx.FirstHeight = 0
	}
	return ctx
}

func (p *Padding) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return p.Content.FirstLocationUsage(p.innerMeasureCtx(ctx))
}

func (p *Padding) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := p.Content.Measure(p.innerMeasureCtx(ctx))
	out.Size.Width += p.Insets.Left + p.Insets.Right
	if out.Breaks == 0 {
		out.Size.Height += p.Insets.Top + p.Insets.Bottom
	} else {
		out.Size.Height += p.Insets.Bottom
	}
	return out
}

func (p *Padding) Draw(ctx element.DrawContext) element.DrawOutput {
	inner := ctx
	inner.Width = p.innerWidth(ctx.ToMeasureContext())
	inner.Location = ctx.Location.Translate(p.Insets.Left, p.Insets.Top)
	inner.FirstHeight = ctx.FirstHeight - p.Insets.Top
	if inner.FirstHeight < 0 {
		inner.FirstHeight = 0
	}

	contentOut := p.Content.Draw(inner)

	end := contentOut.End
	end.X = ctx.Location.X
	end.Y += p.Insets.Bottom

	out := contentOut.MeasureOutput
	out.Size.Width += p.Insets.Left + p.Insets.Right
	if out.Breaks == 0 {
		out.Size.Height += p.Insets.Top + p.Insets.Bottom
	} else {
		out.Size.Height += p.Insets.Bottom
	}
	return element.DrawOutput{MeasureOutput: out, End: end}
}

// CollapseVertical reports that a Padding with zero top/bottom inset
// collapses exactly when its content does; any nonzero inset prevents
// collapse since the padding itself occupies space.
func (p *Padding) CollapseVertical(ctx element.MeasureContext) bool {
	if p.Insets.Top != 0 || p.Insets.Bottom != 0 {
		return false
	}
	return element.CollapsesVertical(p.Content, p.innerMeasureCtx(ctx))
}

// CollapseHorizontal mirrors CollapseVertical for the horizontal axis.
func (p *Padding) CollapseHorizontal() bool {
	if p.Insets.Left != 0 || p.Insets.Right != 0 {
		return false
	}
	c, ok := p.Content.(element.HorizontalCollapser)
	return ok && c.CollapseHorizontal()
}

// HAlign aligns its content within the available width without changing
// the content's own measured size: the content is measured unconstrained
// (expand=false) and then offset horizontally.
//
// Grounded on the teacher's layout/stack.go alignment offset computation.
type HAlign struct {
	Content element.Element
	Align   geom.HAlign
}

func (h *HAlign) innerCtx(ctx element.MeasureContext) element.MeasureContext {
	ctx.Width = geom.WidthConstraint{Max: ctx.Width.Max, Expand: false}
	return ctx
}

func (h *HAlign) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return h.Content.FirstLocationUsage(h.innerCtx(ctx))
}

func (h *HAlign) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := h.Content.Measure(h.innerCtx(ctx))
	if ctx.Width.Expand {
		out.Size.Width = ctx.Width.Max
	}
	return out
}

func (h *HAlign) offset(width, contentWidth geom.Abs) geom.Abs {
	switch h.Align {
	case geom.HAlignCenter:
		return (width - contentWidth) / 2
	case geom.HAlignEnd:
		return width - contentWidth
	default:
		return 0
	}
}

func (h *HAlign) Draw(ctx element.DrawContext) element.DrawOutput {
	innerMeasure := h.innerCtx(ctx.ToMeasureContext())
	contentSize := h.Content.Measure(innerMeasure).Size

	dx := h.offset(ctx.Width.Max, contentSize.Width)
	if dx < 0 {
		dx = 0
	}

	inner := ctx
	inner.Width = innerMeasure.Width
	inner.Location = ctx.Location.Translate(dx, 0)

	contentOut := h.Content.Draw(inner)
	out := contentOut.MeasureOutput
	if ctx.Width.Expand {
		out.Size.Width = ctx.Width.Max
	}

	end := contentOut.End
	end.X = ctx.Location.X
	return element.DrawOutput{MeasureOutput: out, End: end}
}

func (h *HAlign) CollapseHorizontal() bool {
	c, ok := h.Content.(element.HorizontalCollapser)
	return ok && c.CollapseHorizontal()
}

func (h *HAlign) CollapseVertical(ctx element.MeasureContext) bool {
	return element.CollapsesVertical(h.Content, h.innerCtx(ctx))
}
