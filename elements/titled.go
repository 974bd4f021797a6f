package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// Titled draws a title immediately followed by content, deferring both to
// a fresh page when content would otherwise be stranded away from its
// title (content reports WillSkip for the space left after the title).
//
// Grounded on the teacher's layout/flow/block.go heading-keep-with-next
// logic, generalized from Typst's specific heading/paragraph pair to an
// arbitrary title/content pair of elements.
type Titled struct {
	Title           element.Element
	Content         element.Element
	CollapseOnEmpty bool
}

func (t *Titled) contentStranded(ctx element.MeasureContext) bool {
	if ctx.Breakable == nil {
		return false
	}
	titleOut := t.Title.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: ctx.FirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: ctx.Breakable,
	})
	remaining := ctx.FirstHeight - titleOut.Size.Height
	if remaining < 0 {
		remaining = 0
	}
	contentBreakable := ctx.Breakable.WithBreakOffset(titleOut.Breaks)
	usage := t.Content.FirstLocationUsage(element.MeasureContext{
		Width: ctx.Width, FirstHeight: remaining, PreferredHeight: ctx.PreferredHeight, Breakable: contentBreakable,
	})
	return usage == element.WillSkip
}

type titledSink struct{ surface surface.Surface }

func (t *Titled) layout(ctx element.MeasureContext, loc geom.Location, sink *titledSink) element.DrawOutput {
	firstHeight := ctx.FirstHeight
	breakable := ctx.Breakable
	deferred := uint32(0)

	if t.contentStranded(ctx) {
		loc = ctx.Breakable.GetLocation(1)
		firstHeight = ctx.Breakable.FullHeight
		breakable = ctx.Breakable.WithBreakOffset(1)
		deferred = 1
		if sink != nil {
			sink.surface = element.SurfaceFor(sink.surface, ctx.Location.Page, ctx.Breakable, loc)
		}
	}

	var titleOut element.DrawOutput
	if sink == nil {
		titleOut = element.DrawOutput{MeasureOutput: t.Title.Measure(element.MeasureContext{
			Width: ctx.Width, FirstHeight: firstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: breakable,
		})}
	} else {
		titleOut = t.Title.Draw(element.DrawContext{
			Surface: sink.surface, Width: ctx.Width, Location: loc,
			FirstHeight: firstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: breakable,
		})
	}

	var contentBreakable *element.Breakable
	if breakable != nil {
		contentBreakable = breakable.WithBreakOffset(titleOut.Breaks)
	}
	var contentFirstHeight geom.Abs
	if titleOut.Breaks > 0 {
		full := geom.Abs(0)
		if breakable != nil {
			full = breakable.FullHeight
		}
		contentFirstHeight = full - titleOut.Size.Height
	} else {
		contentFirstHeight = firstHeight - titleOut.Size.Height
	}
	if contentFirstHeight < 0 {
		contentFirstHeight = 0
	}

	var contentOut element.DrawOutput
	if sink == nil {
		contentOut = element.DrawOutput{MeasureOutput: t.Content.Measure(element.MeasureContext{
			Width: ctx.Width, FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: contentBreakable,
		})}
	} else {
		contentSurf := element.SurfaceFor(sink.surface, titleOut.End.Page, breakable, titleOut.End)
		contentOut = t.Content.Draw(element.DrawContext{
			Surface: contentSurf, Width: ctx.Width, Location: titleOut.End,
			FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: contentBreakable,
		})
	}

	usage := titleOut.FirstLocationUsage
	if deferred > 0 {
		usage = element.WillSkip
	}

	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{
			Size:               geom.Size{Width: titleOut.Size.Width.Max(contentOut.Size.Width), Height: contentOut.Size.Height},
			Breaks:             deferred + titleOut.Breaks + contentOut.Breaks,
			FirstLocationUsage: usage,
		},
		End: contentOut.End,
	}
}

func (t *Titled) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if t.contentStranded(ctx) {
		return element.WillSkip
	}
	return t.Title.FirstLocationUsage(ctx)
}

func (t *Titled) Measure(ctx element.MeasureContext) element.MeasureOutput {
	return t.layout(ctx, geom.Location{}, nil).MeasureOutput
}

func (t *Titled) Draw(ctx element.DrawContext) element.DrawOutput {
	return t.layout(ctx.ToMeasureContext(), ctx.Location, &titledSink{surface: ctx.Surface})
}

// ChangingTitle is RepeatAfterBreak generalized to a header that depends on
// whether it is being drawn on the element's first page or a continuation
// page, e.g. "Section 2" once and "Section 2 (cont.)" on every page after
// a break. It shares RepeatAfterBreak's repeatPageSource machinery but
// resolves a different header element for page 0 versus every successor.
type ChangingTitle struct {
	TitleFor func(continuation bool) element.Element
	Content  element.Element
}

func (c *ChangingTitle) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return c.TitleFor(false).FirstLocationUsage(ctx)
}

func (c *ChangingTitle) Measure(ctx element.MeasureContext) element.MeasureOutput {
	first := RepeatAfterBreak{Header: c.TitleFor(false), Content: c.Content}
	if ctx.Breakable == nil {
		return first.Measure(ctx)
	}
	titleOut := c.TitleFor(false).Measure(ctx)
	cont := RepeatAfterBreak{Header: c.TitleFor(true), Content: c.Content}
	cb, _ := cont.contentBreakable(ctx, titleOut.Breaks, false)
	contentFirstHeight := ctx.FirstHeight - titleOut.Size.Height
	if contentFirstHeight < 0 {
		contentFirstHeight = 0
	}
	contentOut := c.Content.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: cb,
	})
	return element.MeasureOutput{
		Size:               geom.Size{Width: titleOut.Size.Width.Max(contentOut.Size.Width), Height: contentOut.Size.Height},
		Breaks:             titleOut.Breaks + contentOut.Breaks,
		FirstLocationUsage: titleOut.FirstLocationUsage,
	}
}

func (c *ChangingTitle) Draw(ctx element.DrawContext) element.DrawOutput {
	if ctx.Breakable == nil {
		return (&RepeatAfterBreak{Header: c.TitleFor(false), Content: c.Content}).Draw(ctx)
	}
	titleOut := c.TitleFor(false).Draw(element.DrawContext{
		Surface: ctx.Surface, Width: ctx.Width, Location: ctx.Location,
		FirstHeight: ctx.FirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: ctx.Breakable,
	})
	cont := RepeatAfterBreak{Header: c.TitleFor(true), Content: c.Content}
	cb, _ := cont.contentBreakable(ctx.ToMeasureContext(), titleOut.Breaks, true)
	contentFirstHeight := ctx.FirstHeight - titleOut.Size.Height
	if contentFirstHeight < 0 {
		contentFirstHeight = 0
	}
	contentSurf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, titleOut.End)
	contentOut := c.Content.Draw(element.DrawContext{
		Surface: contentSurf, Width: ctx.Width, Location: titleOut.End,
		FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: cb,
	})
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{
			Size:               geom.Size{Width: titleOut.Size.Width.Max(contentOut.Size.Width), Height: contentOut.Size.Height},
			Breaks:             titleOut.Breaks + contentOut.Breaks,
			FirstLocationUsage: titleOut.FirstLocationUsage,
		},
		End: contentOut.End,
	}
}
