package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// Column stacks children vertically with a fixed gap between
// non-collapsing neighbors, threading a breakable region through children
// that request one.
//
// Grounded on the teacher's layout/flow/compose.go cursor-driven child
// placement and layout/flow/distribute.go's break-index bookkeeping,
// narrowed from Typst's full flow model (footnotes, floats, insertions —
// all out of scope per spec.md's non-goals) down to the cursor/gap/break
// algorithm spec.md §4.3 describes.
type Column struct {
	Gap      geom.Abs
	Collapse bool
	Children []element.Element
}

type columnSink struct {
	surface  surface.Surface
	location geom.Location
}

func (c *Column) layout(ctx element.MeasureContext, sink *columnSink) element.DrawOutput {
	full := geom.Abs(0)
	if ctx.Breakable != nil {
		full = ctx.Breakable.FullHeight
	}

	var breaks uint32
	var pageUsed geom.Abs
	hadContent := false
	remaining := ctx.FirstHeight
	width := geom.Abs(0)
	firstUsage := element.NoneHeight
	firstUsageSet := false

	for _, child := range c.Children {
		collapseCtx := element.MeasureContext{Width: ctx.Width, FirstHeight: remaining, PreferredHeight: ctx.PreferredHeight, Breakable: ctx.Breakable}
		collapses := element.CollapsesVertical(child, collapseCtx)

		gap := geom.Abs(0)
		if hadContent && !collapses {
			gap = c.Gap
		}

		childFirstHeight := remaining - gap
		if childFirstHeight < 0 {
			childFirstHeight = 0
		}

		var childBreakable *element.Breakable
		if ctx.Breakable != nil {
			childBreakable = ctx.Breakable.WithBreakOffset(breaks)
		}

		var out element.MeasureOutput
		if sink == nil {
			out = child.Measure(element.MeasureContext{
				Width:           ctx.Width,
				FirstHeight:     childFirstHeight,
				PreferredHeight: ctx.PreferredHeight,
				Breakable:       childBreakable,
			})
		} else {
			drawOut := child.Draw(element.DrawContext{
				Surface:         sink.surface,
				Width:           ctx.Width,
				Location:        sink.location.Translate(0, gap),
				FirstHeight:     childFirstHeight,
				PreferredHeight: ctx.PreferredHeight,
				Breakable:       childBreakable,
			})
			out = drawOut.MeasureOutput
			if drawOut.End.Page != sink.location.Page && childBreakable != nil {
				sink.surface = childBreakable.GetSurface(drawOut.End.Page)
			}
			sink.location = drawOut.End
		}

		if !firstUsageSet && out.FirstLocationUsage != element.NoneHeight {
			firstUsage = out.FirstLocationUsage
			firstUsageSet = true
		}

		width = width.Max(out.Size.Width)

		if out.Breaks > 0 {
			breaks += out.Breaks
			remaining = full - out.Size.Height
			pageUsed = out.Size.Height
			hadContent = out.FirstLocationUsage != element.NoneHeight
			continue
		}

		if out.FirstLocationUsage == element.WillSkip {
			// Child reported no breaks yet claims to skip the first
			// location entirely; treat conservatively as having
			// contributed nothing on this page.
			continue
		}

		remaining -= gap + out.Size.Height
		pageUsed += gap + out.Size.Height
		if out.FirstLocationUsage != element.NoneHeight {
			hadContent = true
		}
	}

	if ctx.Width.Expand {
		width = ctx.Width.Max
	}

	end := geom.Location{}
	if sink != nil {
		end = sink.location
	}

	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{
			Size:               geom.Size{Width: width, Height: pageUsed},
			Breaks:             breaks,
			FirstLocationUsage: firstUsage,
		},
		End: end,
	}
}

func (c *Column) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return c.layout(ctx, nil).FirstLocationUsage
}

func (c *Column) Measure(ctx element.MeasureContext) element.MeasureOutput {
	return c.layout(ctx, nil).MeasureOutput
}

func (c *Column) Draw(ctx element.DrawContext) element.DrawOutput {
	sink := &columnSink{surface: ctx.Surface, location: ctx.Location}
	return c.layout(ctx.ToMeasureContext(), sink)
}

// CollapseVertical reports that the Column itself collapses when Collapse
// is set and every child collapses at ctx.
func (c *Column) CollapseVertical(ctx element.MeasureContext) bool {
	if !c.Collapse {
		return false
	}
	for _, child := range c.Children {
		if !element.CollapsesVertical(child, ctx) {
			return false
		}
	}
	return true
}
