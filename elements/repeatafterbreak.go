package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// RepeatAfterBreak draws header once, then content; whenever content
// breaks to a successor page, header is redrawn at the top of that page
// before content resumes, and content's first_height on those pages is
// reduced by header's height. Header itself is assumed not to break —
// a header that needs a full page of its own belongs in its own Titled
// or Page wrapper, not here.
//
// Grounded on the teacher's layout/pages/run.go running-header placement
// (Typst calls these "running elements"), narrowed to a single
// caller-supplied header rather than the teacher's marker-matched running
// headers/footers system.
type RepeatAfterBreak struct {
	Header  element.Element
	Content element.Element
}

// repeatPageSource wraps a breakable's page source so that every successor
// page it vends has header already rendered (in draw mode) at its top and
// its location translated below header's height. draw controls whether
// GetPage actually paints header or only reserves the space, and rendered
// guards against drawing the same page's header twice, which GetPage's
// idempotence contract requires.
type repeatPageSource struct {
	inner        element.PageSource
	header       element.Element
	headerHeight geom.Abs
	width        geom.WidthConstraint
	draw         bool
	rendered     map[uint32]bool
}

func (s *repeatPageSource) GetPage(n uint32) geom.Location {
	top := s.inner.GetPage(n)
	if s.draw && !s.rendered[n] {
		s.rendered[n] = true
		s.header.Draw(element.DrawContext{
			Surface:     s.inner.PageSurface(top.Page),
			Width:       s.width,
			Location:    top,
			FirstHeight: s.headerHeight,
		})
	}
	return top.Translate(0, s.headerHeight)
}

func (s *repeatPageSource) PageSurface(page geom.PageID) surface.Surface {
	return s.inner.PageSurface(page)
}

func (r *RepeatAfterBreak) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return r.Header.FirstLocationUsage(ctx)
}

func (r *RepeatAfterBreak) contentBreakable(ctx element.MeasureContext, headerBreaks uint32, drawHeader bool) (*element.Breakable, geom.Abs) {
	if ctx.Breakable == nil {
		return nil, 0
	}
	base := ctx.Breakable.WithBreakOffset(headerBreaks)
	headerHeight := r.Header.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: base.FullHeight, Breakable: nil,
	}).Size.Height
	src := &repeatPageSource{
		inner: base.Source, header: r.Header, headerHeight: headerHeight,
		width: ctx.Width, draw: drawHeader, rendered: map[uint32]bool{},
	}
	return &element.Breakable{
		FullHeight:                base.FullHeight - headerHeight,
		PreferredHeightBreakCount: base.PreferredHeightBreakCount,
		Source:                    src,
	}, headerHeight
}

func (r *RepeatAfterBreak) Measure(ctx element.MeasureContext) element.MeasureOutput {
	headerOut := r.Header.Measure(ctx)
	cb, _ := r.contentBreakable(ctx, headerOut.Breaks, false)
	contentFirstHeight := ctx.FirstHeight - headerOut.Size.Height
	if contentFirstHeight < 0 {
		contentFirstHeight = 0
	}
	contentOut := r.Content.Measure(element.MeasureContext{
		Width: ctx.Width, FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: cb,
	})
	return element.MeasureOutput{
		Size:               geom.Size{Width: headerOut.Size.Width.Max(contentOut.Size.Width), Height: contentOut.Size.Height},
		Breaks:             headerOut.Breaks + contentOut.Breaks,
		FirstLocationUsage: headerOut.FirstLocationUsage,
	}
}

func (r *RepeatAfterBreak) Draw(ctx element.DrawContext) element.DrawOutput {
	headerOut := r.Header.Draw(element.DrawContext{
		Surface: ctx.Surface, Width: ctx.Width, Location: ctx.Location,
		FirstHeight: ctx.FirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: ctx.Breakable,
	})
	cb, _ := r.contentBreakable(ctx.ToMeasureContext(), headerOut.Breaks, true)
	contentFirstHeight := ctx.FirstHeight - headerOut.Size.Height
	if contentFirstHeight < 0 {
		contentFirstHeight = 0
	}
	contentSurf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, headerOut.End)
	contentOut := r.Content.Draw(element.DrawContext{
		Surface: contentSurf, Width: ctx.Width, Location: headerOut.End,
		FirstHeight: contentFirstHeight, PreferredHeight: ctx.PreferredHeight, Breakable: cb,
	})
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{
			Size:               geom.Size{Width: headerOut.Size.Width.Max(contentOut.Size.Width), Height: contentOut.Size.Height},
			Breaks:             headerOut.Breaks + contentOut.Breaks,
			FirstLocationUsage: headerOut.FirstLocationUsage,
		},
		End: contentOut.End,
	}
}
