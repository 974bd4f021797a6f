package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// unconstrainedWidth stands in for "no limit" when measuring an element's
// natural width; large enough that no realistic page content reaches it.
const unconstrainedWidth geom.Abs = 1 << 20

// ShrinkToFit measures its inner element at its natural width and, if that
// exceeds the available width, applies a uniform scale via the surface's
// transform stack so inner still fits. It does not itself break pages:
// a scaled region spanning a page boundary would need the transform
// re-applied per page, which this element's single caller-visible use
// (logos, diagrams sized to a column) never needs.
type ShrinkToFit struct {
	Inner element.Element
}

func (s *ShrinkToFit) plan(ctx element.MeasureContext) (scale float64, naturalWidth, naturalHeight, reportedWidth geom.Abs) {
	nat := s.Inner.Measure(element.MeasureContext{
		Width: geom.WidthConstraint{Max: unconstrainedWidth, Expand: false}, FirstHeight: unconstrainedWidth,
	})
	naturalWidth = nat.Size.Width
	naturalHeight = nat.Size.Height
	scale = 1.0
	reportedWidth = naturalWidth
	if ctx.Width.Max > 0 && naturalWidth > ctx.Width.Max {
		scale = float64(ctx.Width.Max / naturalWidth)
		reportedWidth = ctx.Width.Max
	}
	return
}

func (s *ShrinkToFit) scaledSize(ctx element.MeasureContext) (geom.Size, float64, geom.Abs) {
	scale, w0, h0, w := s.plan(ctx)
	return geom.Size{Width: w, Height: geom.Abs(float64(h0) * scale)}, scale, w0
}

func (s *ShrinkToFit) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	size, _, _ := s.scaledSize(ctx)
	if size.Height > ctx.FirstHeight {
		return element.WillSkip
	}
	return element.WillUse
}

func (s *ShrinkToFit) Measure(ctx element.MeasureContext) element.MeasureOutput {
	size, _, _ := s.scaledSize(ctx)
	usage := element.WillUse
	breaks := uint32(0)
	if size.Height > ctx.FirstHeight {
		usage = element.WillSkip
		if ctx.Breakable != nil {
			breaks = 1
		}
	}
	return element.MeasureOutput{Size: size, Breaks: breaks, FirstLocationUsage: usage}
}

func (s *ShrinkToFit) Draw(ctx element.DrawContext) element.DrawOutput {
	size, scale, w0 := s.scaledSize(ctx.ToMeasureContext())

	loc := ctx.Location
	usage := element.WillUse
	breaks := uint32(0)
	if size.Height > ctx.FirstHeight {
		usage = element.WillSkip
		if ctx.Breakable != nil {
			loc = ctx.Breakable.GetLocation(1)
			breaks = 1
		}
	}

	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	surf.PushTransform(geom.Point{X: loc.X, Y: loc.Y}, scale)
	s.Inner.Draw(element.DrawContext{
		Surface: surf, Width: geom.WidthConstraint{Max: w0, Expand: false},
		Location: geom.Location{Page: loc.Page}, FirstHeight: size.Height / geom.Abs(scale),
	})
	surf.PopTransform()

	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{Size: size, Breaks: breaks, FirstLocationUsage: usage},
		End:           loc.Translate(0, size.Height),
	}
}
