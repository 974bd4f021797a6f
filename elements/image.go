package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// Image places a decoded raster image, scaled to fit within the width
// constraint while preserving its aspect ratio. Decoding itself is the
// embedder's concern (spec.md's "raster decoding internals" collaborator);
// this element only consumes the resulting surface.Image handle.
//
// Grounded on the teacher's layout/image.go sizing logic.
type Image struct {
	Source surface.Image
}

func (img *Image) size(width geom.WidthConstraint) geom.Size {
	nat := img.Source.NaturalSize()
	if nat.Width <= 0 || nat.Height <= 0 {
		return geom.Size{}
	}
	w := nat.Width
	if width.Max > 0 && w > width.Max {
		w = width.Max
	}
	if width.Expand && width.Max > 0 {
		w = width.Max
	}
	h := nat.Height * (w / nat.Width)
	return geom.Size{Width: w, Height: h}
}

func (img *Image) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if img.size(ctx.Width).Height > ctx.FirstHeight {
		return element.WillSkip
	}
	return element.WillUse
}

func (img *Image) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := element.MeasureOutput{Size: img.size(ctx.Width), FirstLocationUsage: img.FirstLocationUsage(ctx)}
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		out.Breaks = 1
	}
	return out
}

func (img *Image) Draw(ctx element.DrawContext) element.DrawOutput {
	out := img.Measure(ctx.ToMeasureContext())
	loc := ctx.Location
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		loc = ctx.Breakable.GetLocation(1)
		out.Breaks = 1
	}
	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	surf.PlaceImage(geom.Point{X: loc.X, Y: loc.Y}, out.Size, img.Source)
	return element.DrawOutput{MeasureOutput: out, End: loc.Translate(0, out.Size.Height)}
}

// SVG places a decoded SVG fragment the same way Image places a raster
// image; the fragment is the embedder's concern (package svgdecode is one
// concrete source of surface.SVGFragment values).
type SVG struct {
	Source surface.SVGFragment
}

func (s *SVG) size(width geom.WidthConstraint) geom.Size {
	nat := s.Source.NaturalSize()
	if nat.Width <= 0 || nat.Height <= 0 {
		return geom.Size{}
	}
	w := nat.Width
	if width.Max > 0 && w > width.Max {
		w = width.Max
	}
	if width.Expand && width.Max > 0 {
		w = width.Max
	}
	h := nat.Height * (w / nat.Width)
	return geom.Size{Width: w, Height: h}
}

func (s *SVG) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if s.size(ctx.Width).Height > ctx.FirstHeight {
		return element.WillSkip
	}
	return element.WillUse
}

func (s *SVG) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := element.MeasureOutput{Size: s.size(ctx.Width), FirstLocationUsage: s.FirstLocationUsage(ctx)}
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		out.Breaks = 1
	}
	return out
}

func (s *SVG) Draw(ctx element.DrawContext) element.DrawOutput {
	out := s.Measure(ctx.ToMeasureContext())
	loc := ctx.Location
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		loc = ctx.Breakable.GetLocation(1)
		out.Breaks = 1
	}
	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	surf.PlaceSVG(geom.Point{X: loc.X, Y: loc.Y}, out.Size, s.Source)
	return element.DrawOutput{MeasureOutput: out, End: loc.Translate(0, out.Size.Height)}
}
