package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// Rectangle fills and/or strokes an axis-aligned box of a fixed size,
// never collapsing and never breaking.
//
// Grounded on the teacher's layout/shapes.go rectangle path construction,
// narrowed to the single axis-aligned case (the teacher also supports
// arbitrary polygons, out of scope per spec.md §4's primitive-element set).
type Rectangle struct {
	Size   geom.Size
	Fill   *surface.Color
	Stroke *surface.Stroke
}

func (r *Rectangle) path() surface.Path {
	w, h := r.Size.Width, r.Size.Height
	return surface.Path{
		Start: geom.Point{},
		Segments: []surface.PathSegment{
			{To: geom.Point{X: w, Y: 0}},
			{To: geom.Point{X: w, Y: h}},
			{To: geom.Point{X: 0, Y: h}},
		},
		Closed: true,
	}
}

func (r *Rectangle) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if r.Size.Height > ctx.FirstHeight {
		return element.WillSkip
	}
	return element.WillUse
}

func (r *Rectangle) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out := element.MeasureOutput{Size: r.Size, FirstLocationUsage: r.FirstLocationUsage(ctx)}
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		out.Breaks = 1
	}
	return out
}

func (r *Rectangle) Draw(ctx element.DrawContext) element.DrawOutput {
	out := r.Measure(ctx.ToMeasureContext())
	loc := ctx.Location
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		loc = ctx.Breakable.GetLocation(1)
		out.Breaks = 1
	}
	path := r.path()
	path.Start = path.Start.Add(geom.Point{X: loc.X, Y: loc.Y})
	for i := range path.Segments {
		path.Segments[i].To = path.Segments[i].To.Add(geom.Point{X: loc.X, Y: loc.Y})
	}
	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	if r.Fill != nil {
		surf.FillPath(path, *r.Fill)
	}
	if r.Stroke != nil {
		surf.StrokePath(path, *r.Stroke)
	}
	return element.DrawOutput{MeasureOutput: out, End: loc.Translate(0, r.Size.Height)}
}

// Circle fills and/or strokes a circle of the given diameter, approximated
// by four cubic Bezier arcs (the standard magic-number kappa construction).
//
// Grounded on the teacher's layout/shapes.go ellipse/circle path builder.
type Circle struct {
	Diameter geom.Abs
	Fill     *surface.Color
	Stroke   *surface.Stroke
}

const circleKappa = 0.5522847498307936

func (c *Circle) path(center geom.Point) surface.Path {
	r := c.Diameter / 2
	k := geom.Abs(circleKappa) * r
	pt := func(x, y geom.Abs) geom.Point { return geom.Point{X: center.X + x, Y: center.Y + y} }
	return surface.Path{
		Start: pt(0, -r),
		Segments: []surface.PathSegment{
			{Cubic: true, To: pt(r, 0), Ctrl1: pt(k, -r), Ctrl2: pt(r, -k)},
			{Cubic: true, To: pt(0, r), Ctrl1: pt(r, k), Ctrl2: pt(k, r)},
			{Cubic: true, To: pt(-r, 0), Ctrl1: pt(-k, r), Ctrl2: pt(-r, k)},
			{Cubic: true, To: pt(0, -r), Ctrl1: pt(-r, -k), Ctrl2: pt(-k, -r)},
		},
		Closed: true,
	}
}

func (c *Circle) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if c.Diameter > ctx.FirstHeight {
		return element.WillSkip
	}
	return element.WillUse
}

func (c *Circle) Measure(ctx element.MeasureContext) element.MeasureOutput {
	size := geom.Size{Width: c.Diameter, Height: c.Diameter}
	out := element.MeasureOutput{Size: size, FirstLocationUsage: c.FirstLocationUsage(ctx)}
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		out.Breaks = 1
	}
	return out
}

func (c *Circle) Draw(ctx element.DrawContext) element.DrawOutput {
	out := c.Measure(ctx.ToMeasureContext())
	loc := ctx.Location
	if out.FirstLocationUsage == element.WillSkip && ctx.Breakable != nil {
		loc = ctx.Breakable.GetLocation(1)
		out.Breaks = 1
	}
	r := c.Diameter / 2
	center := geom.Point{X: loc.X + r, Y: loc.Y + r}
	path := c.path(center)
	surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
	if c.Fill != nil {
		surf.FillPath(path, *c.Fill)
	}
	if c.Stroke != nil {
		surf.StrokePath(path, *c.Stroke)
	}
	return element.DrawOutput{MeasureOutput: out, End: loc.Translate(0, c.Diameter)}
}
