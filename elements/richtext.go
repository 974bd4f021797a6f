package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/shaping"
	"github.com/boergens/pdflayout/surface"
)

// Span is one differently-styled run of text within a RichText.
type Span struct {
	Text     string
	Font     *font.Font
	Size     geom.Abs
	Color    surface.Color
	Weight   int
	Italic   bool
	Tracking geom.Abs
}

func (s Span) opts() shaping.Options {
	return shaping.Options{Weight: s.Weight, Italic: s.Italic, Tracking: s.Tracking}
}

// RichText lays out a sequence of styled spans as inline runs on shared
// lines. Unlike Text, a Span is the unit of line-break: spans wrap onto a
// new line as a whole rather than being split at internal whitespace. This
// keeps mixed-font shaping tractable while still covering RichText's
// primary use (a normal run interrupted by an emphasized word or two) —
// long unstyled prose belongs in a plain Text.
type RichText struct {
	Spans []Span
	Cache *shaping.Cache
}

type richRun struct {
	span Span
	run  *shaping.ShapedRun
}

type richLine struct {
	runs    []richRun
	width   geom.Abs
	ascent  geom.Abs
	descent geom.Abs
}

func (r *RichText) shapeSpans() []richRun {
	runs := make([]richRun, 0, len(r.Spans))
	for _, s := range r.Spans {
		run, err := r.Cache.Shape(s.Font, s.Size, s.Text, s.opts())
		if err != nil {
			continue
		}
		runs = append(runs, richRun{span: s, run: run})
	}
	return runs
}

func (r *RichText) wrap(runs []richRun, maxWidth geom.Abs) []richLine {
	var lines []richLine
	var cur richLine
	for _, rr := range runs {
		w := rr.run.Width
		if len(cur.runs) > 0 && cur.width+w > maxWidth {
			lines = append(lines, cur)
			cur = richLine{}
		}
		cur.runs = append(cur.runs, rr)
		cur.width += w
		cur.ascent = cur.ascent.Max(rr.run.Ascent)
		cur.descent = cur.descent.Max(rr.run.Descent)
	}
	if len(cur.runs) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (r *RichText) measure(ctx element.MeasureContext) (element.MeasureOutput, []richLine) {
	runs := r.shapeSpans()
	if len(runs) == 0 {
		return element.MeasureOutput{FirstLocationUsage: element.NoneHeight}, nil
	}
	lines := r.wrap(runs, ctx.Width.Max)

	placements := make([]linePlacement, len(lines))
	var page uint32
	avail := ctx.FirstHeight
	full := geom.Abs(0)
	if ctx.Breakable != nil {
		full = ctx.Breakable.FullHeight
	}
	var used geom.Abs
	width := geom.Abs(0)
	for i, l := range lines {
		h := l.ascent + l.descent
		if h > avail && ctx.Breakable != nil {
			page++
			avail = full
			used = 0
		}
		placements[i] = linePlacement{page: page, y: used}
		used += h
		avail -= h
		width = width.Max(l.width)
	}
	if ctx.Width.Expand {
		width = ctx.Width.Max
	}

	lastPage := placements[len(placements)-1].page
	height := geom.Abs(0)
	for i, p := range placements {
		if p.page == lastPage {
			height = height.Max(p.y + lines[i].ascent + lines[i].descent)
		}
	}

	usage := element.WillUse
	if placements[0].page > 0 {
		usage = element.WillSkip
	}

	return element.MeasureOutput{
		Size:               geom.Size{Width: width, Height: height},
		Breaks:             lastPage,
		FirstLocationUsage: usage,
	}, lines
}

func (r *RichText) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	out, _ := r.measure(ctx)
	return out.FirstLocationUsage
}

func (r *RichText) Measure(ctx element.MeasureContext) element.MeasureOutput {
	out, _ := r.measure(ctx)
	return out
}

func (r *RichText) Draw(ctx element.DrawContext) element.DrawOutput {
	out, lines := r.measure(ctx.ToMeasureContext())
	if len(lines) == 0 {
		return element.DrawOutput{MeasureOutput: out, End: ctx.Location}
	}

	origin := func(page uint32) geom.Location {
		if page == 0 || ctx.Breakable == nil {
			return ctx.Location
		}
		return ctx.Breakable.GetLocation(page)
	}

	var page uint32
	avail := ctx.FirstHeight
	full := geom.Abs(0)
	if ctx.Breakable != nil {
		full = ctx.Breakable.FullHeight
	}
	var used geom.Abs
	var lastPage uint32
	for _, l := range lines {
		h := l.ascent + l.descent
		if h > avail && ctx.Breakable != nil {
			page++
			avail = full
			used = 0
		}
		loc := origin(page)
		baseline := loc.Y + used + l.ascent
		x := loc.X
		for _, rr := range l.runs {
			run := surface.GlyphRun{Font: rr.span.Font, Size: rr.span.Size}
			for _, g := range rr.run.Glyphs {
				run.GlyphIDs = append(run.GlyphIDs, g.GlyphID)
				run.Advances = append(run.Advances, g.Advance)
				run.XOffsets = append(run.XOffsets, g.XOffset)
				run.YOffsets = append(run.YOffsets, g.YOffset)
				run.ClusterOf = append(run.ClusterOf, g.Cluster)
			}
			surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
			surf.PlaceText(x, baseline, run, rr.span.Color)
			x += rr.run.Width
		}
		used += h
		avail -= h
		lastPage = page
	}

	end := origin(lastPage)
	end.Y += out.Size.Height
	return element.DrawOutput{MeasureOutput: out, End: end}
}
