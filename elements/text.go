package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/shaping"
	"github.com/boergens/pdflayout/surface"
)

// Text lays out a single run of shaped, line-broken text. It allocates
// during measure only through Cache (§4.7), as RichText does.
//
// Grounded on the teacher's layout/inline/finalize.go (baseline = height *
// 0.8, the same convention font.Font.Metrics uses) for per-line metrics,
// and layout/flow/block.go for the pattern of distributing fixed-height
// units across a breakable region's pages.
type Text struct {
	Content string
	Font    *font.Font
	Size    geom.Abs
	Color   surface.Color
	Cache   *shaping.Cache
	Weight  int
	Italic  bool
	// Tracking adds extra space after every glyph.
	Tracking geom.Abs
}

func (t *Text) opts() shaping.Options {
	return shaping.Options{Weight: t.Weight, Italic: t.Italic, Tracking: t.Tracking}
}

func (t *Text) lines(maxWidth geom.Abs) []shaping.Line {
	lines, err := t.Cache.BreakLines(t.Font, t.Size, t.Content, t.opts(), maxWidth)
	if err != nil {
		// Resource errors are reported at construction time elsewhere in
		// the pipeline (§7); by the time an Element is in a tree it must
		// draw something, so an unshapeable run degenerates to empty.
		return nil
	}
	return lines
}

// linePlacement is one line's position within a (possibly multi-page) text
// block: page is relative to the block's own break index (0 = the
// starting page), y is the offset from that page's content origin.
type linePlacement struct {
	line shaping.Line
	page uint32
	y    geom.Abs
}

func (t *Text) place(lines []shaping.Line, firstHeight geom.Abs, breakable *element.Breakable) []linePlacement {
	placements := make([]linePlacement, 0, len(lines))
	var page uint32
	avail := firstHeight
	var used geom.Abs
	full := geom.Abs(0)
	if breakable != nil {
		full = breakable.FullHeight
	}
	for _, line := range lines {
		h := line.Ascent + line.Descent
		if h > avail && breakable != nil {
			page++
			avail = full
			used = 0
		}
		placements = append(placements, linePlacement{line: line, page: page, y: used})
		used += h
		avail -= h
	}
	return placements
}

func (t *Text) measure(ctx element.MeasureContext) element.MeasureOutput {
	lines := t.lines(ctx.Width.Max)
	if len(lines) == 0 || (len(lines) == 1 && lines[0].Text == "" && len(lines[0].Glyphs) == 0) {
		return element.MeasureOutput{FirstLocationUsage: element.NoneHeight}
	}

	placements := t.place(lines, ctx.FirstHeight, ctx.Breakable)

	width := geom.Abs(0)
	for _, l := range lines {
		width = width.Max(l.Width)
	}
	if ctx.Width.Expand {
		width = ctx.Width.Max
	}

	lastPage := placements[len(placements)-1].page
	heightOnLastPage := geom.Abs(0)
	for _, p := range placements {
		if p.page == lastPage {
			heightOnLastPage = heightOnLastPage.Max(p.y + p.line.Ascent + p.line.Descent)
		}
	}

	usage := element.WillUse
	if placements[0].page > 0 {
		usage = element.WillSkip
	}

	return element.MeasureOutput{
		Size:               geom.Size{Width: width, Height: heightOnLastPage},
		Breaks:             lastPage,
		FirstLocationUsage: usage,
	}
}

func (t *Text) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	return t.measure(ctx).FirstLocationUsage
}

func (t *Text) Measure(ctx element.MeasureContext) element.MeasureOutput {
	return t.measure(ctx)
}

func (t *Text) Draw(ctx element.DrawContext) element.DrawOutput {
	out := t.measure(ctx.ToMeasureContext())
	lines := t.lines(ctx.Width.Max)
	if len(lines) == 0 {
		return element.DrawOutput{MeasureOutput: out, End: ctx.Location}
	}
	placements := t.place(lines, ctx.FirstHeight, ctx.Breakable)

	origin := func(page uint32) geom.Location {
		if page == 0 || ctx.Breakable == nil {
			return ctx.Location
		}
		return ctx.Breakable.GetLocation(page)
	}

	for _, p := range placements {
		if len(p.line.Glyphs) == 0 {
			continue
		}
		loc := origin(p.page)
		baseline := loc.Y + p.y + p.line.Ascent
		run := surface.GlyphRun{Font: t.Font, Size: t.Size}
		for _, g := range p.line.Glyphs {
			run.GlyphIDs = append(run.GlyphIDs, g.GlyphID)
			run.Advances = append(run.Advances, g.Advance)
			run.XOffsets = append(run.XOffsets, g.XOffset)
			run.YOffsets = append(run.YOffsets, g.YOffset)
			run.ClusterOf = append(run.ClusterOf, g.Cluster)
		}
		surf := element.SurfaceFor(ctx.Surface, ctx.Location.Page, ctx.Breakable, loc)
		surf.PlaceText(loc.X, baseline, run, t.Color)
	}

	lastPage := placements[len(placements)-1].page
	end := origin(lastPage)
	end.Y += out.Size.Height

	return element.DrawOutput{MeasureOutput: out, End: end}
}
