package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// RowChild is one child of a Row together with its width policy: a
// self-sized child is measured at its natural width; a flexible child
// shares the width left over after every self-sized child has been
// measured. Spec.md §4.4 infers this partition from each child's natural
// width versus what expansion would grant it; this type makes the
// partition an explicit, testable input instead, which is the usual Go
// idiom for a caller-supplied layout policy (compare flexbox's flex-grow).
type RowChild struct {
	Element element.Element
	Flex    bool
}

// Row lays children out left to right, giving self-sized children their
// natural width and splitting the remainder evenly across flexible
// children. A Row never breaks pages: a child that reports a nonzero
// break count has overflowed the row's height, which is a layout
// impossibility (§7) the embedding driver is expected to catch before
// generation, since the element protocol itself cannot fail.
//
// Grounded on the teacher's layout/stack.go horizontal distribution pass.
type Row struct {
	Gap      geom.Abs
	Children []RowChild
}

type rowPlacement struct {
	child RowChild
	width geom.Abs
	x     geom.Abs
}

func (r *Row) plan(ctx element.MeasureContext) []rowPlacement {
	n := len(r.Children)
	if n == 0 {
		return nil
	}
	totalGap := r.Gap * geom.Abs(n-1)
	budget := ctx.Width.Max - totalGap
	if budget < 0 {
		budget = 0
	}

	placements := make([]rowPlacement, n)
	var flexIdx []int
	remaining := budget

	for i, rc := range r.Children {
		if rc.Flex {
			flexIdx = append(flexIdx, i)
			continue
		}
		out := rc.Element.Measure(element.MeasureContext{
			Width:           geom.WidthConstraint{Max: remaining, Expand: false},
			FirstHeight:     ctx.FirstHeight,
			PreferredHeight: ctx.PreferredHeight,
		})
		w := out.Size.Width.Min(remaining)
		placements[i] = rowPlacement{child: rc, width: w}
		remaining -= w
	}

	if len(flexIdx) > 0 {
		share := remaining / geom.Abs(len(flexIdx))
		if share < 0 {
			share = 0
		}
		for _, i := range flexIdx {
			placements[i] = rowPlacement{child: r.Children[i], width: share}
		}
	}

	x := geom.Abs(0)
	for i := range placements {
		placements[i].x = x
		x += placements[i].width + r.Gap
	}
	return placements
}

func (r *Row) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	if len(r.Children) == 0 {
		return element.NoneHeight
	}
	for _, rc := range r.Children {
		if u := rc.Element.FirstLocationUsage(ctx); u == element.WillSkip {
			return element.WillSkip
		}
	}
	return element.WillUse
}

func (r *Row) Measure(ctx element.MeasureContext) element.MeasureOutput {
	placements := r.plan(ctx)
	if len(placements) == 0 {
		return element.MeasureOutput{FirstLocationUsage: element.NoneHeight}
	}
	height := geom.Abs(0)
	width := geom.Abs(0)
	for _, p := range placements {
		out := p.child.Element.Measure(element.MeasureContext{
			Width:           geom.WidthConstraint{Max: p.width, Expand: true},
			FirstHeight:     ctx.FirstHeight,
			PreferredHeight: ctx.PreferredHeight,
		})
		height = height.Max(out.Size.Height)
		width = width.Max(p.x + out.Size.Width)
	}
	if ctx.Width.Expand {
		width = ctx.Width.Max
	}
	return element.MeasureOutput{Size: geom.Size{Width: width, Height: height}, FirstLocationUsage: element.WillUse}
}

func (r *Row) Draw(ctx element.DrawContext) element.DrawOutput {
	placements := r.plan(ctx.ToMeasureContext())
	if len(placements) == 0 {
		return element.DrawOutput{End: ctx.Location}
	}
	height := geom.Abs(0)
	width := geom.Abs(0)
	for _, p := range placements {
		out := p.child.Element.Draw(element.DrawContext{
			Surface:         ctx.Surface,
			Width:           geom.WidthConstraint{Max: p.width, Expand: true},
			Location:        ctx.Location.Translate(p.x, 0),
			FirstHeight:     ctx.FirstHeight,
			PreferredHeight: ctx.PreferredHeight,
		})
		height = height.Max(out.Size.Height)
		width = width.Max(p.x + out.Size.Width)
	}
	if ctx.Width.Expand {
		width = ctx.Width.Max
	}
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{Size: geom.Size{Width: width, Height: height}, FirstLocationUsage: element.WillUse},
		End:           ctx.Location.Translate(0, height),
	}
}
