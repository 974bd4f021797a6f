package elements

import (
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

// Stack draws every child at the same location, layering them in order
// (later children on top, per spec.md §5's document-order z-ordering
// guarantee). Its size is the component-wise maximum of its children's
// sizes. There is no gap and no collapse between children.
//
// Grounded on the teacher's layout/stack.go z-order composition, stripped
// of its grid/alignment-table responsibilities (package layout/grid
// covers those and is out of this spec's element set).
type Stack struct {
	Children []element.Element
}

func (s *Stack) FirstLocationUsage(ctx element.MeasureContext) element.FirstLocationUsage {
	usage := element.NoneHeight
	for _, child := range s.Children {
		u := child.FirstLocationUsage(ctx)
		if u == element.WillSkip {
			return element.WillSkip
		}
		if u == element.WillUse {
			usage = element.WillUse
		}
	}
	return usage
}

func (s *Stack) Measure(ctx element.MeasureContext) element.MeasureOutput {
	var size geom.Size
	var breaks uint32
	usage := element.NoneHeight
	for _, child := range s.Children {
		out := child.Measure(ctx)
		size.Width = size.Width.Max(out.Size.Width)
		size.Height = size.Height.Max(out.Size.Height)
		if out.Breaks > breaks {
			breaks = out.Breaks
		}
		if out.FirstLocationUsage == element.WillSkip {
			usage = element.WillSkip
		} else if out.FirstLocationUsage == element.WillUse && usage != element.WillSkip {
			usage = element.WillUse
		}
	}
	return element.MeasureOutput{Size: size, Breaks: breaks, FirstLocationUsage: usage}
}

func (s *Stack) Draw(ctx element.DrawContext) element.DrawOutput {
	var size geom.Size
	var breaks uint32
	usage := element.NoneHeight
	end := ctx.Location
	for _, child := range s.Children {
		out := child.Draw(ctx)
		size.Width = size.Width.Max(out.Size.Width)
		size.Height = size.Height.Max(out.Size.Height)
		if out.Breaks > breaks {
			breaks = out.Breaks
		}
		if out.FirstLocationUsage == element.WillSkip {
			usage = element.WillSkip
		} else if out.FirstLocationUsage == element.WillUse && usage != element.WillSkip {
			usage = element.WillUse
		}
		end = out.End
	}
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{Size: size, Breaks: breaks, FirstLocationUsage: usage},
		End:           end,
	}
}
