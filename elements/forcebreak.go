package elements

import "github.com/boergens/pdflayout/element"

// ForceBreak has zero size and, wherever it is drawn, advances the
// breakable region's break index by one so the next sibling starts on a
// fresh page. Outside a breakable region there is nothing to advance to,
// so it degenerates to a zero-size no-op, since the element protocol
// cannot report that failure (§7).
type ForceBreak struct{}

func (ForceBreak) FirstLocationUsage(element.MeasureContext) element.FirstLocationUsage {
	return element.WillSkip
}

func (ForceBreak) Measure(ctx element.MeasureContext) element.MeasureOutput {
	breaks := uint32(0)
	if ctx.Breakable != nil {
		breaks = 1
	}
	return element.MeasureOutput{Breaks: breaks, FirstLocationUsage: element.WillSkip}
}

func (f ForceBreak) Draw(ctx element.DrawContext) element.DrawOutput {
	if ctx.Breakable == nil {
		return element.DrawOutput{MeasureOutput: element.MeasureOutput{FirstLocationUsage: element.WillSkip}, End: ctx.Location}
	}
	loc := ctx.Breakable.GetLocation(1)
	return element.DrawOutput{
		MeasureOutput: element.MeasureOutput{Breaks: 1, FirstLocationUsage: element.WillSkip},
		End:           loc,
	}
}
