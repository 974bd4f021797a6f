package elements

import (
	"testing"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
)

func TestTitledKeepsContentWithTitleWhenBothFit(t *testing.T) {
	ti := &Titled{
		Title:   &Rectangle{Size: geom.Size{Width: 50, Height: 20}, Fill: black()},
		Content: &Rectangle{Size: geom.Size{Width: 50, Height: 30}, Fill: black()},
	}
	breakable := newBreakable(200)
	surf := &recordingSurface{}
	out := ti.Draw(element.DrawContext{
		Surface: surf, Width: geom.WidthConstraint{Max: 100}, FirstHeight: 100, Breakable: breakable,
	})
	if out.Breaks != 0 {
		t.Fatalf("expected no break when both title and content fit, got %d", out.Breaks)
	}
	if surf.fillCalls != 2 {
		t.Fatalf("expected title and content both drawn on the first page, got %d", surf.fillCalls)
	}
}

func TestTitledDefersBothToFreshPageWhenContentWouldStrand(t *testing.T) {
	ti := &Titled{
		Title:   &Rectangle{Size: geom.Size{Width: 50, Height: 20}, Fill: black()},
		Content: &Rectangle{Size: geom.Size{Width: 50, Height: 300}, Fill: black()},
	}
	breakable := newBreakable(350)
	startSurf := &recordingSurface{}
	out := ti.Draw(element.DrawContext{
		Surface: startSurf, Width: geom.WidthConstraint{Max: 100}, FirstHeight: 30, Breakable: breakable,
	})
	if out.FirstLocationUsage != element.WillSkip {
		t.Fatalf("expected WillSkip, got %v", out.FirstLocationUsage)
	}
	if startSurf.fillCalls != 0 {
		t.Fatalf("expected nothing drawn on the original page, got %d", startSurf.fillCalls)
	}
	successor := breakable.GetSurface(1).(*recordingSurface)
	if successor.fillCalls != 2 {
		t.Fatalf("expected title and content both drawn on the successor page, got %d", successor.fillCalls)
	}
}

func TestRepeatAfterBreakRedrawsHeaderOnEveryPage(t *testing.T) {
	rab := &RepeatAfterBreak{
		Header:  &Rectangle{Size: geom.Size{Width: 50, Height: 10}, Fill: black()},
		Content: &Rectangle{Size: geom.Size{Width: 50, Height: 180}, Fill: black()},
	}
	breakable := newBreakable(100)
	startSurf := &recordingSurface{}
	out := rab.Draw(element.DrawContext{
		Surface: startSurf, Width: geom.WidthConstraint{Max: 100}, FirstHeight: 100, Breakable: breakable,
	})
	if out.Breaks == 0 {
		t.Fatal("expected content taller than one page to force a break")
	}
	if startSurf.fillCalls != 1 {
		t.Fatalf("expected only the header drawn on the first page, got %d fills", startSurf.fillCalls)
	}
	successor := breakable.GetSurface(1).(*recordingSurface)
	if successor.fillCalls != 2 {
		t.Fatalf("expected the header redrawn plus content on the successor page, got %d fills", successor.fillCalls)
	}
}
