package elements

import (
	"testing"

	"github.com/boergens/pdflayout/shaping"
)

func line() shaping.Line {
	return shaping.Line{Ascent: 0.8 * 10, Descent: 0.2 * 10}
}

func TestTextPlaceKeepsLinesOnOnePageWhenTheyFit(t *testing.T) {
	tx := &Text{Size: 10}
	lines := []shaping.Line{line(), line(), line()}
	placements := tx.place(lines, 100, newBreakable(200))

	for _, p := range placements {
		if p.page != 0 {
			t.Fatalf("expected all lines on page 0, got page %d", p.page)
		}
	}
	if placements[1].y != 10 || placements[2].y != 20 {
		t.Fatalf("expected cumulative y offsets, got %+v", placements)
	}
}

func TestTextPlaceBreaksWhenLineExceedsRemainingSpace(t *testing.T) {
	tx := &Text{Size: 10}
	lines := []shaping.Line{line(), line(), line()}
	placements := tx.place(lines, 15, newBreakable(100))

	if placements[0].page != 0 {
		t.Fatalf("expected the first line on page 0, got %d", placements[0].page)
	}
	if placements[1].page != 1 || placements[1].y != 0 {
		t.Fatalf("expected the second line pushed to a fresh page at y=0, got page=%d y=%v", placements[1].page, placements[1].y)
	}
	if placements[2].page != 1 || placements[2].y != 10 {
		t.Fatalf("expected the third line to follow on the same fresh page, got page=%d y=%v", placements[2].page, placements[2].y)
	}
}

func TestTextPlaceNeverBreaksWithoutBreakable(t *testing.T) {
	tx := &Text{Size: 10}
	lines := []shaping.Line{line(), line()}
	placements := tx.place(lines, 5, nil)

	for _, p := range placements {
		if p.page != 0 {
			t.Fatalf("expected every line to stay on page 0 without a Breakable, got %d", p.page)
		}
	}
}
