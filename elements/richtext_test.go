package elements

import (
	"testing"

	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/shaping"
)

func spanRun(width geom.Abs) richRun {
	return richRun{run: &shaping.ShapedRun{Width: width, Ascent: 8, Descent: 2}}
}

func TestRichTextWrapKeepsSpansWholeOnOneLine(t *testing.T) {
	r := &RichText{}
	lines := r.wrap([]richRun{spanRun(30), spanRun(30)}, 100)
	if len(lines) != 1 {
		t.Fatalf("expected both spans to fit on one line, got %d lines", len(lines))
	}
	if lines[0].width != 60 {
		t.Fatalf("expected combined width 60, got %v", lines[0].width)
	}
}

func TestRichTextWrapBreaksBeforeOverflowingSpan(t *testing.T) {
	r := &RichText{}
	lines := r.wrap([]richRun{spanRun(60), spanRun(60)}, 100)
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if len(lines[0].runs) != 1 || len(lines[1].runs) != 1 {
		t.Fatalf("expected one span per line, got %+v", lines)
	}
}

func TestRichTextWrapNeverSplitsASpanItself(t *testing.T) {
	r := &RichText{}
	// A span wider than maxWidth on its own still gets one whole line,
	// never split mid-run.
	lines := r.wrap([]richRun{spanRun(500)}, 100)
	if len(lines) != 1 || lines[0].width != 500 {
		t.Fatalf("expected the oversized span alone on one line, got %+v", lines)
	}
}
