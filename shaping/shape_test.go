package shaping

import (
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestBaseDirectionLatinIsLeftToRight(t *testing.T) {
	if got := baseDirection("hello, world"); got != di.DirectionLTR {
		t.Errorf("baseDirection(latin) = %v, want DirectionLTR", got)
	}
}

func TestBaseDirectionHebrewIsRightToLeft(t *testing.T) {
	if got := baseDirection("שלום עולם"); got != di.DirectionRTL {
		t.Errorf("baseDirection(hebrew) = %v, want DirectionRTL", got)
	}
}

func TestBaseDirectionArabicIsRightToLeft(t *testing.T) {
	if got := baseDirection("مرحبا بالعالم"); got != di.DirectionRTL {
		t.Errorf("baseDirection(arabic) = %v, want DirectionRTL", got)
	}
}

func TestBaseDirectionEmptyStringIsLeftToRight(t *testing.T) {
	if got := baseDirection(""); got != di.DirectionLTR {
		t.Errorf("baseDirection(\"\") = %v, want DirectionLTR", got)
	}
}

func TestBaseDirectionDigitsAreLeftToRight(t *testing.T) {
	// A paragraph with no strong directional characters defaults to LTR.
	if got := baseDirection("12345"); got != di.DirectionLTR {
		t.Errorf("baseDirection(digits) = %v, want DirectionLTR", got)
	}
}
