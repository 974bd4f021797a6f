package writer

import (
	"bytes"
	"testing"
)

func TestPdfNameEscapesSpecialBytes(t *testing.T) {
	tests := []struct {
		val  pdfName
		want string
	}{
		{"F1", "/F1"},
		{"A Name", "/A#20Name"},
		{"paren(s)", "/paren#28s#29"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.val.writeTo(&buf)
		if got := buf.String(); got != tt.want {
			t.Errorf("pdfName(%q) = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestPdfRealTrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		val  pdfReal
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{100, "100"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.val.writeTo(&buf)
		if got := buf.String(); got != tt.want {
			t.Errorf("pdfReal(%v) = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestPdfStringEscapesParensAndBackslash(t *testing.T) {
	var buf bytes.Buffer
	pdfString(`a(b)c\d`).writeTo(&buf)
	want := `(a\(b\)c\\d)`
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPdfArrayJoinsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	pdfArray{pdfInt(1), pdfInt(2), pdfInt(3)}.writeTo(&buf)
	if got := buf.String(); got != "[1 2 3]" {
		t.Errorf("got %q, want %q", got, "[1 2 3]")
	}
}

func TestPdfDictPreservesInsertionOrder(t *testing.T) {
	d := newDict()
	d.set("Z", pdfInt(1))
	d.set("A", pdfInt(2))
	d.set("M", pdfInt(3))

	var buf bytes.Buffer
	d.writeTo(&buf)
	want := "<< /Z 1 /A 2 /M 3 >>"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPdfDictSetOverwritesWithoutReordering(t *testing.T) {
	d := newDict()
	d.set("A", pdfInt(1))
	d.set("B", pdfInt(2))
	d.set("A", pdfInt(99))

	var buf bytes.Buffer
	d.writeTo(&buf)
	want := "<< /A 99 /B 2 >>"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRefWritesIndirectReference(t *testing.T) {
	var buf bytes.Buffer
	ref{7}.writeTo(&buf)
	if got := buf.String(); got != "7 0 R" {
		t.Errorf("got %q, want %q", got, "7 0 R")
	}
}
