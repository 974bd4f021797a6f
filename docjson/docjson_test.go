package docjson

import (
	"strings"
	"testing"
)

func TestParseRejectsEmptyEntries(t *testing.T) {
	if _, err := Parse([]byte(`{"entries": []}`), Options{}); err == nil {
		t.Fatalf("expected an error for a document with no entries")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`), Options{}); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func TestParseRejectsNonPositivePageSize(t *testing.T) {
	doc := `{"entries":[{"size":[0,297],"element":{"type":"Rectangle","width":10,"height":10}}]}`
	if _, err := Parse([]byte(doc), Options{}); err == nil {
		t.Fatalf("expected an error for a zero page dimension")
	}
}

func TestParseConvertsMillimetersToPoints(t *testing.T) {
	doc := `{"entries":[{"size":[210,297],"element":{"type":"Rectangle","width":10,"height":10}}]}`
	d, err := Parse([]byte(doc), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantW := 210 * mmToPt
	if got := float64(d.Entries[0].Size.Width); got < wantW-0.001 || got > wantW+0.001 {
		t.Errorf("page width = %v, want %v", got, wantW)
	}
}

func TestParseRectangleWithHexFill(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{"type":"Rectangle","width":10,"height":10,"fill":"#00ff0080"}}]}`
	d, err := Parse([]byte(doc), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Entries) != 1 {
		t.Fatalf("expected 1 entry")
	}
}

func TestParseColumnWithNestedChildren(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{
      "type":"Column","gap":10,"collapse":true,
      "content":[
        {"type":"Rectangle","width":5,"height":5},
        {"type":"Circle","diameter":5}
      ]
    }}]}`
	if _, err := Parse([]byte(doc), Options{}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseUnknownElementTypeFails(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{"type":"Bogus"}}]}`
	_, err := Parse([]byte(doc), Options{})
	if err == nil {
		t.Fatalf("expected an error for an unknown element type")
	}
	if !strings.Contains(err.Error(), "Bogus") {
		t.Errorf("expected the unknown type name in the error, got %v", err)
	}
}

func TestParseTextWithUnknownFontFails(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{"type":"Text","text":"hi","font":"missing","size":12}}]}`
	if _, err := Parse([]byte(doc), Options{}); err == nil {
		t.Fatalf("expected an error for a dangling font reference")
	}
}

func TestParseRowWithFlexItems(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{
      "type":"Row","gap":5,
      "items":[
        {"element":{"type":"Rectangle","width":5,"height":5},"flex":false},
        {"element":{"type":"Rectangle","width":5,"height":5},"flex":true}
      ]
    }}]}`
	if _, err := Parse([]byte(doc), Options{}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseForceBreakAndBreakWhole(t *testing.T) {
	doc := `{"entries":[{"size":[100,100],"element":{
      "type":"Column","content":[
        {"type":"BreakWhole","content":{"type":"Rectangle","width":5,"height":5}},
        {"type":"ForceBreak"}
      ]
    }}]}`
	if _, err := Parse([]byte(doc), Options{}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseCollectsMultipleErrorsAcrossEntries(t *testing.T) {
	doc := `{"entries":[
      {"size":[0,100],"element":{"type":"Rectangle","width":1,"height":1}},
      {"size":[100,0],"element":{"type":"Rectangle","width":1,"height":1}}
    ]}`
	_, err := Parse([]byte(doc), Options{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "entry 0") || !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("expected both entry failures reported, got %v", err)
	}
}
