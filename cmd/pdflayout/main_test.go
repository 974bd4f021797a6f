package main

import (
	"strings"
	"testing"

	"github.com/boergens/pdflayout/docjson"
)

const rectangleDocument = `{
  "title": "Smoke Test",
  "entries": [
    { "size": [210, 297],
      "element": {
        "type": "Rectangle",
        "width": 100, "height": 50,
        "fill": "#ff0000"
      }
    }
  ]
}`

func TestRenderProducesWellFormedPDF(t *testing.T) {
	doc, err := docjson.Parse([]byte(rectangleDocument), docjson.Options{})
	if err != nil {
		t.Fatalf("docjson.Parse: %v", err)
	}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "%PDF-1.7\n") {
		t.Fatalf("expected a PDF header, got prefix %q", s[:20])
	}
	if !strings.Contains(s, "/Title (Smoke Test)") {
		t.Errorf("expected the document title in the Info dict")
	}
	if !strings.HasSuffix(s, "%%EOF\n") {
		t.Errorf("expected a trailing %%%%EOF marker")
	}
}

func TestRenderMultipleEntriesEachGetTheirOwnPage(t *testing.T) {
	twoPageDoc := `{
      "entries": [
        { "size": [210, 297], "element": {"type":"Rectangle","width":10,"height":10} },
        { "size": [210, 297], "element": {"type":"Rectangle","width":20,"height":20} }
      ]
    }`
	doc, err := docjson.Parse([]byte(twoPageDoc), docjson.Options{})
	if err != nil {
		t.Fatalf("docjson.Parse: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := strings.Count(string(out), "/Type /Page "); got != 2 {
		t.Errorf("expected two page objects in output, got %d", got)
	}
}

func TestRenderRejectsEmptyDocument(t *testing.T) {
	if _, err := docjson.Parse([]byte(`{"entries": []}`), docjson.Options{}); err == nil {
		t.Fatalf("expected an error for a document with no entries")
	}
}
