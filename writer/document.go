// This file assembles the document-level PDF structure on top of
// objects.go/table.go: the catalog, page tree, /Info dictionary and /ID,
// and the top-level Writer type the layout core treats as both
// element.PageSource and the thing it calls Finish on.
package writer

import (
	"time"

	"github.com/google/uuid"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// Metadata holds the document-level /Info entries. All fields are
// optional; Writer always stamps /Producer itself.
type Metadata struct {
	Title, Author, Subject, Keywords string
}

// page is one allocated page: its object number, size, and the surface
// accumulating its content stream.
type page struct {
	num     int
	size    geom.Size
	surface *pageSurface
}

// Writer is the concrete §6 writer: it owns the object table, the page
// list, and font/image registries, and exposes element.PageSource and
// surface.Surface to the layout core so neither ever touches a PDF object
// directly.
//
// Grounded on the teacher's pdf/writer.go Writer (object/xref bookkeeping)
// composed with a fresh document-assembly layer (see objects.go's package
// doc comment for why the teacher's own Document/Catalog/PageTree code
// isn't reused).
type Writer struct {
	table *table
	meta  Metadata

	pages []*page

	fonts     map[string]*fontEntry
	fontOrder []string

	images map[string]int // surface.Image.Key() -> XObject object number
}

// New creates a Writer with no pages yet.
func New(meta Metadata) *Writer {
	return &Writer{
		table:  newTable(),
		meta:   meta,
		fonts:  map[string]*fontEntry{},
		images: map[string]int{},
	}
}

// AddPage allocates a new page of the given size and returns its ID.
// Implements the §6 add_page operation.
func (w *Writer) AddPage(size geom.Size) geom.PageID {
	num := w.table.alloc()
	p := &page{num: num, size: size, surface: newPageSurface(w, size.Height)}
	w.pages = append(w.pages, p)
	return geom.PageID(len(w.pages) - 1)
}

// PageSurface returns the Surface bound to a page. Implements the §6
// page_surface operation and element.PageSource.
func (w *Writer) PageSurface(id geom.PageID) surface.Surface {
	return w.pages[id].surface
}

// GetPage implements element.PageSource. The Writer itself is always the
// root of a Breakable chain, anchored at the document's first page (index
// 0): GetPage(n) is page index n, allocating pages up through it (with
// the same size as the last page added) if they don't exist yet. Every
// nested Breakable reaches this root through WithBreakOffset, which folds
// a fixed offset into n before forwarding, so GetPage never needs to
// consult how many pages some unrelated branch of the draw has already
// allocated.
func (w *Writer) GetPage(n uint32) geom.Location {
	target := int(n)
	for len(w.pages) <= target {
		w.AddPage(w.pages[len(w.pages)-1].size)
	}
	return geom.Location{Page: geom.PageID(target), X: 0, Y: 0}
}

// Root returns a Breakable rooted at this writer, suitable as the top of
// an element tree's draw/measure pass.
func (w *Writer) Root(fullHeight geom.Abs) *element.Breakable {
	return &element.Breakable{FullHeight: fullHeight, Source: w}
}

// Finish serializes the complete document. Implements the §6 finish
// operation. After Finish, the Writer must not be reused.
func (w *Writer) Finish() []byte {
	w.writeFonts()

	pagesNum := w.table.alloc()
	pageRefs := make(pdfArray, len(w.pages))
	for i, p := range w.pages {
		w.writePageObject(p, pagesNum)
		pageRefs[i] = ref{p.num}
	}

	pagesDict := newDict()
	pagesDict.set("Type", pdfName("Pages"))
	pagesDict.set("Kids", pageRefs)
	pagesDict.set("Count", pdfInt(len(w.pages)))
	w.table.writeObject(pagesNum, pagesDict)

	catalogNum := w.table.alloc()
	catalog := newDict()
	catalog.set("Type", pdfName("Catalog"))
	catalog.set("Pages", ref{pagesNum})
	w.table.writeDict(catalogNum, catalog)

	infoNum := w.table.alloc()
	w.table.writeDict(infoNum, w.buildInfo())

	id := w.documentID()
	return w.table.finish(catalogNum, infoNum, id)
}

// writePageObject writes one page's object, using its already-built
// content stream and resource registries. The page's object number was
// reserved at AddPage time.
func (w *Writer) writePageObject(p *page, parent int) {
	contentNum := w.table.alloc()
	w.table.writeStream(contentNum, newDict(), p.surface.content.Bytes(), true)

	resources := newDict()
	if len(p.surface.fontRes) > 0 {
		fontDict := newDict()
		for key, name := range p.surface.fontRes {
			fontDict.set(name, ref{w.fontRef(key)})
		}
		resources.set("Font", fontDict)
	}
	if len(p.surface.xobjects) > 0 {
		xDict := newDict()
		for name, obj := range p.surface.xobjects {
			xDict.set(name, obj)
		}
		resources.set("XObject", xDict)
	}

	d := newDict()
	d.set("Type", pdfName("Page"))
	d.set("Parent", ref{parent})
	d.set("MediaBox", pdfArray{pdfInt(0), pdfInt(0), pdfReal(p.size.Width), pdfReal(p.size.Height)})
	d.set("Resources", resources)
	d.set("Contents", ref{contentNum})
	w.table.writeDict(p.num, d)
}

func (w *Writer) buildInfo() *pdfDict {
	d := newDict()
	if w.meta.Title != "" {
		d.set("Title", pdfString(w.meta.Title))
	}
	if w.meta.Author != "" {
		d.set("Author", pdfString(w.meta.Author))
	}
	if w.meta.Subject != "" {
		d.set("Subject", pdfString(w.meta.Subject))
	}
	if w.meta.Keywords != "" {
		d.set("Keywords", pdfString(w.meta.Keywords))
	}
	d.set("Producer", pdfString("pdflayout"))
	d.set("CreationDate", pdfString(pdfDate(time.Now())))
	return d
}

func pdfDate(t time.Time) string {
	return "D:" + t.UTC().Format("20060102150405") + "Z"
}

// documentID derives the two /ID strings from a random UUID: both halves
// identical, matching the common case of a document that is never
// incrementally updated.
func (w *Writer) documentID() [2]string {
	id := uuid.New()
	hex := uuidHex(id)
	return [2]string{hex, hex}
}

func uuidHex(id uuid.UUID) string {
	const digits = "0123456789abcdef"
	b := make([]byte, 32)
	for i, v := range id {
		b[i*2] = digits[v>>4]
		b[i*2+1] = digits[v&0xF]
	}
	return string(b)
}
