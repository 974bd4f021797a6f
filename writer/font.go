package writer

import (
	"fmt"
	"sort"

	"github.com/boergens/pdflayout/surface"
)

// fontEntry tracks one document-wide font registration: the handle, the
// PDF object number reserved for its Type0 font object, and the glyphs
// actually drawn with it. No ToUnicode CMap is written.
//
// Grounded on pdf/writer.go's writeCIDFont, simplified by always emitting
// a CIDFontType2 composite font with /CIDToGIDMap /Identity and the full
// original font program under /FontFile2 rather than a hand-rolled
// TrueType table subset (pdf/font.go's subsetTTF): embedding the whole
// face costs more bytes but needs none of that table surgery, and the
// element protocol only ever hands the writer a handful of distinct Font
// values per document.
type fontEntry struct {
	font surface.Font
	num  int // Type0 font object number

	usedGlyphs map[uint16]struct{}
}

func (w *Writer) registerFont(f surface.Font) {
	key := f.Key()
	if _, ok := w.fonts[key]; ok {
		return
	}
	w.fonts[key] = &fontEntry{font: f, num: w.table.alloc(), usedGlyphs: map[uint16]struct{}{}}
	w.fontOrder = append(w.fontOrder, key)
}

func (w *Writer) markGlyphUsed(f surface.Font, gid uint16) {
	e := w.fonts[f.Key()]
	e.usedGlyphs[gid] = struct{}{}
}

// fontRef returns the indirect reference to a registered font's Type0
// object, for building each page's /Resources /Font dictionary.
func (w *Writer) fontRef(key string) int { return w.fonts[key].num }

// embeddedFont is the subset of font.Font's behavior the writer needs to
// embed a face without importing package font directly (which would be a
// dependency cycle: font is consumed by shaping, which elements import).
type embeddedFont interface {
	surface.Font
	Data() []byte
	Advance(glyphID uint16, size float64) float64
}

// writeFonts emits every registered font's PDF objects once, after all
// pages have been drawn and every glyph use recorded.
func (w *Writer) writeFonts() {
	for _, key := range w.fontOrder {
		e := w.fonts[key]
		ef, ok := e.font.(embeddedFont)
		if !ok {
			// A surface.Font that doesn't expose embeddable data (e.g. a
			// test double) degrades to a non-embedded base-14 font rather
			// than failing the whole document.
			w.writeFallbackFont(e)
			continue
		}
		w.writeCIDFont(e, ef)
	}
}

func (w *Writer) writeFallbackFont(e *fontEntry) {
	d := newDict()
	d.set("Type", pdfName("Font"))
	d.set("Subtype", pdfName("Type1"))
	d.set("BaseFont", pdfName("Helvetica"))
	d.set("Encoding", pdfName("WinAnsiEncoding"))
	w.table.writeDict(e.num, d)
}

func (w *Writer) writeCIDFont(e *fontEntry, ef embeddedFont) {
	descendantNum := w.table.alloc()
	descriptorNum := w.table.alloc()
	fontFileNum := w.table.alloc()
	widthsNum := w.table.alloc()

	baseName := pdfName(fmt.Sprintf("Font%d", e.num))

	top := newDict()
	top.set("Type", pdfName("Font"))
	top.set("Subtype", pdfName("Type0"))
	top.set("BaseFont", baseName)
	top.set("Encoding", pdfName("Identity-H"))
	top.set("DescendantFonts", pdfArray{ref{descendantNum}})
	w.table.writeDict(e.num, top)

	descendant := newDict()
	descendant.set("Type", pdfName("Font"))
	descendant.set("Subtype", pdfName("CIDFontType2"))
	descendant.set("BaseFont", baseName)
	descendant.set("CIDToGIDMap", pdfName("Identity"))
	descendant.set("FontDescriptor", ref{descriptorNum})
	descendant.set("W", ref{widthsNum})
	cidSysInfo := newDict()
	cidSysInfo.set("Registry", pdfString("Adobe"))
	cidSysInfo.set("Ordering", pdfString("Identity"))
	cidSysInfo.set("Supplement", pdfInt(0))
	descendant.set("CIDSystemInfo", cidSysInfo)
	w.table.writeDict(descendantNum, descendant)

	descriptor := newDict()
	descriptor.set("Type", pdfName("FontDescriptor"))
	descriptor.set("FontName", baseName)
	descriptor.set("Flags", pdfInt(4))
	descriptor.set("FontBBox", pdfArray{pdfInt(-500), pdfInt(-300), pdfInt(1500), pdfInt(1000)})
	descriptor.set("ItalicAngle", pdfInt(0))
	descriptor.set("Ascent", pdfInt(880))
	descriptor.set("Descent", pdfInt(-120))
	descriptor.set("CapHeight", pdfInt(700))
	descriptor.set("StemV", pdfInt(80))
	descriptor.set("FontFile2", ref{fontFileNum})
	w.table.writeDict(descriptorNum, descriptor)

	fontFileDict := newDict()
	fontFileDict.set("Length1", pdfInt(len(ef.Data())))
	w.table.writeStream(fontFileNum, fontFileDict, ef.Data(), true)

	w.table.writeObject(widthsNum, cidWidthsArray(e.usedGlyphs, ef))
}

// cidWidthsArray builds a /W array in the compact
// "CIDfirst [w0 w1 ...]" form, one run of consecutive glyph IDs at a time.
func cidWidthsArray(used map[uint16]struct{}, ef embeddedFont) pdfArray {
	gids := make([]uint16, 0, len(used))
	for gid := range used {
		gids = append(gids, gid)
	}
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })

	arr := pdfArray{}
	i := 0
	for i < len(gids) {
		start := gids[i]
		widths := pdfArray{pdfInt(round1000(ef.Advance(start, 1000)))}
		j := i + 1
		for j < len(gids) && gids[j] == gids[j-1]+1 {
			widths = append(widths, pdfInt(round1000(ef.Advance(gids[j], 1000))))
			j++
		}
		arr = append(arr, pdfInt(start), widths)
		i = j
	}
	return arr
}

func round1000(v float64) int64 { return int64(v + 0.5) }
