package writer

import (
	"github.com/boergens/pdflayout/imageasset"
	"github.com/boergens/pdflayout/surface"
)

// embeddableImage is the subset of imageasset.Image's behavior the writer
// needs to build an XObject. A surface.Image that doesn't also implement
// this (e.g. a test double) still draws, via a 1x1 placeholder.
//
// Grounded on pdf/image.go's encodeJPEGImage/encodeRawImage XObject dict
// shape and encodeAlphaMask's separate DeviceGray SMask stream.
type embeddableImage interface {
	surface.Image
	Format() imageasset.Format
	Width() int
	Height() int
	RawData() []byte
	AlphaMask() []byte
}

// registerImage embeds img (once per distinct Key) into the document's
// object table and returns the page-local resource name for it.
func (w *Writer) registerImage(p *pageSurface, img surface.Image) string {
	key := img.Key()
	num, ok := w.images[key]
	if !ok {
		num = w.embedImage(img)
		w.images[key] = num
	}
	return p.registerXObject(key, ref{num})
}

func (w *Writer) embedImage(img surface.Image) int {
	num := w.table.alloc()
	ei, ok := img.(embeddableImage)
	if !ok {
		w.writePlaceholderImage(num)
		return num
	}

	var smaskNum int
	hasAlpha := ei.Format() == imageasset.FormatRaw && len(ei.AlphaMask()) > 0
	if hasAlpha {
		smaskNum = w.table.alloc()
	}

	d := newDict()
	d.set("Type", pdfName("XObject"))
	d.set("Subtype", pdfName("Image"))
	d.set("Width", pdfInt(ei.Width()))
	d.set("Height", pdfInt(ei.Height()))
	d.set("BitsPerComponent", pdfInt(8))
	d.set("ColorSpace", pdfName("DeviceRGB"))

	switch ei.Format() {
	case imageasset.FormatDCT:
		d.set("Filter", pdfName("DCTDecode"))
		w.table.writeStreamRaw(num, d, ei.RawData())
	default:
		if hasAlpha {
			d.set("SMask", ref{smaskNum})
		}
		w.table.writeStream(num, d, ei.RawData(), true)
	}

	if hasAlpha {
		sd := newDict()
		sd.set("Type", pdfName("XObject"))
		sd.set("Subtype", pdfName("Image"))
		sd.set("Width", pdfInt(ei.Width()))
		sd.set("Height", pdfInt(ei.Height()))
		sd.set("BitsPerComponent", pdfInt(8))
		sd.set("ColorSpace", pdfName("DeviceGray"))
		w.table.writeStream(smaskNum, sd, ei.AlphaMask(), true)
	}
	return num
}

func (w *Writer) writePlaceholderImage(num int) {
	d := newDict()
	d.set("Type", pdfName("XObject"))
	d.set("Subtype", pdfName("Image"))
	d.set("Width", pdfInt(1))
	d.set("Height", pdfInt(1))
	d.set("BitsPerComponent", pdfInt(8))
	d.set("ColorSpace", pdfName("DeviceRGB"))
	w.table.writeStream(num, d, []byte{255, 255, 255}, true)
}
