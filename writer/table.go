package writer

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// table is the low-level PDF object table: it allocates object numbers,
// serializes bodies, and tracks byte offsets for the xref section.
//
// Grounded on the teacher's pdf/writer.go Writer.writeObject and
// Writer.writeStreamObject.
type table struct {
	buf  bytes.Buffer
	xref []int64 // xref[i] is the byte offset of object i+1
}

func newTable() *table {
	t := &table{}
	t.buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
	return t
}

// alloc reserves the next object number without writing anything yet.
func (t *table) alloc() int {
	t.xref = append(t.xref, -1)
	return len(t.xref)
}

func (t *table) writeDict(num int, d *pdfDict) {
	t.writeObject(num, d)
}

// writeObject writes any serializable object (a dict, or a bare array for
// e.g. a CIDFont's /W table) as its own indirect object.
func (t *table) writeObject(num int, obj object) {
	t.xref[num-1] = int64(t.buf.Len())
	fmt.Fprintf(&t.buf, "%d 0 obj\n", num)
	obj.writeTo(&t.buf)
	t.buf.WriteString("\nendobj\n")
}

// writeStream writes an object whose dict is extended with /Length (and
// /Filter /FlateDecode when compression helps) followed by the raw bytes.
func (t *table) writeStream(num int, d *pdfDict, data []byte, compress bool) {
	t.xref[num-1] = int64(t.buf.Len())

	body := data
	if compress && len(data) > 64 {
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		zw.Write(data)
		zw.Close()
		if compressed.Len() < len(data) {
			body = compressed.Bytes()
			d.set("Filter", pdfName("FlateDecode"))
		}
	}
	d.set("Length", pdfInt(len(body)))

	fmt.Fprintf(&t.buf, "%d 0 obj\n", num)
	d.writeTo(&t.buf)
	t.buf.WriteString("\nstream\n")
	t.buf.Write(body)
	t.buf.WriteString("\nendstream\nendobj\n")
}

// writeStreamRaw writes data verbatim, for content already in its final
// encoded form (e.g. a JPEG's own DCT-compressed bytes).
func (t *table) writeStreamRaw(num int, d *pdfDict, data []byte) {
	t.xref[num-1] = int64(t.buf.Len())
	d.set("Length", pdfInt(len(data)))
	fmt.Fprintf(&t.buf, "%d 0 obj\n", num)
	d.writeTo(&t.buf)
	t.buf.WriteString("\nstream\n")
	t.buf.Write(data)
	t.buf.WriteString("\nendstream\nendobj\n")
}

// finish appends the xref table and trailer (pointing at root and info)
// and returns the complete file bytes.
func (t *table) finish(root, info int, id [2]string) []byte {
	xrefStart := t.buf.Len()
	fmt.Fprintf(&t.buf, "xref\n0 %d\n", len(t.xref)+1)
	t.buf.WriteString("0000000000 65535 f \n")
	for _, off := range t.xref {
		fmt.Fprintf(&t.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&t.buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R /ID [<%s> <%s>] >>\n",
		len(t.xref)+1, root, info, id[0], id[1])
	fmt.Fprintf(&t.buf, "startxref\n%d\n%%%%EOF\n", xrefStart)
	return t.buf.Bytes()
}
