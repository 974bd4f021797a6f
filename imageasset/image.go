// Package imageasset decodes raster image files (JPEG, PNG) into values
// implementing surface.Image, the handle the element protocol's Image
// element and the writer package's XObject embedding both consume.
//
// Grounded on the teacher's pdf/image.go (DecodeImageFile's JPEG/PNG
// dispatch, encodeJPEGImage's DCTDecode passthrough, encodePNGImage's
// decode-to-RGB-plus-alpha-mask approach), rebuilt against the standard
// library's image/jpeg and image/png rather than the teacher's
// gotypst/layout/pages.Image intermediate type, which belongs to the
// markup-language pipeline this system does not carry.
package imageasset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/boergens/pdflayout/geom"
)

// Image is a decoded raster ready for PDF embedding.
type Image struct {
	key    string
	width  int
	height int

	// jpegData holds the original JPEG bytes when Format is DCTDecode, so
	// the writer can embed them unmodified instead of re-encoding.
	jpegData []byte

	// rgb and alpha hold raw, uncompressed pixel data for the non-JPEG
	// path; the writer's stream writer applies FlateDecode itself.
	rgb   []byte
	alpha []byte
}

// Format reports which PDF image filter this asset embeds under.
type Format int

const (
	// FormatDCT embeds the original JPEG bytes directly (DCTDecode).
	FormatDCT Format = iota
	// FormatRaw embeds decoded RGB (and optional alpha) pixel data, left
	// for the writer to FlateDecode.
	FormatRaw
)

// Decode detects the format of data (JPEG or PNG) and decodes it.
func Decode(data []byte) (*Image, error) {
	switch {
	case isJPEG(data):
		return decodeJPEG(data)
	case isPNG(data):
		return decodePNG(data)
	default:
		return nil, fmt.Errorf("imageasset: unrecognized image format (want JPEG or PNG)")
	}
}

func isJPEG(data []byte) bool { return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8 }
func isPNG(data []byte) bool {
	return len(data) >= 8 &&
		data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A
}

func decodeJPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageasset: decode jpeg header: %w", err)
	}
	return &Image{
		key:      keyOf(data),
		width:    cfg.Width,
		height:   cfg.Height,
		jpegData: data,
	}, nil
}

func decodePNG(data []byte) (*Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageasset: decode png: %w", err)
	}
	return fromGoImage(keyOf(data), img), nil
}

// FromRGBA wraps an already-rasterized image.Image (e.g. the output of
// svgdecode rendering a vector fragment) as a FormatRaw asset identified
// by key. The caller owns key's uniqueness.
func FromRGBA(key string, img image.Image) *Image {
	return fromGoImage(key, img)
}

// fromGoImage extracts 8-bit RGB and, if any pixel is non-opaque, an
// 8-bit alpha mask, matching pdf/image.go's encodeGoImage walk.
func fromGoImage(key string, img image.Image) *Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgb := make([]byte, width*height*3)
	var alpha []byte
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := (y*width + x) * 3
			rgb[idx], rgb[idx+1], rgb[idx+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if a != 0xFFFF && alpha == nil {
				alpha = make([]byte, width*height)
				for i := range alpha[:y*width+x] {
					alpha[i] = 255
				}
			}
			if alpha != nil {
				alpha[y*width+x] = uint8(a >> 8)
			}
		}
	}
	return &Image{key: key, width: width, height: height, rgb: rgb, alpha: alpha}
}

func keyOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Key implements surface.Image.
func (img *Image) Key() string { return img.key }

// NaturalSize implements surface.Image, reporting pixel dimensions as
// points at a 96 DPI default; the Image element scales from there.
func (img *Image) NaturalSize() geom.Size {
	const pointsPerPixel = 72.0 / 96.0
	return geom.Size{
		Width:  geom.Abs(float64(img.width) * pointsPerPixel),
		Height: geom.Abs(float64(img.height) * pointsPerPixel),
	}
}

// Format reports how the writer should embed this asset.
func (img *Image) Format() Format {
	if img.jpegData != nil {
		return FormatDCT
	}
	return FormatRaw
}

// Width and Height are pixel dimensions, for the PDF XObject /Width and
// /Height entries (distinct from NaturalSize's point measurements).
func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// RawData returns the bytes to embed: the original JPEG stream for
// FormatDCT, or uncompressed RGB pixel bytes for FormatRaw.
func (img *Image) RawData() []byte {
	if img.jpegData != nil {
		return img.jpegData
	}
	return img.rgb
}

// AlphaMask returns uncompressed 8-bit grayscale alpha data, or nil if
// the image is fully opaque.
func (img *Image) AlphaMask() []byte { return img.alpha }
