// Package svgdecode rasterizes SVG source into a surface.SVGFragment that
// is also a surface.Image, so the writer can embed it through the same
// XObject path as any other raster once placed.
//
// Grounded on the rupor-github-fb2cng example's utils/images/svg.go
// (RasterizeSVGToImage's oksvg/rasterx pipeline and its viewBox-driven
// sizing rules); the teacher's svg/render.go renders the opposite
// direction (Typst frames to SVG), so it contributes nothing here.
package svgdecode

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/imageasset"
)

// defaultSize is used when an SVG's viewBox carries no usable dimensions.
const defaultSize = 512

// Fragment is a rasterized SVG, ready to be placed via Surface.PlaceSVG
// or, since it also implements surface.Image, Surface.PlaceImage.
type Fragment struct {
	asset *imageasset.Image
}

// Decode parses and rasterizes svg data at its intrinsic viewBox size (or
// defaultSize square if the viewBox gives none).
func Decode(svgData []byte) (*Fragment, error) {
	return DecodeAt(svgData, 0, 0)
}

// DecodeAt rasterizes svg data into a raster targetW x targetH pixels.
// Passing 0 for either dimension preserves aspect ratio from the other,
// or from the viewBox if both are 0, matching the teacher pack's
// RasterizeSVGToImage sizing rules.
func DecodeAt(svgData []byte, targetW, targetH int) (*Fragment, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("svgdecode: parse: %w", err)
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = defaultSize
	}
	if intrH <= 0 {
		intrH = defaultSize
	}

	w, h := fitSize(intrW, intrH, targetW, targetH)

	icon.SetTarget(0, 0, float64(w), float64(h))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)

	return &Fragment{asset: imageasset.FromRGBA(keyOf(svgData, w, h), dst)}, nil
}

func fitSize(intrW, intrH, targetW, targetH int) (int, int) {
	switch {
	case targetW <= 0 && targetH <= 0:
		return intrW, intrH
	case targetW > 0 && targetH <= 0:
		h := int(math.Round(float64(targetW) * float64(intrH) / float64(intrW)))
		return targetW, max1(h)
	case targetH > 0 && targetW <= 0:
		w := int(math.Round(float64(targetH) * float64(intrW) / float64(intrH)))
		return max1(w), targetH
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		return max1(int(math.Round(float64(intrW) * scale))), max1(int(math.Round(float64(intrH) * scale)))
	}
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func keyOf(data []byte, w, h int) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("svg-%dx%d-%s", w, h, hex.EncodeToString(sum[:8]))
}

// NaturalSize implements surface.SVGFragment and surface.Image.
func (f *Fragment) NaturalSize() geom.Size { return f.asset.NaturalSize() }

// Key implements surface.Image, delegating to the rasterized asset's
// content hash so repeated placements of the same fragment dedupe in the
// writer's XObject table.
func (f *Fragment) Key() string { return f.asset.Key() }

// Format, Width, Height, RawData and AlphaMask implement the writer
// package's embeddableImage interface by delegating to the rasterized
// asset.
func (f *Fragment) Format() imageasset.Format { return f.asset.Format() }
func (f *Fragment) Width() int                { return f.asset.Width() }
func (f *Fragment) Height() int               { return f.asset.Height() }
func (f *Fragment) RawData() []byte           { return f.asset.RawData() }
func (f *Fragment) AlphaMask() []byte         { return f.asset.AlphaMask() }
