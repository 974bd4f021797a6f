// Package surface defines the drawing-sink abstraction that the element
// protocol draws onto: an abstraction over a single PDF page that knows
// nothing about layout, only about emitting marks.
//
// Grounded on the teacher's layout/types.go (Shape, Color, Stroke,
// Transform) — the value types a Surface consumes — generalized from a
// Frame-tree-building representation into a direct emit-time sink, per
// spec.md §4.1 ("the surface is a pure sink — it owns no layout state").
package surface

import "github.com/boergens/pdflayout/geom"

// Color is an RGBA color in the 0-255 channel range.
type Color struct {
	R, G, B, A uint8
}

// Black is the default stroke/fill color.
var Black = Color{A: 255}

// LineCap mirrors the PDF line cap styles.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin mirrors the PDF line join styles.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke describes how a path is stroked.
type Stroke struct {
	Color     Color
	Thickness geom.Abs
	Cap       LineCap
	Join      LineJoin
	DashArray []geom.Abs
	DashPhase geom.Abs
}

// PathSegment is one segment of a path: either a straight line to a point,
// or a cubic Bezier curve to a point with two control points.
type PathSegment struct {
	// Cubic is true if Ctrl1/Ctrl2 are meaningful; false for a line-to.
	Cubic        bool
	To           geom.Point
	Ctrl1, Ctrl2 geom.Point
}

// Path is a sequence of segments starting at Start.
type Path struct {
	Start    geom.Point
	Segments []PathSegment
	Closed   bool
}

// Font is an opaque handle to a font resolved by the embedder/writer; the
// layout core never inspects its contents, only passes it back.
type Font interface {
	// Key returns a stable identity used by the shaping cache and the
	// writer's font-resource table.
	Key() string
}

// GlyphRun is a single shaped run of glyphs at a fixed size, ready to be
// placed on a baseline by the surface.
type GlyphRun struct {
	Font      Font
	Size      geom.Abs
	GlyphIDs  []uint16
	Advances  []geom.Abs
	XOffsets  []geom.Abs
	YOffsets  []geom.Abs
	ClusterOf []int // byte offset into the source text per glyph, for debugging/tagging
}

// Image is a decoded raster image ready to be placed into a box.
type Image interface {
	// Key uniquely identifies the image's pixel content for the writer's
	// image-resource table (dedupe across placements).
	Key() string
	NaturalSize() geom.Size
}

// SVGFragment is an opaque, already-parsed SVG fragment produced by an
// external decoder (package svgdecode is one concrete implementation),
// ready to be embedded into a box.
type SVGFragment interface {
	NaturalSize() geom.Size
}

// Surface is the abstraction over a single PDF page that every Draw call
// emits onto. It is a pure sink: it owns no layout state, and coordinates
// given to it are already in the page's local top-down system.
type Surface interface {
	// FillPath fills path with color using the non-zero winding rule.
	FillPath(path Path, color Color)
	// StrokePath strokes path with the given stroke style.
	StrokePath(path Path, stroke Stroke)
	// PlaceText places a shaped glyph run with its baseline at (x, baselineY)
	// and the given color.
	PlaceText(x, baselineY geom.Abs, run GlyphRun, color Color)
	// PlaceImage draws img into the axis-aligned box at pos with the given
	// size.
	PlaceImage(pos geom.Point, size geom.Size, img Image)
	// PlaceSVG embeds frag into the axis-aligned box at pos with the given
	// size.
	PlaceSVG(pos geom.Point, size geom.Size, frag SVGFragment)
	// PushClip intersects the current clip region with rect until the
	// matching PopClip.
	PushClip(pos geom.Point, size geom.Size)
	PopClip()
	// PushTransform composes t onto the current transform until the
	// matching PopTransform. Used by ShrinkToFit's uniform scale.
	PushTransform(t geom.Point, scale float64)
	PopTransform()
}
