// Package element defines the three-operation element protocol that is the
// core of the layout system: every composable layout node implements
// FirstLocationUsage, Measure and Draw against the context types defined
// here.
//
// Grounded on the teacher's layout/flow/types.go (Regions/Work model the
// same "how much space is left, how do I get more pages" questions that
// Breakable answers here) and layout/pages/collect.go (Locator, the
// teacher's page-oracle analogue to GetLocation).
package element

import (
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/surface"
)

// FirstLocationUsage declares whether an element, drawn at the current
// location with the current first height, will consume space there or
// defer to a successor page.
type FirstLocationUsage int

const (
	// NoneHeight indicates the element has zero vertical footprint
	// regardless of where it is drawn.
	NoneHeight FirstLocationUsage = iota
	// WillUse indicates the element will draw at the current location.
	WillUse
	// WillSkip indicates the element will break to a fresh page before
	// drawing anything.
	WillSkip
)

// PageSource allocates successor pages on demand. A Breakable context is
// backed by one of these; concrete implementations (e.g. the one the
// writer package exposes) must make GetPage idempotent per index.
type PageSource interface {
	// GetPage returns the location of the n-th successor page (n >= 1),
	// allocating it if it does not exist yet. Calling GetPage(n) multiple
	// times, or calling GetPage(2) before GetPage(1), must return
	// consistent results.
	GetPage(n uint32) geom.Location
	// PageSurface returns the Surface bound to the given page, per
	// spec.md §4.1 ("bound to a page"). Drawing on a page other than the
	// one a DrawContext started on must go through this, never through
	// the originating DrawContext.Surface.
	PageSurface(page geom.PageID) surface.Surface
}

// Breakable describes how an element may span pages: the space available
// on a fresh page, and an oracle for materializing successor pages.
type Breakable struct {
	// FullHeight is the vertical space available on a fresh page (after
	// top margin), constant for the duration of this breakable region.
	FullHeight geom.Abs
	// PreferredHeightBreakCount is a preferred-height hint that WithBreakOffset
	// and RepeatAfterBreak copy through unchanged; no element in this module
	// sets it to a nonzero value or reads it.
	PreferredHeightBreakCount uint32
	// Source materializes successor page locations.
	Source PageSource
}

// GetLocation returns the location of the n-th successor page (n >= 1).
func (b *Breakable) GetLocation(n uint32) geom.Location {
	return b.Source.GetPage(n)
}

// GetSurface returns the Surface bound to page.
func (b *Breakable) GetSurface(page geom.PageID) surface.Surface {
	return b.Source.PageSurface(page)
}

// WithBreakOffset returns a Breakable whose GetLocation(n) forwards to
// b.GetLocation(n+offset). Containers use this to let a child's own break
// counter start at the container's current break index.
func (b *Breakable) WithBreakOffset(offset uint32) *Breakable {
	return &Breakable{
		FullHeight:                b.FullHeight,
		PreferredHeightBreakCount: b.PreferredHeightBreakCount,
		Source:                    offsetSource{inner: b.Source, offset: offset},
	}
}

type offsetSource struct {
	inner  PageSource
	offset uint32
}

func (o offsetSource) GetPage(n uint32) geom.Location { return o.inner.GetPage(n + o.offset) }
func (o offsetSource) PageSurface(page geom.PageID) surface.Surface {
	return o.inner.PageSurface(page)
}

// MeasureContext is the input to Element.Measure and Element.FirstLocationUsage.
type MeasureContext struct {
	Width geom.WidthConstraint
	// FirstHeight is the remaining vertical space at the (implicit)
	// current location on its page; it may be less than Breakable.FullHeight
	// when measurement begins mid-page.
	FirstHeight geom.Abs
	// PreferredHeight, if set, is the height an enclosing
	// ExpandToPreferredHeight wants its content to reach.
	PreferredHeight *geom.Abs
	// Breakable is present when the element may span pages.
	Breakable *Breakable
}

// DrawContext is the input to Element.Draw.
type DrawContext struct {
	Surface surface.Surface
	Width   geom.WidthConstraint
	// Location is where drawing begins.
	Location geom.Location
	// FirstHeight is the remaining vertical space at Location on its page.
	FirstHeight     geom.Abs
	PreferredHeight *geom.Abs
	Breakable       *Breakable
}

// ToMeasureContext projects a DrawContext down to the MeasureContext an element
// would see if asked to measure instead of draw with the same layout
// inputs — invariant 2 in spec.md §3 requires these to agree.
func (c DrawContext) ToMeasureContext() MeasureContext {
	return MeasureContext{
		Width:           c.Width,
		FirstHeight:     c.FirstHeight,
		PreferredHeight: c.PreferredHeight,
		Breakable:       c.Breakable,
	}
}

// MeasureOutput is the result of Element.Measure.
type MeasureOutput struct {
	// Size is the element's footprint; Size.Height is the height used on
	// the *last* page the element occupies.
	Size geom.Size
	// Breaks is the number of page boundaries the element would cross.
	Breaks uint32
	// FirstLocationUsage records how the element used (or skipped) the
	// first location it was offered.
	FirstLocationUsage FirstLocationUsage
}

// DrawOutput is the result of Element.Draw: the same shape as MeasureOutput
// plus the location at which subsequent content should continue.
type DrawOutput struct {
	MeasureOutput
	// End is the location immediately after this element's content: for a
	// single-page element, the same page just below its bottom edge; for a
	// breaking element, on the last page it used.
	End geom.Location
}

// Element is the three-operation contract every layout node implements.
//
// Implementations must be stateless: repeated invocations with equal
// contexts yield equal outputs (up to the surface being mutated by Draw).
// Measure must not allocate in FirstLocationUsage's common case, and must
// only allocate in Measure/Draw for elements whose nature requires it (text
// shaping), routed through the shaping cache.
type Element interface {
	FirstLocationUsage(ctx MeasureContext) FirstLocationUsage
	Measure(ctx MeasureContext) MeasureOutput
	Draw(ctx DrawContext) DrawOutput
}

// HorizontalCollapser is implemented by elements that may collapse
// (contribute zero size and elide a surrounding gap) on the horizontal
// axis. Elements that don't implement it never collapse horizontally.
type HorizontalCollapser interface {
	CollapseHorizontal() bool
}

// VerticalCollapser is implemented by elements that may collapse on the
// vertical axis. Collapse is per-location: an element may collapse when
// measured/drawn at one location but not at another (e.g. it collapses
// only when a previous sibling used the first page entirely), so the
// decision is made with a MeasureContext in hand.
type VerticalCollapser interface {
	CollapseVertical(ctx MeasureContext) bool
}

// CollapsesHorizontal reports whether e collapses on the horizontal axis.
func CollapsesHorizontal(e Element) bool {
	c, ok := e.(HorizontalCollapser)
	return ok && c.CollapseHorizontal()
}

// CollapsesVertical reports whether e collapses on the vertical axis given ctx.
func CollapsesVertical(e Element, ctx MeasureContext) bool {
	c, ok := e.(VerticalCollapser)
	return ok && c.CollapseVertical(ctx)
}

// SurfaceFor resolves the Surface an element must draw loc onto: current if
// loc is still on the page the draw started on, otherwise the successor
// page's own surface fetched through breakable. Every element that may
// place marks at a location other than ctx.Location must route through
// this rather than reusing ctx.Surface directly.
func SurfaceFor(current surface.Surface, currentPage geom.PageID, breakable *Breakable, loc geom.Location) surface.Surface {
	if loc.Page == currentPage || breakable == nil {
		return current
	}
	return breakable.GetSurface(loc.Page)
}
