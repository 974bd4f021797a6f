// Package elements implements the concrete library of layout elements:
// text and graphics primitives, the Column/Row/Stack containers, and the
// page-flow elements that coordinate measurement with drawing to produce
// predictable break behavior.
//
// Every exported type implements element.Element. None retain drawing
// state between calls; a Column, say, can be measured and drawn any
// number of times against different contexts without its fields changing.
package elements
