// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layout implements a self-adapting grid of uniformly sized
elements.

A Grid packs its visible elements into as many rows (Horizontal) or
columns (Vertical) as fit in the target dimension and grows along the
other axis. Layout is negotiated in two passes: Requisition computes
the row and column count and the ideal size, and Allocate assigns a
rectangle to every visible element inside the size actually granted,
shrinking elements uniformly when the grant is too small.

The host owns the drawable container and holds the Grid as a delegate
through the Engine interface.
*/
package layout

import (
	"fmt"
	"image"
)

// Axis is the Horizontal or Vertical direction.
type Axis uint8

// TextDirection selects the horizontal placement direction.
type TextDirection uint8

const (
	Horizontal Axis = iota
	Vertical
)

const (
	LTR TextDirection = iota
	RTL
)

// Element is an item placed by a Grid.
type Element interface {
	// Visible reports whether the element takes part in layout.
	Visible() bool
	// SetBounds receives the final rectangle of the element.
	SetBounds(r image.Rectangle)
}

// Owner is the container a Grid lays out for.
type Owner interface {
	// Visible reports whether the container itself is shown.
	Visible() bool
	// QueueResize asks the owner to run the layout passes again.
	QueueResize()
	// SetVisible shows or hides the container. It is called when
	// the number of visible elements moves to or from zero.
	SetVisible(visible bool)
}

// Engine is the two-pass layout protocol.
type Engine interface {
	// Requisition returns the ideal size of the layout.
	Requisition() image.Point
	// Allocate places the elements inside alloc and returns their
	// rectangles in list order.
	Allocate(alloc image.Rectangle) []image.Rectangle
}

// Geometry is the set of layout parameters changed together by
// SetGeometry. All sizes are in pixels.
type Geometry struct {
	Orientation Axis
	// ElementWidth and ElementHeight is the nominal size of every
	// element.
	ElementWidth, ElementHeight int
	// Spacing is the gap between adjacent elements.
	Spacing int
	// Border is the margin on all four sides.
	Border int
	// TargetDimension is the available height for Horizontal
	// and width for Vertical grids.
	TargetDimension int
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}

func (d TextDirection) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		return fmt.Sprintf("TextDirection(%d)", d)
	}
}

// bounds returns the rectangle at p with size sz. Unlike image.Rect
// the corners are not swapped for negative sizes.
func bounds(p, sz image.Point) image.Rectangle {
	return image.Rectangle{Min: p, Max: p.Add(sz)}
}
