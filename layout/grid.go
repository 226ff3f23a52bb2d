// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"image"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Grid packs same-size elements into a rectangular grid whose shape
// adapts to the target dimension. Elements are compared by identity,
// so they should be pointers or other comparable values.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	owner Owner
	log   logrus.FieldLogger

	elements []Element

	geom            Geometry
	constrainWidth  bool
	followAlloc     bool
	windowed        bool
	direction       TextDirection
	rows, columns   int
	constrainedW    int
	dirty           bool
	ownerVisibility visibility
}

type visibility uint8

const (
	visibilityUnknown visibility = iota
	visibilityShown
	visibilityHidden
)

var _ Engine = (*Grid)(nil)

// NewGrid returns a Grid with the given geometry laying out for owner.
// The owner may be nil.
func NewGrid(owner Owner, geom Geometry) *Grid {
	l := logrus.New()
	l.Out = io.Discard
	return &Grid{
		owner:        owner,
		log:          l,
		geom:         geom,
		constrainedW: geom.ElementWidth,
		dirty:        true,
	}
}

// SetLogger directs debug output of the layout passes to l.
func (g *Grid) SetLogger(l logrus.FieldLogger) {
	g.log = l
}

// Requisition computes the row and column count for the visible
// elements and returns the smallest size holding all of them at
// nominal size. An empty grid requests 1x1 and hides its owner.
func (g *Grid) Requisition() image.Point {
	n := 0
	for _, e := range g.elements {
		if e.Visible() {
			n++
		}
	}
	oldRows, oldColumns := g.rows, g.columns
	geom := g.geom
	if geom.Orientation == Horizontal {
		// Fit as many rows as the height allows, then add columns.
		g.rows, g.columns = pack(n, geom.TargetDimension, geom.ElementHeight, geom.Spacing, geom.Border)
	} else {
		// Fit as many columns as the width allows, then add rows.
		g.columns, g.rows = pack(n, geom.TargetDimension, geom.ElementWidth, geom.Spacing, geom.Border)
	}

	var req image.Point
	if g.rows == 0 || g.columns == 0 {
		req = image.Pt(1, 1)
		g.setOwnerVisible(false)
	} else {
		req = image.Point{
			X: span(g.columns, geom.ElementWidth, geom.Spacing, geom.Border),
			Y: span(g.rows, geom.ElementHeight, geom.Spacing, geom.Border),
		}
		g.setOwnerVisible(true)
	}
	g.dirty = false
	if g.rows != oldRows || g.columns != oldColumns {
		g.log.WithFields(logrus.Fields{
			"rows":    g.rows,
			"columns": g.columns,
			"visible": n,
		}).Debug("grid shape changed")
		g.queueResize()
	}
	return req
}

// pack returns how many elements of size fit along target, and how
// many lines of that length are needed to hold n elements.
func pack(n, target, size, spacing, border int) (fit, lines int) {
	if size+spacing != 0 {
		fit = (target + spacing - 2*border) / (size + spacing)
	}
	if fit < 1 {
		fit = 1
	}
	lines = (n + fit - 1) / fit
	// Don't reserve empty trailing space in a single line.
	if lines == 1 && fit > n {
		fit = n
	}
	return fit, lines
}

// span returns the extent of count elements of size separated by
// spacing and surrounded by border.
func span(count, size, spacing, border int) int {
	gaps := count - 1
	if gaps < 0 {
		gaps = 0
	}
	return size*count + gaps*spacing + 2*border
}

// Allocate places every visible element inside alloc. Elements share
// equally in any width deficit. In a Horizontal grid, surplus height
// is shared out too. Rectangles are relative to alloc.Min unless the
// grid is windowed.
func (g *Grid) Allocate(alloc image.Rectangle) []image.Rectangle {
	size := alloc.Size()
	if g.followAlloc {
		if g.geom.Orientation == Horizontal && size.Y > 1 {
			g.geom.TargetDimension = size.Y
		} else if g.geom.Orientation == Vertical && size.X > 1 {
			g.geom.TargetDimension = size.X
		}
	}
	geom := g.geom
	elemW, elemH := geom.ElementWidth, geom.ElementHeight

	req := g.Requisition()
	req = req.Sub(image.Pt(2*geom.Border, 2*geom.Border))

	g.constrainedW = geom.ElementWidth
	if g.columns != 0 && g.rows != 0 && size.X > 1 {
		if req.X > size.X {
			elemW = (size.X+geom.Spacing-2*geom.Border)/g.columns - geom.Spacing
			// Too narrow for any width; keep the empty rectangles apart.
			if elemW < 0 {
				elemW = 0
			}
			g.constrainedW = elemW
			g.log.WithFields(logrus.Fields{
				"requested": req.X,
				"allocated": size.X,
				"width":     elemW,
			}).Debug("constraining element width")
		}
		if geom.Orientation == Horizontal && req.Y < size.Y {
			elemH = (size.Y+geom.Spacing-2*geom.Border)/g.rows - geom.Spacing
		}
	}

	var limit int
	if geom.Orientation == Horizontal {
		limit = geom.Border + g.rows*(elemH+geom.Spacing)
	} else {
		limit = geom.Border + g.columns*(elemW+geom.Spacing)
	}
	xInitial := geom.Border
	xDelta := elemW + geom.Spacing
	if g.direction == RTL {
		xInitial = size.X - elemW - geom.Border
		xDelta = -xDelta
	}

	var origin image.Point
	if !g.windowed {
		origin = alloc.Min
	}
	elemSize := image.Pt(elemW, elemH)
	var rects []image.Rectangle
	x, y := xInitial, geom.Border
	for _, e := range g.elements {
		if !e.Visible() {
			continue
		}
		r := bounds(image.Pt(x, y).Add(origin), elemSize)
		e.SetBounds(r)
		rects = append(rects, r)

		// Advance to the next grid position.
		if geom.Orientation == Horizontal {
			y += elemH + geom.Spacing
			if y >= limit {
				y = geom.Border
				x += xDelta
			}
		} else {
			x += xDelta
			wrap := x >= limit
			if g.direction == RTL {
				wrap = x <= 0
			}
			if wrap {
				x = xInitial
				y += elemH + geom.Spacing
			}
		}
	}
	return rects
}

// ElementSize returns the size every element is laid out at: the
// nominal size, with the width from the last allocation when width
// is constrained.
func (g *Grid) ElementSize() image.Point {
	w := g.geom.ElementWidth
	if g.constrainWidth && g.constrainedW > 1 {
		w = g.constrainedW
	}
	return image.Pt(w, g.geom.ElementHeight)
}

// Add appends e to the grid.
func (g *Grid) Add(e Element) {
	g.elements = append(g.elements, e)
	g.queueRelayout()
}

// Remove removes the first occurrence of e and reports whether it
// was present.
func (g *Grid) Remove(e Element) bool {
	i := slices.Index(g.elements, e)
	if i < 0 {
		return false
	}
	wasVisible := e.Visible()
	g.elements = slices.Delete(g.elements, i, i+1)
	if wasVisible {
		g.queueRelayout()
	}
	return true
}

// Index returns the position of e, or -1 if e is not in the grid.
func (g *Grid) Index(e Element) int {
	return slices.Index(g.elements, e)
}

// Reorder moves e in front of the element at position pos. A
// negative or out of range pos moves e to the end. Reorder reports
// whether e is in the grid.
func (g *Grid) Reorder(e Element, pos int) bool {
	old := slices.Index(g.elements, e)
	if old < 0 {
		return false
	}
	if pos == old {
		return true
	}
	g.elements = slices.Delete(g.elements, old, old+1)
	if pos < 0 || pos > len(g.elements) {
		pos = len(g.elements)
	}
	g.elements = slices.Insert(g.elements, pos, e)
	if e.Visible() && (g.owner == nil || g.owner.Visible()) {
		g.queueRelayout()
	}
	return true
}

// Len returns the number of elements, visible or not.
func (g *Grid) Len() int {
	return len(g.elements)
}

// At returns the element at position i. It returns false if i is
// out of range.
func (g *Grid) At(i int) (Element, bool) {
	if i < 0 || i >= len(g.elements) {
		return nil, false
	}
	return g.elements[i], true
}

// Elements returns a copy of the element list in layout order.
func (g *Grid) Elements() []Element {
	return slices.Clone(g.elements)
}

// SetGeometry replaces the layout parameters. It does nothing if geom
// equals the current geometry.
func (g *Grid) SetGeometry(geom Geometry) {
	if g.geom == geom {
		return
	}
	g.geom = geom
	g.constrainedW = geom.ElementWidth
	g.queueRelayout()
}

// Geometry returns the current layout parameters.
func (g *Grid) Geometry() Geometry {
	return g.geom
}

func (g *Grid) SetOrientation(a Axis) {
	if g.geom.Orientation == a {
		return
	}
	g.geom.Orientation = a
	g.queueRelayout()
}

func (g *Grid) Orientation() Axis {
	return g.geom.Orientation
}

func (g *Grid) SetSpacing(spacing int) {
	if g.geom.Spacing == spacing {
		return
	}
	g.geom.Spacing = spacing
	g.queueRelayout()
}

func (g *Grid) Spacing() int {
	return g.geom.Spacing
}

func (g *Grid) Border() int {
	return g.geom.Border
}

func (g *Grid) TargetDimension() int {
	return g.geom.TargetDimension
}

// SetConstrainWidth sets whether ElementSize reports the width
// constrained by the last allocation.
func (g *Grid) SetConstrainWidth(constrain bool) {
	if g.constrainWidth == constrain {
		return
	}
	g.constrainWidth = constrain
	g.queueRelayout()
}

func (g *Grid) ConstrainWidth() bool {
	return g.constrainWidth
}

func (g *Grid) SetTextDirection(d TextDirection) {
	if g.direction == d {
		return
	}
	g.direction = d
	g.queueRelayout()
}

func (g *Grid) TextDirection() TextDirection {
	return g.direction
}

// SetFollowAllocation sets whether Allocate adopts the allocated
// height (Horizontal) or width (Vertical) as the target dimension.
func (g *Grid) SetFollowAllocation(follow bool) {
	if g.followAlloc == follow {
		return
	}
	g.followAlloc = follow
	g.queueRelayout()
}

func (g *Grid) FollowAllocation() bool {
	return g.followAlloc
}

// SetWindowed sets whether the owner draws into its own surface. A
// windowed owner receives element rectangles relative to its own
// origin.
func (g *Grid) SetWindowed(windowed bool) {
	g.windowed = windowed
}

// Rows returns the row count of the last requisition.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the column count of the last requisition.
func (g *Grid) Columns() int {
	return g.columns
}

// ConstrainedWidth returns the element width used by the last
// allocation.
func (g *Grid) ConstrainedWidth() int {
	return g.constrainedW
}

// Dirty reports whether parameters or elements changed since the
// last requisition.
func (g *Grid) Dirty() bool {
	return g.dirty
}

func (g *Grid) queueRelayout() {
	g.dirty = true
	g.queueResize()
}

func (g *Grid) queueResize() {
	if g.owner != nil {
		g.owner.QueueResize()
	}
}

func (g *Grid) setOwnerVisible(visible bool) {
	v := visibilityHidden
	if visible {
		v = visibilityShown
	}
	if g.ownerVisibility == v {
		return
	}
	g.ownerVisibility = v
	g.log.WithField("visible", visible).Debug("grid owner visibility")
	if g.owner != nil {
		g.owner.SetVisible(visible)
	}
}
