// SPDX-License-Identifier: Unlicense OR MIT

package layout_test

import (
	"fmt"
	"image"

	"gioui.org/icongrid/layout"
	"gioui.org/icongrid/unit"
)

type icon struct {
	hidden bool
}

func (i *icon) Visible() bool { return !i.hidden }

func (i *icon) SetBounds(r image.Rectangle) {}

type panel struct{}

func (panel) Visible() bool { return true }

func (panel) QueueResize() {}

func (panel) SetVisible(visible bool) {
	fmt.Println("visible:", visible)
}

func ExampleGrid() {
	g := layout.NewGrid(panel{}, layout.Geometry{
		Orientation:     layout.Horizontal,
		ElementWidth:    24,
		ElementHeight:   24,
		Spacing:         2,
		Border:          1,
		TargetDimension: 50,
	})
	for i := 0; i < 5; i++ {
		g.Add(new(icon))
	}

	fmt.Println(g.Requisition())

	// The panel grants less width than requested.
	for _, r := range g.Allocate(image.Rect(0, 0, 70, 26)) {
		fmt.Println(r)
	}

	// Output:
	// visible: true
	// (134,26)
	// (1,1)-(13,25)
	// (15,1)-(27,25)
	// (29,1)-(41,25)
	// (43,1)-(55,25)
	// (57,1)-(69,25)
}

func ExampleGrid_empty() {
	g := layout.NewGrid(panel{}, layout.Geometry{ElementWidth: 24, ElementHeight: 24})
	fmt.Println(g.Requisition())

	g.Add(new(icon))
	fmt.Println(g.Requisition())

	// Output:
	// visible: false
	// (1,1)
	// visible: true
	// (24,24)
}

func ExampleParseGeometry() {
	m := unit.Metric{PxPerDp: 2}
	geom, err := layout.ParseGeometry(m, "vgrid(16dp, 16dp, 2px, 1dp, 120dp)")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%v %dx%d spacing %d border %d target %d\n",
		geom.Orientation, geom.ElementWidth, geom.ElementHeight,
		geom.Spacing, geom.Border, geom.TargetDimension)

	// Output:
	// Vertical 32x32 spacing 2 border 2 target 240
}
