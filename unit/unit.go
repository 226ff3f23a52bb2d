// SPDX-License-Identifier: Unlicense OR MIT

/*

Package unit implements device independent units and values for grid
geometry.

A Value is a value with a Unit attached.

Device independent pixel, or dp, is the unit for element sizes that
should look the same across displays. Scaled pixels, or sp, are dps with
text scaling applied; use them for elements that track the label size.
Pixels, or px, are display dependent and are what the layout engine
finally works in.

A Metric converts Values to pixels.

*/
package unit

import (
	"fmt"
	"math"
)

// Value is a value with a unit.
type Value struct {
	V float32
	U Unit
}

// Unit represents a unit for a Value.
type Unit uint8

// Metric converts Values to device pixels. A zero scale is treated
// as 1.
type Metric struct {
	// PxPerDp is the device pixels per dp.
	PxPerDp float32
	// PxPerSp is the device pixels per sp.
	PxPerSp float32
}

const (
	// UnitPx represent device pixels in the resolution of
	// the underlying display.
	UnitPx Unit = iota
	// UnitDp represents device independent pixels. 1 dp will
	// have the same apparent size across platforms and
	// display resolutions.
	UnitDp
	// UnitSp is like UnitDp but for font sizes.
	UnitSp
)

// Px returns the Value for v device pixels.
func Px(v float32) Value {
	return Value{V: v, U: UnitPx}
}

// Dp returns the Value for v device independent
// pixels.
func Dp(v float32) Value {
	return Value{V: v, U: UnitDp}
}

// Sp returns the Value for v scaled dps.
func Sp(v float32) Value {
	return Value{V: v, U: UnitSp}
}

// Scale returns the value scaled by s.
func (v Value) Scale(s float32) Value {
	v.V *= s
	return v
}

func (v Value) String() string {
	return fmt.Sprintf("%g%s", v.V, v.U)
}

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitDp:
		return "dp"
	case UnitSp:
		return "sp"
	default:
		return fmt.Sprintf("Unit(%d)", u)
	}
}

// Px converts v to device pixels, rounded to the nearest integer.
// Unknown units count as device pixels.
func (m Metric) Px(v Value) int {
	var scale float32
	switch v.U {
	case UnitDp:
		scale = m.PxPerDp
	case UnitSp:
		scale = m.PxPerSp
	}
	if scale == 0 {
		scale = 1
	}
	return int(math.Round(float64(v.V * scale)))
}

// Dp converts v dps to pixels.
func (m Metric) Dp(v float32) int {
	return m.Px(Dp(v))
}

// Sp converts v sps to pixels.
func (m Metric) Sp(v float32) int {
	return m.Px(Sp(v))
}
