// SPDX-License-Identifier: Unlicense OR MIT

// Package render draws grid allocations into images for previews.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Box is a labelled rectangle.
type Box struct {
	Label string
	Rect  image.Rectangle
}

var (
	background = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	fill       = color.RGBA{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff}
	outline    = color.RGBA{R: 0x1a, G: 0x23, B: 0x7e, A: 0xff}
	ink        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Image draws the boxes onto an image covering bounds. Labels are
// clipped to their box.
func Image(bounds image.Rectangle, boxes []Box) *image.RGBA {
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(background), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	for _, b := range boxes {
		r := b.Rect.Canon().Intersect(bounds)
		if r.Empty() {
			continue
		}
		draw.Draw(img, r, image.NewUniform(outline), image.Point{}, draw.Src)
		if in := r.Inset(1); !in.Empty() {
			draw.Draw(img, in, image.NewUniform(fill), image.Point{}, draw.Src)
		}
		if b.Label == "" {
			continue
		}
		clip, ok := img.SubImage(r).(*image.RGBA)
		if !ok {
			continue
		}
		d := &font.Drawer{
			Dst:  clip,
			Src:  image.NewUniform(ink),
			Face: face,
			Dot:  fixed.P(r.Min.X+2, r.Min.Y+face.Ascent+1),
		}
		d.DrawString(b.Label)
	}
	return img
}

// WritePNG encodes the image of boxes as PNG to w.
func WritePNG(w io.Writer, bounds image.Rectangle, boxes []Box) error {
	if bounds.Empty() {
		return fmt.Errorf("render: empty bounds %v", bounds)
	}
	if err := png.Encode(w, Image(bounds, boxes)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
