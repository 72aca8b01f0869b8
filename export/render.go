// seehuhn.de/go/sketchpad - a freehand drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package export

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/curve"
	"seehuhn.de/go/sketchpad/drawing"
	"seehuhn.de/go/sketchpad/raster"
)

// Background is the colour behind all strokes.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Render paints strokes, oldest first, onto a new image of size
// width×height. The canvas rectangle [0, canvasWidth]×[0, canvasHeight]
// is scaled to cover the whole image. Parts of strokes outside the canvas
// are clipped.
func Render(strokes []*drawing.Stroke, width, height int, canvasWidth, canvasHeight float64, style curve.Style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if width <= 0 || height <= 0 || !(canvasWidth > 0) || !(canvasHeight > 0) {
		return img
	}

	r := raster.NewRasterizer(rect.Rect{URx: float64(width), URy: float64(height)})
	m := &maskPainter{
		dst:  img,
		mask: image.NewAlpha(img.Bounds()),
	}
	canvas := rect.Rect{URx: canvasWidth, URy: canvasHeight}
	ctm := matrix.Scale(float64(width)/canvasWidth, float64(height)/canvasHeight)

	for _, s := range strokes {
		mark := curve.Build(s.Points(), s.Color(), style)
		if mark.Kind == curve.Empty {
			continue
		}
		if !overlaps(mark.Bounds(), canvas) {
			sketchpad.Logger().Debug("stroke outside canvas skipped",
				"stroke", s.ID(),
				"points", s.Len())
			continue
		}

		r.Reset(r.Clip)
		r.CTM = ctm
		if mark.Kind == curve.Dot || mark.Segments == 0 {
			r.FillDisc(mark.Start, mark.Radius(), m.emit)
		} else {
			r.Width = mark.Width
			r.Cap = mark.Cap
			r.Join = mark.Join
			r.Stroke(mark.Path, m.emit)
		}
		m.flush(mark.Color)
	}
	return img
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// maskPainter collects coverage rows in an alpha mask and composites the
// mask onto dst in a single colour.
type maskPainter struct {
	dst   draw.Image
	mask  *image.Alpha
	dirty image.Rectangle
}

func (m *maskPainter) emit(y, xMin int, coverage []float32) {
	row := m.mask.Pix[y*m.mask.Stride+xMin:]
	for i, c := range coverage {
		row[i] = uint8(c*255 + 0.5)
	}
	m.dirty = m.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
}

// flush paints the collected coverage and clears the mask.
func (m *maskPainter) flush(c color.NRGBA) {
	if m.dirty.Empty() {
		return
	}
	draw.DrawMask(m.dst, m.dirty, image.NewUniform(c), image.Point{}, m.mask, m.dirty.Min, draw.Over)
	for y := m.dirty.Min.Y; y < m.dirty.Max.Y; y++ {
		base := y * m.mask.Stride
		clear(m.mask.Pix[base+m.dirty.Min.X : base+m.dirty.Max.X])
	}
	m.dirty = image.Rectangle{}
}
