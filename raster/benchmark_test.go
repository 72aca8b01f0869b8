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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// circleMagic is the control point distance for approximating a quarter
// circle by a cubic Bézier curve.
const circleMagic = 0.5522847498

// BenchmarkRasterizerO fills an "O" shape: outer circle counter-clockwise,
// inner circle clockwise.
func BenchmarkRasterizerO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			o := &path.Data{}
			o = addCircle(o, c, c, float64(size)*0.45, false)
			o = addCircle(o, c, c, float64(size)*0.30, true)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillNonZero(o, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO draws the same shape using x/image/vector.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			c := float32(size) / 2
			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, c, c, float32(size)*0.45, false)
				addCircleToVector(r, c, c, float32(size)*0.30, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkStrokeScribble strokes a long smoothed scribble with round caps
// and joins, the way exported drawings are rendered.
func BenchmarkStrokeScribble(b *testing.B) {
	const size = 512
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 20, Y: size / 2})
	prev := vec.Vec2{X: 20, Y: size / 2}
	for i := 1; i <= 200; i++ {
		x := 20 + float64(i)*2.35
		y := size/2 + 180*math.Sin(float64(i)/9)
		next := vec.Vec2{X: x, Y: y}
		p = p.QuadTo(prev.Add(next).Mul(0.5), next)
		prev = next
	}

	clip := rect.Rect{URx: size, URy: size}
	r := NewRasterizer(clip)
	dst := image.NewAlpha(image.Rect(0, 0, size, size))

	b.ReportAllocs()
	for b.Loop() {
		r.Reset(clip)
		r.Width = 10
		r.Cap = graphics.LineCapRound
		r.Join = graphics.LineJoinRound
		r.Stroke(p, func(y, xMin int, coverage []float32) {
			row := dst.Pix[y*dst.Stride+xMin:]
			for i, c := range coverage {
				row[i] = uint8(c * 255)
			}
		})
	}
}

// addCircle appends a circle made of four cubic Bézier segments to p.
func addCircle(p *path.Data, cx, cy, radius float64, clockwise bool) *path.Data {
	kr := circleMagic * radius
	s := 1.0
	if clockwise {
		s = -1
	}
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: cx + s*x, Y: cy + y} }

	p = p.MoveTo(pt(0, -radius))
	p = p.CubeTo(pt(kr, -radius), pt(radius, -kr), pt(radius, 0))
	p = p.CubeTo(pt(radius, kr), pt(kr, radius), pt(0, radius))
	p = p.CubeTo(pt(-kr, radius), pt(-radius, kr), pt(-radius, 0))
	p = p.CubeTo(pt(-radius, -kr), pt(-kr, -radius), pt(0, -radius))
	return p.Close()
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier
// curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	kr := float32(circleMagic) * radius
	s := float32(1)
	if clockwise {
		s = -1
	}

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	r.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	r.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}

func TestCubicCircleArea(t *testing.T) {
	g := newGrid(64, 64)
	r := NewRasterizer(g.clip())
	r.FillNonZero(addCircle(&path.Data{}, 32, 32, 20, false), g.emit)

	want := math.Pi * 400
	if s := g.sum(); math.Abs(s-want) > 0.03*want {
		t.Errorf("area = %.2f, want %.2f ± 3%%", s, want)
	}
}
