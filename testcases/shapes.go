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

package testcases

import (
	"math"

	"seehuhn.de/go/sketchpad/drawing"
)

// pt is a helper to create a drawing.Point from x, y coordinates.
func pt(x, y float64) drawing.Point {
	return drawing.Point{X: x, Y: y}
}

// drag samples the straight line from (x0,y0) to (x1,y1) every step units,
// as a pointer moving at constant speed would.
func drag(x0, y0, x1, y1, step float64) []drawing.Point {
	length := math.Hypot(x1-x0, y1-y0)
	n := max(int(math.Ceil(length/step)), 1)
	res := make([]drawing.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		res = append(res, pt(x0+t*(x1-x0), y0+t*(y1-y0)))
	}
	return res
}

// arc samples n+1 points on a circular arc around (cx,cy), starting at
// angle a0 and ending at a1 (in radians).
func arc(cx, cy, r, a0, a1 float64, n int) []drawing.Point {
	res := make([]drawing.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		res = append(res, pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return res
}

// wave samples a sine wave between x0 and x1 with the given amplitude and
// wavelength, centred on the horizontal line y.
func wave(x0, x1, y, amplitude, wavelength float64, n int) []drawing.Point {
	res := make([]drawing.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		x := x0 + (x1-x0)*float64(i)/float64(n)
		res = append(res, pt(x, y+amplitude*math.Sin(2*math.Pi*(x-x0)/wavelength)))
	}
	return res
}

// spiral samples an Archimedean spiral around (cx,cy).
func spiral(cx, cy, growth float64, turns float64, n int) []drawing.Point {
	res := make([]drawing.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * turns * float64(i) / float64(n)
		r := growth * a
		res = append(res, pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return res
}

// jitter returns n samples within a small neighbourhood of (x,y), as
// produced by a finger resting on a touch screen.
func jitter(x, y float64, n int) []drawing.Point {
	res := make([]drawing.Point, 0, n)
	for i := range n {
		dx := float64(i%3) - 1
		dy := float64((i/3)%3) - 1
		res = append(res, pt(x+dx, y+dy))
	}
	return res
}
