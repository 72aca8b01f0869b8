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
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// subpath is a flattened subpath, stored as r.pts[start:end].
type subpath struct {
	start, end int
	closed     bool
}

// Stroke strokes the path using the current line width, cap and join
// styles. The emit callback receives coverage row by row; its slice
// argument is valid only during the call.
//
// The stroke is built as a union of positively oriented polygons: one
// rectangle per flattened segment, plus the join and cap shapes. These are
// filled together using the nonzero winding rule.
func (r *Rasterizer) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)

	r.poly = r.poly[:0]
	r.polyStart = r.polyStart[:0]
	d := r.Width / 2
	if !(d > 0) {
		return
	}
	for _, sp := range r.subpaths {
		line := r.pts[sp.start:sp.end]
		if len(line) == 1 {
			// zero-length subpath: only round caps show up
			if r.Cap == graphics.LineCapRound {
				r.addDisc(line[0], d)
			}
			continue
		}
		r.strokeLine(line, sp.closed, d)
	}
	r.fillPolygons(emit)
}

// flatten converts p into polylines, one per subpath. Zero-length segments
// are dropped. A lone MoveTo does not produce a subpath.
func (r *Rasterizer) flatten(p *path.Data) {
	r.pts = r.pts[:0]
	r.subpaths = r.subpaths[:0]

	var current vec.Vec2
	inSubpath := false
	drawn := false
	first := 0

	end := func(closed bool) {
		if !inSubpath {
			return
		}
		inSubpath = false
		n := len(r.pts) - first
		if n == 0 || n == 1 && !drawn {
			r.pts = r.pts[:first]
			return
		}
		r.subpaths = append(r.subpaths, subpath{start: first, end: len(r.pts), closed: closed})
	}
	lineTo := func(_, to vec.Vec2) {
		drawn = true
		if to.Sub(r.pts[len(r.pts)-1]).Length() < zeroLengthThreshold {
			return
		}
		r.pts = append(r.pts, to)
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			end(false)
			current = p.Coords[k]
			k++
			first = len(r.pts)
			r.pts = append(r.pts, current)
			inSubpath = true
			drawn = false
		case path.CmdLineTo:
			if inSubpath {
				lineTo(current, p.Coords[k])
			}
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			if inSubpath {
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			}
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			if inSubpath {
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			}
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if inSubpath {
				current = r.pts[first]
			}
			end(true)
		}
	}
	end(false)
}

// strokeLine adds the outline polygons for a polyline with at least two
// distinct points.
func (r *Rasterizer) strokeLine(line []vec.Vec2, closed bool, d float64) {
	if closed {
		r.ring = append(r.ring[:0], line...)
		if line[0].Sub(line[len(line)-1]).Length() >= zeroLengthThreshold {
			r.ring = append(r.ring, line[0])
		}
		line = r.ring
	}

	n := len(line)
	for i := 0; i+1 < n; i++ {
		r.addSegment(line[i], line[i+1], d)
	}
	for i := 1; i+1 < n; i++ {
		r.addJoin(line[i], tangent(line[i-1], line[i]), tangent(line[i], line[i+1]), d)
	}

	if closed {
		if n > 2 {
			r.addJoin(line[0], tangent(line[n-2], line[n-1]), tangent(line[0], line[1]), d)
		}
		return
	}
	r.addCap(line[0], tangent(line[1], line[0]), d)
	r.addCap(line[n-1], tangent(line[n-2], line[n-1]), d)
}

// tangent returns the unit vector pointing from a to b.
func tangent(a, b vec.Vec2) vec.Vec2 {
	v := b.Sub(a)
	return v.Mul(1 / v.Length())
}

// normal returns T rotated by 90° counter-clockwise.
func normal(T vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -T.Y, Y: T.X}
}

// addSegment adds the rectangle covering the segment from a to b.
func (r *Rasterizer) addSegment(a, b vec.Vec2, d float64) {
	N := normal(tangent(a, b)).Mul(d)
	r.addPolygon(a.Sub(N), b.Sub(N), b.Add(N), a.Add(N))
}

// addJoin fills the gap on the outer side of the corner at P, where the
// incoming direction is T1 and the outgoing direction is T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cross := T1.X*T2.Y - T1.Y*T2.X
	dot := T1.X*T2.X + T1.Y*T2.Y
	if math.Abs(cross) < collinearityThreshold && dot > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(P, d)
		return
	}

	// the outer side is to the right of a left turn
	s := d
	if cross > 0 {
		s = -d
	}
	N1, N2 := normal(T1), normal(T2)
	a := P.Add(N1.Mul(s))
	b := P.Add(N2.Mul(s))

	if r.Join == graphics.LineJoinMiter && 1+dot > collinearityThreshold {
		// the miter length divided by the line width is 1/sin(φ/2), where
		// φ is the angle between the segments
		if 1/math.Sqrt((1+dot)/2) <= r.MiterLimit {
			tip := P.Add(N1.Add(N2).Mul(s / (1 + dot)))
			r.addPolygon(P, a, tip, b)
			return
		}
	}
	r.addPolygon(P, a, b)
}

// addCap adds the line cap at the end point P of a subpath. T is the unit
// vector pointing away from the subpath.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(P, d)
	case graphics.LineCapSquare:
		N := normal(T).Mul(d)
		E := P.Add(T.Mul(d))
		r.addPolygon(P.Sub(N), E.Sub(N), E.Add(N), P.Add(N))
	}
}

// addDisc adds a polygon approximating the disc around center.
func (r *Rasterizer) addDisc(center vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	// A chord subtending angle θ deviates from the circle by at most
	// radius*(1 - cos(θ/2)).
	n := minDiscSegments
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	start := len(r.poly)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
	r.finishPolygon(start)
}

// addPolygon adds a closed polygon with the given vertices.
func (r *Rasterizer) addPolygon(vertices ...vec.Vec2) {
	start := len(r.poly)
	r.poly = append(r.poly, vertices...)
	r.finishPolygon(start)
}

// finishPolygon completes the polygon r.poly[start:], reversing it if
// necessary so that all polygons have positive orientation. Overlapping
// parts then add up instead of cancelling.
func (r *Rasterizer) finishPolygon(start int) {
	vv := r.poly[start:]
	if len(vv) < 3 {
		r.poly = r.poly[:start]
		return
	}
	var area float64
	prev := vv[len(vv)-1]
	for _, v := range vv {
		area += prev.X*v.Y - v.X*prev.Y
		prev = v
	}
	if area == 0 {
		r.poly = r.poly[:start]
		return
	}
	if area < 0 {
		slices.Reverse(vv)
	}
	r.polyStart = append(r.polyStart, start)
}

// fillPolygons fills all polygons collected in r.poly.
func (r *Rasterizer) fillPolygons(emit func(y, xMin int, coverage []float32)) {
	r.resetEdges()
	for i, start := range r.polyStart {
		end := len(r.poly)
		if i+1 < len(r.polyStart) {
			end = r.polyStart[i+1]
		}
		vv := r.poly[start:end]
		prev := vv[len(vv)-1]
		for _, v := range vv {
			r.addEdge(prev, v)
			prev = v
		}
	}
	r.scan(emit)
}
