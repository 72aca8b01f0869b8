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

// Package curve converts the raw pointer samples of a stroke into a smooth,
// drawable curve.
//
// Closely spaced samples produce jagged polylines when connected directly.
// [Build] instead emits one quadratic Bézier segment per sample that moved
// far enough from its predecessor, using the midpoint of the two samples as
// the control point. Samples that moved less than the smoothness threshold in
// both directions contribute nothing, which suppresses jitter.
package curve

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Default stroke parameters, in canvas units.
const (
	DefaultWidth      = 10
	DefaultSmoothness = 5
)

// Strokes are always drawn with round caps and round joins.
const (
	Cap  = graphics.LineCapRound
	Join = graphics.LineJoinRound
)

// Style holds the parameters of the smoothing step.
type Style struct {
	// Width is the stroke thickness. A single sample is drawn as a disc of
	// diameter Width.
	Width float64

	// Smoothness is the minimum coordinate delta between consecutive samples
	// needed to emit a new curve segment.
	Smoothness float64
}

// DefaultStyle returns the style used when nothing else is configured.
func DefaultStyle() Style {
	return Style{Width: DefaultWidth, Smoothness: DefaultSmoothness}
}

// normalized replaces out-of-range fields by their defaults.
func (s Style) normalized() Style {
	if !(s.Width > 0) || math.IsInf(s.Width, 0) {
		s.Width = DefaultWidth
	}
	if !(s.Smoothness >= 0) || math.IsInf(s.Smoothness, 0) {
		s.Smoothness = DefaultSmoothness
	}
	return s
}

// Kind says what a Mark draws.
type Kind int

const (
	// Empty marks draw nothing.
	Empty Kind = iota

	// Dot marks draw a filled disc.
	Dot

	// Curve marks stroke a path.
	Curve
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Dot:
		return "dot"
	case Curve:
		return "curve"
	default:
		return "unknown"
	}
}

// Mark is the drawable form of one stroke.
type Mark struct {
	Kind  Kind
	Color color.NRGBA

	// Width is the stroke thickness; Dot marks have radius Width/2.
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle

	// Start is the first sample: the centre of a Dot, or the point where a
	// Curve begins.
	Start vec.Vec2

	// Path holds the smoothed curve of a Curve mark: a MoveTo followed by
	// Segments QuadTo commands. It is nil for the other kinds.
	Path     *path.Data
	Segments int
}

// Radius returns the radius used for dots.
func (m Mark) Radius() float64 {
	return m.Width / 2
}

// Bounds returns a rectangle containing everything the mark paints.
// The zero rectangle is returned for Empty marks.
func (m Mark) Bounds() rect.Rect {
	if m.Kind == Empty {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: m.Start.X, LLy: m.Start.Y, URx: m.Start.X, URy: m.Start.Y}
	if m.Path != nil {
		// the control points of a quadratic segment bound the segment
		for _, c := range m.Path.Coords {
			b.LLx = min(b.LLx, c.X)
			b.LLy = min(b.LLy, c.Y)
			b.URx = max(b.URx, c.X)
			b.URy = max(b.URy, c.Y)
		}
	}
	d := m.Width / 2
	b.LLx -= d
	b.LLy -= d
	b.URx += d
	b.URy += d
	return b
}

// Build converts the samples of one stroke into a Mark.
//
// An empty sample list gives an Empty mark and a single sample gives a Dot.
// Otherwise the curve starts at the first sample, and for every consecutive
// pair (from, to) with |Δx| >= Smoothness or |Δy| >= Smoothness a quadratic
// segment with control point (from+to)/2 and end point to is appended.
//
// Build does not modify points and does not validate coordinates.
func Build(points []vec.Vec2, c color.NRGBA, style Style) Mark {
	style = style.normalized()
	m := Mark{
		Color: c,
		Width: style.Width,
		Cap:   Cap,
		Join:  Join,
	}

	switch len(points) {
	case 0:
		return m
	case 1:
		m.Kind = Dot
		m.Start = points[0]
		return m
	}

	m.Kind = Curve
	m.Start = points[0]
	p := (&path.Data{}).MoveTo(points[0])
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		dx := math.Abs(from.X - to.X)
		dy := math.Abs(from.Y - to.Y)
		if dx >= style.Smoothness || dy >= style.Smoothness {
			p = p.QuadTo(from.Add(to).Mul(0.5), to)
			m.Segments++
		}
	}
	m.Path = p
	return m
}
