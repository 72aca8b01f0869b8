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

// Package drawing implements the stroke state machine of a drawing session.
//
// A [Board] owns the current [State] and changes it in response to five
// actions: [StartStroke], [AddPoint], [EndStroke], [SelectColor] and
// [Clear]. Every applied action replaces the state by a new immutable
// snapshot and notifies all subscribers. Actions whose precondition does
// not hold are ignored: the state is left unchanged and nobody is
// notified.
package drawing

import (
	"image/color"

	"seehuhn.de/go/geom/vec"
)

// Point is a position in canvas coordinates. The y axis points down.
type Point = vec.Vec2

// StrokeID identifies a stroke within one Board. IDs start at 1 and
// increase with every stroke started.
type StrokeID uint64

// Stroke is one continuous pointer gesture. Strokes are immutable.
type Stroke struct {
	id     StrokeID
	color  color.NRGBA
	points []Point
}

// ID returns the identifier of the stroke.
func (s *Stroke) ID() StrokeID {
	return s.id
}

// Color returns the colour the stroke is drawn with. This is the colour
// which was selected when the stroke was started.
func (s *Stroke) Color() color.NRGBA {
	return s.color
}

// Points returns the sampled points, in sampling order. The returned slice
// must not be modified.
func (s *Stroke) Points() []Point {
	return s.points[:len(s.points):len(s.points)]
}

// Len returns the number of points in the stroke.
func (s *Stroke) Len() int {
	return len(s.points)
}

// withPoint returns a copy of s with p appended.
//
// The copy may share its backing array with s. This is safe because a
// Board only ever extends the newest version of a stroke, and earlier
// snapshots never look beyond their own length.
func (s *Stroke) withPoint(p Point) *Stroke {
	return &Stroke{
		id:     s.id,
		color:  s.color,
		points: append(s.points, p),
	}
}

// Mode says whether a stroke is in progress.
type Mode int

const (
	// Idle means that no stroke is in progress.
	Idle Mode = iota

	// Drawing means that points are being added to the current stroke.
	Drawing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a drawing session.
type State struct {
	version  uint64
	selected color.NRGBA
	current  *Stroke
	strokes  []*Stroke
	nextID   StrokeID
}

// DefaultColor is the colour selected in a new session.
var DefaultColor = color.NRGBA{A: 255}

// initialState returns the state of a new session.
func initialState() *State {
	return &State{
		selected: DefaultColor,
		nextID:   1,
	}
}

// Version returns the number of actions applied before this snapshot was
// taken. It is zero for a new Board.
func (s *State) Version() uint64 {
	return s.version
}

// Selected returns the colour used for the next stroke.
func (s *State) Selected() color.NRGBA {
	return s.selected
}

// Current returns the stroke in progress, or nil if there is none.
func (s *State) Current() *Stroke {
	return s.current
}

// Strokes returns the committed strokes, oldest first. Later strokes are
// painted over earlier ones. The returned slice must not be modified.
func (s *State) Strokes() []*Stroke {
	return s.strokes[:len(s.strokes):len(s.strokes)]
}

// Mode returns Drawing if a stroke is in progress, and Idle otherwise.
func (s *State) Mode() Mode {
	if s.current != nil {
		return Drawing
	}
	return Idle
}

// Visible returns the strokes which are shown on the canvas: all committed
// strokes, followed by the stroke in progress if includeCurrent is set and
// the stroke has at least one point.
func (s *State) Visible(includeCurrent bool) []*Stroke {
	if !includeCurrent || s.current == nil || len(s.current.points) == 0 {
		return s.Strokes()
	}
	res := make([]*Stroke, 0, len(s.strokes)+1)
	res = append(res, s.strokes...)
	return append(res, s.current)
}

// next returns a copy of s with the version incremented.
func (s *State) next() *State {
	n := *s
	n.version++
	return &n
}
