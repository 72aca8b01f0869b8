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

package drawing

import (
	"fmt"
	"image/color"
	"math"
)

// Action is one of StartStroke, AddPoint, EndStroke, SelectColor or Clear.
type Action interface {
	// apply returns the state after the action, or nil if the action is
	// ignored in state s.
	apply(s *State) *State

	fmt.Stringer
}

// StartStroke begins a new stroke in the selected colour. It is ignored
// while a stroke is in progress.
type StartStroke struct{}

func (StartStroke) apply(s *State) *State {
	if s.current != nil {
		return nil
	}
	n := s.next()
	n.current = &Stroke{id: s.nextID, color: s.selected}
	n.nextID++
	return n
}

func (StartStroke) String() string { return "StartStroke" }

// AddPoint appends P to the stroke in progress. It is ignored while no
// stroke is in progress, and for points with NaN or infinite coordinates.
type AddPoint struct {
	P Point
}

func (a AddPoint) apply(s *State) *State {
	if s.current == nil || !isFinite(a.P) {
		return nil
	}
	n := s.next()
	n.current = s.current.withPoint(a.P)
	return n
}

func (a AddPoint) String() string {
	return fmt.Sprintf("AddPoint(%g, %g)", a.P.X, a.P.Y)
}

func isFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// EndStroke commits the stroke in progress. It is ignored while no stroke
// is in progress.
type EndStroke struct{}

func (EndStroke) apply(s *State) *State {
	if s.current == nil {
		return nil
	}
	n := s.next()
	n.strokes = append(s.strokes, s.current)
	n.current = nil
	return n
}

func (EndStroke) String() string { return "EndStroke" }

// SelectColor sets the colour for subsequent strokes. The stroke in
// progress and the committed strokes keep their colours.
type SelectColor struct {
	C color.NRGBA
}

func (a SelectColor) apply(s *State) *State {
	n := s.next()
	n.selected = a.C
	return n
}

func (a SelectColor) String() string {
	return "SelectColor(" + FormatColor(a.C) + ")"
}

// Clear discards the stroke in progress and all committed strokes. The
// selected colour is kept.
type Clear struct{}

func (Clear) apply(s *State) *State {
	n := s.next()
	n.current = nil
	n.strokes = nil
	return n
}

func (Clear) String() string { return "Clear" }
