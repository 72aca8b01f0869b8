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

// Package testcases holds named gesture scripts which exercise the drawing
// state machine, the smoothing step and the exporter.
//
// The scripts are shared by the package tests, the benchmarks and the
// ./export generator, which renders every script into testdata/.
package testcases

import (
	"image/color"

	"seehuhn.de/go/sketchpad/drawing"
)

// Script is a sequence of user interactions on a fresh canvas.
type Script struct {
	Name   string // lowercase a-z and _ only
	Width  int    // canvas width
	Height int    // canvas height
	Steps  []Step

	// Visible is the number of strokes shown after the script has run,
	// including an unfinished stroke.
	Visible int
}

// Step is one of Gesture, Select or Clear.
type Step interface {
	isStep()
}

// Gesture is a single-pointer drag through Points. The first point is the
// pointer-down position.
type Gesture struct {
	Points []drawing.Point

	// Unfinished gestures have no pointer-up event.
	Unfinished bool
}

func (Gesture) isStep() {}

// Select chooses a new colour.
type Select struct {
	C color.NRGBA
}

func (Select) isStep() {}

// Clear wipes the canvas.
type Clear struct{}

func (Clear) isStep() {}

// Play runs the script on b.
func (s Script) Play(b *drawing.Board) {
	for _, step := range s.Steps {
		switch step := step.(type) {
		case Gesture:
			for i, p := range step.Points {
				kind := drawing.PointerMove
				if i == 0 {
					kind = drawing.PointerDown
				}
				b.Pointer(drawing.PointerEvent{Kind: kind, Pos: p})
			}
			if !step.Unfinished {
				b.Pointer(drawing.PointerEvent{Kind: drawing.PointerUp})
			}
		case Select:
			b.SelectColor(step.C)
		case Clear:
			b.Clear()
		}
	}
}

// Events returns the number of pointer events and actions in the script.
func (s Script) Events() int {
	n := 0
	for _, step := range s.Steps {
		if g, ok := step.(Gesture); ok {
			n += len(g.Points)
			if !g.Unfinished {
				n++
			}
		} else {
			n++
		}
	}
	return n
}

// All maps category names to scripts.
var All = map[string][]Script{
	"basic":   basic,
	"colour":  colour,
	"curve":   curves,
	"gesture": gestures,
	"large":   large,
}
