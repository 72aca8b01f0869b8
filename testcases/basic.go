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

var basic = []Script{
	{
		Name:    "tap",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: []drawing.Point{pt(32, 32)}}},
		Visible: 1,
	},
	{
		Name:    "horizontal",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: drag(10, 32, 54, 32, 2)}},
		Visible: 1,
	},
	{
		Name:    "diagonal",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: drag(8, 8, 56, 56, 3)}},
		Visible: 1,
	},
	{
		// every sample is closer than the smoothness threshold
		Name:    "jitter",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: jitter(32, 32, 12)}},
		Visible: 1,
	},
	{
		// fast drag: samples far apart
		Name:    "sparse",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: drag(4, 60, 60, 4, 20)}},
		Visible: 1,
	},
	{
		Name:   "three_strokes",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: drag(10, 16, 54, 16, 2)},
			Gesture{Points: drag(10, 32, 54, 32, 2)},
			Gesture{Points: drag(10, 48, 54, 48, 2)},
		},
		Visible: 3,
	},
	{
		Name:   "clear_then_draw",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: drag(10, 10, 54, 54, 2)},
			Clear{},
			Gesture{Points: drag(10, 54, 54, 10, 2)},
		},
		Visible: 1,
	},
	{
		Name:   "partly_off_canvas",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: drag(-20, 32, 84, 32, 4)},
		},
		Visible: 1,
	},
}

var curves = []Script{
	{
		Name:    "half_circle",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: arc(32, 32, 22, math.Pi, 2*math.Pi, 24)}},
		Visible: 1,
	},
	{
		Name:    "full_circle",
		Width:   64,
		Height:  64,
		Steps:   []Step{Gesture{Points: arc(32, 32, 22, 0, 2*math.Pi, 40)}},
		Visible: 1,
	},
	{
		Name:    "wave",
		Width:   128,
		Height:  64,
		Steps:   []Step{Gesture{Points: wave(8, 120, 32, 18, 40, 80)}},
		Visible: 1,
	},
	{
		Name:    "spiral",
		Width:   128,
		Height:  128,
		Steps:   []Step{Gesture{Points: spiral(64, 64, 2.2, 4, 200)}},
		Visible: 1,
	},
	{
		// sharp reversal of direction
		Name:   "zigzag",
		Width:  64,
		Height: 64,
		Steps: []Step{Gesture{Points: []drawing.Point{
			pt(8, 56), pt(20, 8), pt(32, 56), pt(44, 8), pt(56, 56),
		}}},
		Visible: 1,
	},
}
