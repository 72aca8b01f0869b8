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
	"image/color"

	"seehuhn.de/go/sketchpad/drawing"
)

var colour = []Script{
	{
		Name:    "palette",
		Width:   128,
		Height:  128,
		Steps:   paletteStrips(),
		Visible: len(drawing.Palette()),
	},
	{
		// the colour of a stroke is fixed when the stroke starts
		Name:   "switch_while_drawing",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Select{C: color.NRGBA{R: 255, A: 255}},
			Gesture{Points: drag(10, 20, 54, 20, 2), Unfinished: true},
			Select{C: color.NRGBA{B: 255, A: 255}},
			Gesture{Points: drag(10, 44, 54, 44, 2)},
		},
		Visible: 2,
	},
	{
		Name:   "translucent_overlap",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Select{C: color.NRGBA{R: 255, A: 128}},
			Gesture{Points: drag(8, 32, 56, 32, 2)},
			Select{C: color.NRGBA{B: 255, A: 128}},
			Gesture{Points: drag(32, 8, 32, 56, 2)},
		},
		Visible: 2,
	},
}

// paletteStrips draws one horizontal strip per palette colour.
func paletteStrips() []Step {
	var steps []Step
	for i, c := range drawing.Palette() {
		y := 12 + 16*float64(i)
		steps = append(steps,
			Select{C: c},
			Gesture{Points: drag(12, y, 116, y, 3)})
	}
	return steps
}

var gestures = []Script{
	{
		// the stroke in progress is not committed
		Name:   "unfinished",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: drag(10, 20, 54, 20, 2)},
			Gesture{Points: drag(10, 44, 54, 44, 2), Unfinished: true},
		},
		Visible: 2,
	},
	{
		// a second pointer-down without an up commits the first stroke
		Name:   "lost_up",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: drag(10, 10, 54, 10, 2), Unfinished: true},
			Gesture{Points: drag(10, 54, 54, 54, 2)},
		},
		Visible: 2,
	},
	{
		Name:   "taps",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Gesture{Points: []drawing.Point{pt(16, 16)}},
			Gesture{Points: []drawing.Point{pt(48, 16)}},
			Gesture{Points: []drawing.Point{pt(16, 48)}},
			Gesture{Points: []drawing.Point{pt(48, 48)}},
		},
		Visible: 4,
	},
}

var large = []Script{
	{
		Name:    "long_wave",
		Width:   1024,
		Height:  256,
		Steps:   []Step{Gesture{Points: wave(16, 1008, 128, 100, 180, 2000)}},
		Visible: 1,
	},
	{
		Name:    "many_strokes",
		Width:   512,
		Height:  512,
		Steps:   hatching(512, 512, 8),
		Visible: (512 - 16) / 8,
	},
}

// hatching draws parallel diagonal strokes, spaced gap units apart.
func hatching(w, h, gap float64) []Step {
	var steps []Step
	for x := 16.0; x < w; x += gap {
		steps = append(steps, Gesture{Points: drag(x, 8, x-h/2, h-8, 6)})
	}
	return steps
}
