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
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var palette = []color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0xFF, 0x00, 0x00, 0xFF}, // red
	{0x00, 0x00, 0xFF, 0xFF}, // blue
	{0x00, 0xFF, 0x00, 0xFF}, // green
	{0xFF, 0xFF, 0x00, 0xFF}, // yellow
	{0xFF, 0x00, 0xFF, 0xFF}, // magenta
	{0x00, 0xFF, 0xFF, 0xFF}, // cyan
}

// Palette returns the colours offered to the user, in display order.
// The first entry is DefaultColor.
func Palette() []color.NRGBA {
	return append([]color.NRGBA(nil), palette...)
}

// ErrInvalidColor is returned by ParseColor for malformed input.
var ErrInvalidColor = errors.New("invalid colour")

// ParseColor parses a colour in the form "#rrggbb" or "#rrggbbaa".
// Colours without an alpha component are opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor returns "#rrggbb" for opaque colours and "#rrggbbaa"
// otherwise.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
