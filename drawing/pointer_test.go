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
	"slices"
	"testing"
)

func TestPointerGesture(t *testing.T) {
	b := NewBoard()
	events := []PointerEvent{
		{Kind: PointerDown, Pos: Point{X: 1, Y: 1}},
		{Kind: PointerMove, Pos: Point{X: 2, Y: 2}},
		{Kind: PointerMove, Pos: Point{X: 3, Y: 3}},
		{Kind: PointerUp},
	}
	for _, ev := range events {
		b.Pointer(ev)
	}

	s := b.State()
	if s.Mode() != Idle {
		t.Fatalf("mode = %v, want idle", s.Mode())
	}
	strokes := s.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	want := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	if !slices.Equal(strokes[0].Points(), want) {
		t.Errorf("points = %v, want %v", strokes[0].Points(), want)
	}
}

func TestPointerTap(t *testing.T) {
	b := NewBoard()
	if n := b.Pointer(PointerEvent{Kind: PointerDown, Pos: Point{X: 5, Y: 6}}); n != 2 {
		t.Errorf("down applied %d actions, want 2", n)
	}
	if n := b.Pointer(PointerEvent{Kind: PointerUp}); n != 1 {
		t.Errorf("up applied %d actions, want 1", n)
	}
	strokes := b.State().Strokes()
	if len(strokes) != 1 || strokes[0].Len() != 1 {
		t.Error("a tap must leave a one-point stroke")
	}
}

func TestPointerLostUp(t *testing.T) {
	b := NewBoard()
	b.Pointer(PointerEvent{Kind: PointerDown, Pos: Point{X: 1}})
	b.Pointer(PointerEvent{Kind: PointerMove, Pos: Point{X: 2}})
	if n := b.Pointer(PointerEvent{Kind: PointerDown, Pos: Point{X: 10}}); n != 3 {
		t.Errorf("down applied %d actions, want 3", n)
	}

	s := b.State()
	if len(s.Strokes()) != 1 || s.Strokes()[0].Len() != 2 {
		t.Error("interrupted stroke was not committed")
	}
	if cur := s.Current(); cur == nil || cur.Len() != 1 || cur.Points()[0].X != 10 {
		t.Error("new stroke not started at the down position")
	}
}

func TestPointerIdle(t *testing.T) {
	b := NewBoard()
	if n := b.Pointer(PointerEvent{Kind: PointerMove, Pos: Point{X: 1}}); n != 0 {
		t.Errorf("move while idle applied %d actions", n)
	}
	if n := b.Pointer(PointerEvent{Kind: PointerUp}); n != 0 {
		t.Errorf("up while idle applied %d actions", n)
	}
	if n := b.Pointer(PointerEvent{Kind: PointerKind(42)}); n != 0 {
		t.Errorf("unknown event applied %d actions", n)
	}
	if b.State().Version() != 0 {
		t.Error("state changed")
	}
}
