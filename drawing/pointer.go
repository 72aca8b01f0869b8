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

import "seehuhn.de/go/sketchpad"

// PointerKind distinguishes the events of a pointer gesture.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is one sample of a single-pointer drag gesture.
type PointerEvent struct {
	Kind PointerKind
	Pos  Point // ignored for PointerUp
}

// Pointer translates a pointer event into actions and applies them.
//
// A down event starts a stroke at Pos, move events extend it and an up
// event commits it. If a down event arrives while a stroke is in progress,
// the earlier gesture has lost its up event; that stroke is committed
// before the new one is started. The actions of one event are applied
// without interleaving with other callers.
//
// The result is the number of actions which were applied.
func (b *Board) Pointer(ev PointerEvent) int {
	var actions []Action
	switch ev.Kind {
	case PointerDown:
		actions = []Action{StartStroke{}, AddPoint{P: ev.Pos}}
	case PointerMove:
		actions = []Action{AddPoint{P: ev.Pos}}
	case PointerUp:
		actions = []Action{EndStroke{}}
	default:
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	applied := 0
	if ev.Kind == PointerDown && b.state.Load().Mode() == Drawing {
		sketchpad.Logger().Debug("pointer up lost, committing stroke",
			"stroke", b.state.Load().Current().ID())
		if b.applyLocked(EndStroke{}) {
			applied++
		}
	}
	for _, a := range actions {
		if b.applyLocked(a) {
			applied++
		}
	}
	return applied
}
