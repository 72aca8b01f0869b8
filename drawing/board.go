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
	"image/color"
	"slices"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/sketchpad"
)

// Board holds the state of one drawing session.
//
// Actions are applied one at a time, in the order in which they are
// submitted. The current snapshot can be read from any goroutine.
type Board struct {
	mu    sync.Mutex // serialises actions and notifications
	state atomic.Pointer[State]

	subMu  sync.Mutex
	subs   []*subscription
	nextID int
}

type subscription struct {
	id int
	fn func(*State)
}

// NewBoard returns a Board with no strokes and the default colour selected.
func NewBoard() *Board {
	b := &Board{}
	b.state.Store(initialState())
	return b
}

// State returns the current snapshot.
func (b *Board) State() *State {
	return b.state.Load()
}

// Subscribe registers fn to be called with the new snapshot after every
// applied action. Calls happen synchronously, in action order, on the
// goroutine which submitted the action. fn must return quickly and must
// not submit actions to the same Board.
//
// The returned function removes the subscription. It is safe to call more
// than once, and from within fn.
func (b *Board) Subscribe(fn func(*State)) (cancel func()) {
	b.subMu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, &subscription{id: id, fn: fn})
	b.subMu.Unlock()

	return func() {
		b.subMu.Lock()
		defer b.subMu.Unlock()
		b.subs = slices.DeleteFunc(b.subs, func(s *subscription) bool {
			return s.id == id
		})
	}
}

// Apply applies the actions in order, as if they had been submitted one by
// one, and returns the number of actions which were not ignored.
func (b *Board) Apply(actions ...Action) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	applied := 0
	for _, a := range actions {
		if b.applyLocked(a) {
			applied++
		}
	}
	return applied
}

// StartStroke begins a new stroke. The result is false if a stroke was
// already in progress.
func (b *Board) StartStroke() bool {
	return b.Apply(StartStroke{}) == 1
}

// AddPoint adds p to the stroke in progress. The result is false if no
// stroke is in progress or if p is not finite.
func (b *Board) AddPoint(p Point) bool {
	return b.Apply(AddPoint{P: p}) == 1
}

// EndStroke commits the stroke in progress. The result is false if there
// was none.
func (b *Board) EndStroke() bool {
	return b.Apply(EndStroke{}) == 1
}

// SelectColor sets the colour for new strokes. It always succeeds.
func (b *Board) SelectColor(c color.NRGBA) bool {
	return b.Apply(SelectColor{C: c}) == 1
}

// Clear removes all strokes. It always succeeds.
func (b *Board) Clear() bool {
	return b.Apply(Clear{}) == 1
}

// applyLocked applies a single action. The caller must hold b.mu.
func (b *Board) applyLocked(a Action) bool {
	old := b.state.Load()
	s := a.apply(old)
	if s == nil {
		sketchpad.Logger().Debug("action ignored",
			"action", a.String(),
			"mode", old.Mode().String())
		return false
	}
	b.state.Store(s)

	b.subMu.Lock()
	subs := slices.Clone(b.subs)
	b.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(s)
	}
	return true
}
