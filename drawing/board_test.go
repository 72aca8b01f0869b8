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
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestNewBoard(t *testing.T) {
	s := NewBoard().State()
	if s.Mode() != Idle || s.Current() != nil {
		t.Error("new board is not idle")
	}
	if len(s.Strokes()) != 0 {
		t.Errorf("new board has %d strokes", len(s.Strokes()))
	}
	if s.Selected() != DefaultColor {
		t.Errorf("selected = %v, want %v", s.Selected(), DefaultColor)
	}
	if s.Version() != 0 {
		t.Errorf("version = %d, want 0", s.Version())
	}
}

func TestEmptyStroke(t *testing.T) {
	b := NewBoard()
	if !b.StartStroke() || !b.EndStroke() {
		t.Fatal("start/end not applied")
	}
	s := b.State()
	if s.Mode() != Idle {
		t.Errorf("mode = %v, want idle", s.Mode())
	}
	strokes := s.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	if strokes[0].Len() != 0 {
		t.Errorf("stroke has %d points, want 0", strokes[0].Len())
	}
}

func TestAddPointOrder(t *testing.T) {
	b := NewBoard()
	b.StartStroke()
	var want []Point
	for i := range 50 {
		p := Point{X: float64(i), Y: float64(i * i % 7)}
		if !b.AddPoint(p) {
			t.Fatalf("point %d not added", i)
		}
		want = append(want, p)
	}
	cur := b.State().Current()
	if cur == nil {
		t.Fatal("no stroke in progress")
	}
	if !slices.Equal(cur.Points(), want) {
		t.Errorf("points = %v, want %v", cur.Points(), want)
	}
}

func TestAddPointDuplicatesKept(t *testing.T) {
	b := NewBoard()
	b.StartStroke()
	p := Point{X: 3, Y: 3}
	b.AddPoint(p)
	b.AddPoint(p)
	if n := b.State().Current().Len(); n != 2 {
		t.Errorf("stroke has %d points, want 2", n)
	}
}

func TestIgnoredActions(t *testing.T) {
	b := NewBoard()
	notified := 0
	b.Subscribe(func(*State) { notified++ })

	if b.AddPoint(Point{X: 1, Y: 1}) {
		t.Error("AddPoint applied while idle")
	}
	if b.EndStroke() {
		t.Error("EndStroke applied while idle")
	}
	b.StartStroke()
	id := b.State().Current().ID()
	if b.StartStroke() {
		t.Error("second StartStroke applied")
	}
	if b.State().Current().ID() != id {
		t.Error("second StartStroke replaced the stroke in progress")
	}
	for _, p := range []Point{
		{X: math.NaN(), Y: 0},
		{X: 0, Y: math.Inf(1)},
		{X: math.Inf(-1), Y: math.NaN()},
	} {
		if b.AddPoint(p) {
			t.Errorf("non-finite point %v added", p)
		}
	}

	if notified != 1 {
		t.Errorf("got %d notifications, want 1", notified)
	}
	if v := b.State().Version(); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestClear(t *testing.T) {
	setups := map[string][]Action{
		"empty":   nil,
		"idle":    {StartStroke{}, AddPoint{Point{X: 1}}, EndStroke{}},
		"drawing": {StartStroke{}, AddPoint{Point{X: 1}}, EndStroke{}, StartStroke{}, AddPoint{Point{Y: 2}}},
		"colour":  {SelectColor{red}},
	}
	for name, actions := range setups {
		t.Run(name, func(t *testing.T) {
			b := NewBoard()
			b.Apply(actions...)
			sel := b.State().Selected()
			if !b.Clear() {
				t.Fatal("Clear not applied")
			}
			s := b.State()
			if s.Current() != nil || len(s.Strokes()) != 0 {
				t.Error("Clear left strokes behind")
			}
			if s.Selected() != sel {
				t.Error("Clear changed the selected colour")
			}
		})
	}
}

func TestSelectColor(t *testing.T) {
	b := NewBoard()
	b.SelectColor(red)
	b.StartStroke()
	b.AddPoint(Point{X: 1, Y: 2})
	b.SelectColor(blue)
	if c := b.State().Current().Color(); c != red {
		t.Errorf("stroke in progress has colour %v, want %v", c, red)
	}
	b.EndStroke()
	b.StartStroke()
	b.EndStroke()

	strokes := b.State().Strokes()
	if strokes[0].Color() != red || strokes[1].Color() != blue {
		t.Errorf("colours = %v, %v; want red, blue", strokes[0].Color(), strokes[1].Color())
	}
	if b.State().Selected() != blue {
		t.Error("selected colour not updated")
	}
}

func TestStrokeIDs(t *testing.T) {
	b := NewBoard()
	for range 3 {
		b.StartStroke()
		b.EndStroke()
	}
	b.Clear()
	b.StartStroke()
	b.EndStroke()

	s := b.State().Strokes()
	if len(s) != 1 || s[0].ID() != 4 {
		t.Error("stroke IDs must keep increasing across Clear")
	}
}

// Snapshots are never modified by later actions.
func TestSnapshotImmutable(t *testing.T) {
	b := NewBoard()
	b.StartStroke()
	b.AddPoint(Point{X: 1, Y: 1})
	before := b.State()
	beforePoints := slices.Clone(before.Current().Points())

	b.AddPoint(Point{X: 2, Y: 2})
	b.EndStroke()
	b.StartStroke()
	b.AddPoint(Point{X: 3, Y: 3})
	b.EndStroke()

	if before.Mode() != Drawing || len(before.Strokes()) != 0 {
		t.Error("old snapshot changed")
	}
	if !slices.Equal(before.Current().Points(), beforePoints) {
		t.Error("old snapshot points changed")
	}

	// appending to returned slices must not leak into the board
	after := b.State()
	_ = append(after.Strokes(), &Stroke{id: 99})
	_ = append(after.Strokes()[0].Points(), Point{X: -1, Y: -1})
	b.StartStroke()
	b.EndStroke()
	s := b.State().Strokes()
	if s[2].ID() == 99 {
		t.Error("append to Strokes() leaked into the board")
	}
	if n := s[0].Len(); n != 2 {
		t.Errorf("first stroke has %d points, want 2", n)
	}
}

func TestSubscribe(t *testing.T) {
	b := NewBoard()
	var versions []uint64
	cancel := b.Subscribe(func(s *State) {
		versions = append(versions, s.Version())
	})

	b.Apply(StartStroke{}, AddPoint{Point{X: 1}}, EndStroke{}, EndStroke{}, Clear{})
	if want := []uint64{1, 2, 3, 4}; !slices.Equal(versions, want) {
		t.Errorf("versions = %v, want %v", versions, want)
	}

	cancel()
	cancel()
	b.Clear()
	if len(versions) != 4 {
		t.Error("cancelled subscriber was notified")
	}
}

func TestSubscriberSeesNewState(t *testing.T) {
	b := NewBoard()
	var got *State
	b.Subscribe(func(s *State) { got = s })
	b.SelectColor(red)
	if got != b.State() {
		t.Error("subscriber did not receive the current snapshot")
	}
	if got.Selected() != red {
		t.Error("subscriber saw stale state")
	}
}

func TestCancelFromCallback(t *testing.T) {
	b := NewBoard()
	calls := 0
	var cancel func()
	cancel = b.Subscribe(func(*State) {
		calls++
		cancel()
	})
	b.Clear()
	b.Clear()
	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestApplyCount(t *testing.T) {
	b := NewBoard()
	n := b.Apply(EndStroke{}, StartStroke{}, StartStroke{}, AddPoint{Point{}}, EndStroke{})
	if n != 3 {
		t.Errorf("applied = %d, want 3", n)
	}
}

func randomAction(rng *rand.Rand) Action {
	switch rng.IntN(10) {
	case 0, 1:
		return StartStroke{}
	case 2, 3, 4, 5:
		return AddPoint{Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}}
	case 6, 7:
		return EndStroke{}
	case 8:
		return SelectColor{palette[rng.IntN(len(palette))]}
	default:
		return Clear{}
	}
}

// Invariants which hold after every action of random action sequences.
func TestRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		b := NewBoard()
		prev := b.State()
		seen := map[StrokeID]bool{}
		for range 100 {
			a := randomAction(rng)
			applied := b.Apply(a) == 1
			s := b.State()

			if !applied {
				if s != prev {
					t.Fatalf("%v ignored but state replaced", a)
				}
				continue
			}
			if s.Version() != prev.Version()+1 {
				t.Fatalf("%v: version %d after %d", a, s.Version(), prev.Version())
			}
			if (s.Current() != nil) != (s.Mode() == Drawing) {
				t.Fatalf("%v: mode %v inconsistent with current stroke", a, s.Mode())
			}

			// committed strokes are never changed, only appended or cleared
			old := prev.Strokes()
			cur := s.Strokes()
			if _, ok := a.(Clear); ok {
				if len(cur) != 0 {
					t.Fatal("Clear left strokes")
				}
			} else {
				if len(cur) < len(old) || !slices.Equal(cur[:len(old)], old) {
					t.Fatalf("%v changed committed strokes", a)
				}
				_, isEnd := a.(EndStroke)
				if isEnd && (len(cur) != len(old)+1 || cur[len(old)] != prev.Current()) {
					t.Fatal("EndStroke did not commit the stroke in progress")
				}
			}

			if c := s.Current(); c != nil && (prev.Current() == nil || prev.Current().ID() != c.ID()) {
				if seen[c.ID()] {
					t.Fatalf("stroke ID %d reused", c.ID())
				}
				seen[c.ID()] = true
			}
			prev = s
		}
	}
}

func TestConcurrentReaders(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := b.State()
				for _, st := range s.Strokes() {
					_ = st.Points()
				}
			}
		}()
	}
	for i := range 1000 {
		b.Pointer(PointerEvent{Kind: PointerKind(i % 3), Pos: Point{X: float64(i)}})
	}
	close(stop)
	wg.Wait()
}
