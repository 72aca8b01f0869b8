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

package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"seehuhn.de/go/sketchpad/drawing"
	"seehuhn.de/go/sketchpad/export"
)

// inbound is a message sent by a client.
//
// Coordinates are pointers so that a missing field can be told apart from
// zero.
type inbound struct {
	Type   string       `json:"type"`
	X      *float64     `json:"x,omitempty"`
	Y      *float64     `json:"y,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
	Color  string       `json:"color,omitempty"`

	// export parameters
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	Format         string `json:"format,omitempty"`
	IncludeCurrent *bool  `json:"includeCurrent,omitempty"`
}

var errNoPosition = errors.New("missing coordinates")

// position returns the single point of a down or move message.
func (m *inbound) position() (drawing.Point, error) {
	if m.X == nil || m.Y == nil {
		return drawing.Point{}, fmt.Errorf("%s: %w", m.Type, errNoPosition)
	}
	return drawing.Point{X: *m.X, Y: *m.Y}, nil
}

// positions returns the points of a move message, which may either carry a
// batch in Points or a single point in X and Y.
func (m *inbound) positions() ([]drawing.Point, error) {
	if len(m.Points) == 0 {
		p, err := m.position()
		if err != nil {
			return nil, err
		}
		return []drawing.Point{p}, nil
	}
	res := make([]drawing.Point, len(m.Points))
	for i, xy := range m.Points {
		res[i] = drawing.Point{X: xy[0], Y: xy[1]}
	}
	return res, nil
}

type helloMsg struct {
	Type    string   `json:"type"`
	Session string   `json:"session"`
	Palette []string `json:"palette"`
}

type strokeMsg struct {
	ID     uint64       `json:"id"`
	Color  string       `json:"color"`
	Points [][2]float64 `json:"points"`
}

type stateMsg struct {
	Type     string      `json:"type"`
	Version  uint64      `json:"version"`
	Mode     string      `json:"mode"`
	Selected string      `json:"selected"`
	Current  *strokeMsg  `json:"current"`
	Strokes  []strokeMsg `json:"strokes"`
}

type exportMsg struct {
	Type   string `json:"type"`
	OK     bool   `json:"ok"`
	Name   string `json:"name,omitempty"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func paletteStrings() []string {
	pal := drawing.Palette()
	res := make([]string, len(pal))
	for i, c := range pal {
		res[i] = drawing.FormatColor(c)
	}
	return res
}

func encodeStroke(s *drawing.Stroke) strokeMsg {
	pts := s.Points()
	xy := make([][2]float64, len(pts))
	for i, p := range pts {
		xy[i] = [2]float64{p.X, p.Y}
	}
	return strokeMsg{
		ID:     uint64(s.ID()),
		Color:  drawing.FormatColor(s.Color()),
		Points: xy,
	}
}

// encodeState converts a snapshot into a "state" message.
func encodeState(s *drawing.State) ([]byte, error) {
	msg := stateMsg{
		Type:     "state",
		Version:  s.Version(),
		Mode:     s.Mode().String(),
		Selected: drawing.FormatColor(s.Selected()),
		Strokes:  []strokeMsg{},
	}
	if cur := s.Current(); cur != nil {
		sm := encodeStroke(cur)
		msg.Current = &sm
	}
	for _, st := range s.Strokes() {
		msg.Strokes = append(msg.Strokes, encodeStroke(st))
	}
	return json.Marshal(msg)
}

func encodeExport(name string, err error) ([]byte, error) {
	msg := exportMsg{Type: "export", OK: err == nil}
	if err == nil {
		msg.Name = name
		msg.URL = "/exports/" + name
	} else {
		msg.Reason = export.Reason(err)
	}
	return json.Marshal(msg)
}

func encodeError(err error) ([]byte, error) {
	return json.Marshal(errorMsg{Type: "error", Message: err.Error()})
}
