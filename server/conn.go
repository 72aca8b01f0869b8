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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/drawing"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 20
)

var errExportDisabled = errors.New("export is not configured")

// conn is one websocket connection.
//
// Outgoing messages are queued without limit, so that the board never
// waits for a slow client and every snapshot is delivered in order.
type conn struct {
	ws     *websocket.Conn
	remote string

	mu        sync.Mutex
	queue     [][]byte
	haveState bool
	version   uint64

	wake chan struct{}
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{
		ws:     ws,
		remote: ws.RemoteAddr().String(),
		wake:   make(chan struct{}, 1),
	}
}

func (c *conn) push(msg []byte) {
	c.mu.Lock()
	c.queue = append(c.queue, msg)
	c.mu.Unlock()
	c.signal()
}

func (c *conn) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// queueState queues an encoded snapshot. Snapshots which are not newer
// than the last one queued are dropped; this happens when a connection
// joins while an action is being applied.
func (c *conn) queueState(version uint64, data []byte) {
	c.mu.Lock()
	if c.haveState && version <= c.version {
		c.mu.Unlock()
		return
	}
	c.haveState = true
	c.version = version
	c.queue = append(c.queue, data)
	c.mu.Unlock()
	c.signal()
}

func (c *conn) sendState(st *drawing.State) {
	data, err := encodeState(st)
	if err != nil {
		sketchpad.Logger().Warn("encoding snapshot", "remote", c.remote, "error", err)
		return
	}
	c.queueState(st.Version(), data)
}

func (c *conn) hello(id uuid.UUID) {
	data, err := json.Marshal(helloMsg{
		Type:    "hello",
		Session: id.String(),
		Palette: paletteStrings(),
	})
	if err != nil {
		panic(err) // only strings are encoded
	}
	c.push(data)
}

func (c *conn) sendExport(name string, err error) {
	data, merr := encodeExport(name, err)
	if merr != nil {
		panic(merr)
	}
	c.push(data)
}

func (c *conn) sendError(err error) {
	data, merr := encodeError(err)
	if merr != nil {
		panic(merr)
	}
	c.push(data)
}

// drain removes and returns all queued messages.
func (c *conn) drain() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.queue
	c.queue = nil
	return msgs
}

// writeLoop sends queued messages and keep-alive pings until ctx is
// cancelled or a write fails.
func (c *conn) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return

		case <-c.wake:
			for _, msg := range c.drain() {
				c.ws.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
					sketchpad.Logger().Debug("websocket write failed", "remote", c.remote, "error", err)
					c.ws.Close()
					return
				}
			}

		case <-ticker.C:
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				c.ws.Close()
				return
			}
		}
	}
}

// readLoop applies the messages of the client to the session until the
// connection fails or is closed.
func (c *conn) readLoop(ctx context.Context, h *Hub, s *session) {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sketchpad.Logger().Debug("websocket read failed", "remote", c.remote, "error", err)
			}
			return
		}

		var m inbound
		if err := json.Unmarshal(data, &m); err != nil {
			c.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := h.dispatch(ctx, s, c, &m); err != nil {
			c.sendError(err)
		}
	}
}

// dispatch applies one client message.
func (h *Hub) dispatch(ctx context.Context, s *session, c *conn, m *inbound) error {
	switch m.Type {
	case "down":
		p, err := m.position()
		if err != nil {
			return err
		}
		s.board.Pointer(drawing.PointerEvent{Kind: drawing.PointerDown, Pos: p})
	case "move":
		pts, err := m.positions()
		if err != nil {
			return err
		}
		actions := make([]drawing.Action, len(pts))
		for i, p := range pts {
			actions[i] = drawing.AddPoint{P: p}
		}
		s.board.Apply(actions...)
	case "up":
		s.board.Pointer(drawing.PointerEvent{Kind: drawing.PointerUp})
	case "color":
		col, err := drawing.ParseColor(m.Color)
		if err != nil {
			return err
		}
		s.board.SelectColor(col)
	case "clear":
		s.board.Clear()
	case "export":
		h.export(ctx, s, c, m)
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}
