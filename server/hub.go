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

// Package server exposes drawing sessions over websockets.
//
// A client connects to /ws, optionally naming an existing session, and
// receives a "hello" message followed by the full snapshot of the session
// after every change. The client sends pointer events, colour changes and
// clear or export requests as JSON messages. All connections of a
// session share one [drawing.Board]; a session ends when its last
// connection closes.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/drawing"
	"seehuhn.de/go/sketchpad/export"
)

// Options configure a Hub.
type Options struct {
	// Exporter renders and stores exports. If nil, export requests fail.
	Exporter *export.Exporter

	// Downloads serves committed exports under /exports/. If nil, the
	// route is not registered.
	Downloads *export.DirStore

	// CanvasWidth and CanvasHeight give the size of the client canvas, in
	// the coordinates used by pointer events.
	CanvasWidth, CanvasHeight float64

	// Format and IncludeCurrent are the export defaults for requests which
	// do not set them.
	Format         export.Format
	IncludeCurrent bool

	// CheckOrigin is passed to the websocket upgrader. If nil, cross-origin
	// requests are rejected.
	CheckOrigin func(r *http.Request) bool
}

// Hub keeps track of the drawing sessions.
type Hub struct {
	opts     Options
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	exports sync.WaitGroup
}

// NewHub returns a Hub without sessions.
func NewHub(opts Options) *Hub {
	if opts.Format == "" {
		opts.Format = export.PNG
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		sessions: make(map[uuid.UUID]*session),
	}
}

// Sessions returns the number of active sessions.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close closes all websocket connections and cancels the exports which
// are still running. It does not wait for the connections to finish; use
// [Hub.Wait] for the exports.
func (h *Hub) Close() {
	h.cancel()
}

// Wait blocks until all exports started by clients have finished.
func (h *Hub) Wait() {
	h.exports.Wait()
}

// session is one shared drawing.
type session struct {
	id    uuid.UUID
	board *drawing.Board

	mu      sync.Mutex
	conns   map[*conn]struct{}
	unwatch func()
}

// join adds c to the session with the given id, creating the session if
// necessary, and queues the greeting and current snapshot for c.
func (h *Hub) join(id uuid.UUID, c *conn) *session {
	c.hello(id)

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		s = &session{
			id:    id,
			board: drawing.NewBoard(),
			conns: make(map[*conn]struct{}),
		}
		s.unwatch = s.board.Subscribe(s.broadcast)
		h.sessions[id] = s
		sketchpad.Logger().Info("session opened", "session", id)
	}

	s.mu.Lock()
	s.conns[c] = struct{}{}
	n := len(s.conns)
	s.mu.Unlock()

	c.sendState(s.board.State())
	sketchpad.Logger().Debug("connection joined",
		"session", id,
		"remote", c.remote,
		"connections", n)
	return s
}

// leave removes c from s and ends the session if c was the last
// connection.
func (h *Hub) leave(s *session, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s.mu.Lock()
	delete(s.conns, c)
	empty := len(s.conns) == 0
	s.mu.Unlock()

	if !empty {
		return
	}
	s.unwatch()
	delete(h.sessions, s.id)
	sketchpad.Logger().Info("session closed",
		"session", s.id,
		"strokes", len(s.board.State().Strokes()))
}

// broadcast queues a snapshot for every connection of the session. It is
// called by the board after every applied action.
func (s *session) broadcast(st *drawing.State) {
	data, err := encodeState(st)
	if err != nil {
		sketchpad.Logger().Warn("encoding snapshot", "session", s.id, "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.queueState(st.Version(), data)
	}
}

// export runs an export of the current snapshot and reports the result to
// c once it is done.
func (h *Hub) export(ctx context.Context, s *session, c *conn, m *inbound) {
	req := export.Request{
		Width:          m.Width,
		Height:         m.Height,
		CanvasWidth:    h.opts.CanvasWidth,
		CanvasHeight:   h.opts.CanvasHeight,
		IncludeCurrent: h.opts.IncludeCurrent,
		Format:         h.opts.Format,
	}
	if req.Width == 0 && req.Height == 0 {
		req.Width = int(h.opts.CanvasWidth + 0.5)
		req.Height = int(h.opts.CanvasHeight + 0.5)
	}
	if m.IncludeCurrent != nil {
		req.IncludeCurrent = *m.IncludeCurrent
	}
	if m.Format != "" {
		f, err := export.ParseFormat(m.Format)
		if err != nil {
			c.sendError(err)
			return
		}
		req.Format = f
	}

	if h.opts.Exporter == nil {
		c.sendExport("", errExportDisabled)
		return
	}
	h.exports.Add(1)
	res := h.opts.Exporter.ExportAsync(ctx, s.board.State(), req)
	go func() {
		defer h.exports.Done()
		r := <-res
		c.sendExport(r.Name, r.Err)
	}()
}
