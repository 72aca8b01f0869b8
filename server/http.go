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
	"net/http"

	"github.com/google/uuid"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/export"
)

// Handler returns the HTTP handler of the hub:
//
//	GET /palette          the colour palette, as a JSON array
//	GET /ws               websocket endpoint; ?session=<id> joins a session
//	GET /exports/{name}   download of a committed export
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /palette", servePalette)
	mux.HandleFunc("GET /ws", h.serveWS)
	if h.opts.Downloads != nil {
		mux.HandleFunc("GET /exports/{name}", h.serveExport)
	}
	return mux
}

func servePalette(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paletteStrings())
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	if s := r.URL.Query().Get("session"); s != "" {
		var err error
		id, err = uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		sketchpad.Logger().Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(h.ctx)
	c := newConn(ws)
	s := h.join(id, c)
	defer h.leave(s, c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writeLoop(ctx)
		ws.Close()
	}()

	c.readLoop(ctx, h, s)
	cancel()
	<-done
}

func (h *Hub) serveExport(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f, err := h.opts.Downloads.Open(name)
	if errors.Is(err, export.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		sketchpad.Logger().Warn("opening export", "name", name, "error", err)
		http.Error(w, "cannot read export", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		http.Error(w, "cannot read export", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, name, fi.ModTime(), f)
}
