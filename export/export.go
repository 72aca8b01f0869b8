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

// Package export renders the strokes of a drawing into an image and hands
// the encoded image to a storage backend.
//
// An export either commits exactly one storage entry, or fails with an
// error which is, or wraps, one of [ErrNothingToExport], a [*StorageError],
// or a context error. On failure the partially written entry is removed.
// In all cases the entry is closed before Export returns.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/curve"
	"seehuhn.de/go/sketchpad/drawing"
)

// Request describes one export.
type Request struct {
	// Width and Height give the size of the image in pixels.
	Width, Height int

	// CanvasWidth and CanvasHeight give the size of the drawing canvas, in
	// the coordinates used by the stroke points. The canvas is scaled to
	// fill the image.
	CanvasWidth, CanvasHeight float64

	// IncludeCurrent adds the stroke in progress, if any, on top of the
	// committed strokes.
	IncludeCurrent bool

	// Format defaults to PNG.
	Format Format

	// Name is the name of the storage entry. If empty, a unique name of
	// the form "sketch-<uuid>.<ext>" is used.
	Name string
}

// Result is the outcome of an asynchronous export.
type Result struct {
	Name string
	Err  error
}

// DefaultMaxPixels is the default limit on the size of exported images,
// 8192×8192 pixels.
const DefaultMaxPixels = 1 << 26

// Exporter renders drawings and stores them.
type Exporter struct {
	Store Store

	// Style controls the smoothing and stroke width.
	Style curve.Style

	// MaxPixels limits Width×Height of a request. Zero or negative
	// values select DefaultMaxPixels.
	MaxPixels int64
}

// New returns an Exporter which writes to store using the default style.
func New(store Store) *Exporter {
	return &Exporter{Store: store, Style: curve.DefaultStyle(), MaxPixels: DefaultMaxPixels}
}

// Export renders the strokes of s and stores the image. On success the
// name of the committed entry is returned.
//
// Export only reads s, so it can run concurrently with further drawing on
// the Board s was taken from.
func (e *Exporter) Export(ctx context.Context, s *drawing.State, req Request) (name string, err error) {
	log := sketchpad.Logger()

	if req.Format == "" {
		req.Format = PNG
	}
	if req.Format != PNG && req.Format != PDF {
		return "", fmt.Errorf("unknown export format %q", req.Format)
	}
	if req.Width <= 0 || req.Height <= 0 || !(req.CanvasWidth > 0) || !(req.CanvasHeight > 0) {
		return "", fmt.Errorf("%w: zero-size canvas", ErrNothingToExport)
	}
	limit := e.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if int64(req.Width) > limit/int64(req.Height) {
		return "", fmt.Errorf("%w: %dx%d pixels, at most %d allowed",
			ErrTooLarge, req.Width, req.Height, limit)
	}
	strokes := s.Visible(req.IncludeCurrent)
	if !hasContent(strokes) {
		return "", ErrNothingToExport
	}
	name = req.Name
	if name == "" {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		name = "sketch-" + id.String() + "." + req.Format.Ext()
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	start := time.Now()
	img := Render(strokes, req.Width, req.Height, req.CanvasWidth, req.CanvasHeight, e.Style)
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}

	entry, err := e.Store.Create(ctx, name, req.Format.MediaType())
	if err != nil {
		log.Warn("export failed", "name", name, "op", "create", "error", err)
		return "", &StorageError{Op: "create", Name: name, Err: err}
	}
	defer func() {
		if cerr := entry.Close(); cerr != nil {
			log.Warn("closing export entry", "name", name, "error", cerr)
		}
	}()
	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := entry.Remove(); rerr != nil {
			log.Warn("export rollback failed", "name", name, "error", rerr)
		}
	}()

	if err := encode(entry, img, req.Format, name); err != nil {
		log.Warn("export failed", "name", name, "op", "write", "error", err)
		return "", &StorageError{Op: "write", Name: name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	if err := entry.Commit(); err != nil {
		log.Warn("export failed", "name", name, "op", "commit", "error", err)
		return "", &StorageError{Op: "commit", Name: name, Err: err}
	}
	committed = true

	log.Info("export written",
		"name", name,
		"strokes", len(strokes),
		"width", req.Width,
		"height", req.Height,
		"format", string(req.Format),
		"duration", time.Since(start))
	return name, nil
}

// ExportAsync runs Export on a new goroutine. The returned channel
// receives exactly one Result and is then closed. A panic during the
// export is reported as an error.
func (e *Exporter) ExportAsync(ctx context.Context, s *drawing.State, req Request) <-chan Result {
	res := make(chan Result, 1)
	go func() {
		defer close(res)
		defer func() {
			if p := recover(); p != nil {
				sketchpad.Logger().Error("export panicked", "panic", p)
				res <- Result{Err: fmt.Errorf("export: %v", p)}
			}
		}()
		name, err := e.Export(ctx, s, req)
		res <- Result{Name: name, Err: err}
	}()
	return res
}

// hasContent reports whether at least one stroke has a point.
func hasContent(strokes []*drawing.Stroke) bool {
	for _, s := range strokes {
		if s.Len() > 0 {
			return true
		}
	}
	return false
}
