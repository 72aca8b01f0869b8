// Package sketchpad is a minimal freehand drawing surface.
//
// A pointer dragged across a canvas builds coloured strokes. The
// [seehuhn.de/go/sketchpad/drawing] package holds the stroke state machine,
// [seehuhn.de/go/sketchpad/curve] turns the raw pointer samples of a stroke
// into a smooth curve, and [seehuhn.de/go/sketchpad/export] rasterizes the
// committed strokes into an image and hands it to a storage backend.
// The [seehuhn.de/go/sketchpad/server] package exposes drawing sessions to
// an external user interface over websockets.
//
// This package only holds the logger shared by all sub-packages.
package sketchpad

//go:generate go run ./testcases/export
