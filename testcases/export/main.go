// Command export renders every gesture script into testdata/gestures/, one
// PNG file per script, and writes a JSON description of the scripts to
// testdata/gestures.json.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/sketchpad"
	"seehuhn.de/go/sketchpad/drawing"
	"seehuhn.de/go/sketchpad/export"
	"seehuhn.de/go/sketchpad/testcases"
)

const outDir = "testdata/gestures"

func main() {
	sketchpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := export.NewDirStore(outDir)
	if err != nil {
		panic(err)
	}
	exp := export.New(store)

	var out struct {
		Scripts []jsonScript `json:"scripts"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			name := category + "_" + sc.Name
			b := drawing.NewBoard()
			sc.Play(b)

			file := name + ".png"
			err := os.Remove(filepath.Join(outDir, file))
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				panic(err)
			}
			_, err = exp.Export(context.Background(), b.State(), export.Request{
				Width:          sc.Width,
				Height:         sc.Height,
				CanvasWidth:    float64(sc.Width),
				CanvasHeight:   float64(sc.Height),
				IncludeCurrent: true,
				Name:           file,
			})
			if err != nil {
				panic(err)
			}

			out.Scripts = append(out.Scripts, toJSON(name, sc, b.State()))
		}
	}

	f, err := os.Create("testdata/gestures.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScript struct {
	Name    string       `json:"name"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Strokes []jsonStroke `json:"strokes"`
}

type jsonStroke struct {
	Color    string      `json:"color"`
	Finished bool        `json:"finished"`
	Points   [][]float64 `json:"points"`
}

func toJSON(name string, sc testcases.Script, s *drawing.State) jsonScript {
	js := jsonScript{
		Name:   name,
		Width:  sc.Width,
		Height: sc.Height,
	}
	for _, st := range s.Visible(true) {
		jst := jsonStroke{
			Color:    drawing.FormatColor(st.Color()),
			Finished: st != s.Current(),
			Points:   make([][]float64, st.Len()),
		}
		for i, p := range st.Points() {
			jst.Points[i] = []float64{p.X, p.Y}
		}
		js.Strokes = append(js.Strokes, jst)
	}
	return js
}
